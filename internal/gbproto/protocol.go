package gbproto

// Protocol describes one printer protocol family: the BLE identifiers to
// discover and write through, the fixed command sequences bracketing a
// job, and the row encoder. Only the GB family exists today; keeping it
// behind an interface lets another family slot in without touching the
// transport or the pipeline.
type Protocol interface {
	// ServiceUUID is the advertised service to scan for.
	ServiceUUID() string
	// FallbackServiceUUID is an alternative advertised service seen on
	// some host platforms; empty when the family has none.
	FallbackServiceUUID() string
	// TXCharUUID is the write characteristic all frames go to.
	TXCharUUID() string
	InitSequence(opts JobOptions) [][]byte
	FinishSequence() [][]byte
	EncodeRow(row []byte, width int) []byte
	FeedCommand(steps uint16) []byte
}

type gbFamily struct{}

// GB returns the GB-family protocol.
func GB() Protocol { return gbFamily{} }

func (gbFamily) ServiceUUID() string         { return ServiceUUID }
func (gbFamily) FallbackServiceUUID() string { return FallbackServiceUUID }
func (gbFamily) TXCharUUID() string          { return TXCharUUID }

func (gbFamily) InitSequence(opts JobOptions) [][]byte { return InitSequence(opts) }
func (gbFamily) FinishSequence() [][]byte              { return FinishSequence() }
func (gbFamily) EncodeRow(row []byte, width int) []byte {
	return EncodeRow(row, width)
}
func (gbFamily) FeedCommand(steps uint16) []byte { return FeedCommand(steps) }
