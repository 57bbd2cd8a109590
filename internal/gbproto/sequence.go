package gbproto

import "encoding/binary"

// JobOptions selects per-job tunables for the init sequence.
type JobOptions struct {
	Energy  uint16 // heating energy; 0 = DefaultEnergy
	Quality byte   // quality preset; 0 = DefaultQuality
}

func (o JobOptions) energy() uint16 {
	if o.Energy == 0 {
		return DefaultEnergy
	}
	return o.Energy
}

func (o JobOptions) quality() byte {
	if o.Quality == 0 {
		return DefaultQuality
	}
	return o.Quality
}

// InitSequence returns the vendor-mandated frames that must precede row
// data, in order: device-state query twice, quality, feed speed, energy,
// apply energy, device update, lattice start.
func InitSequence(opts JobOptions) [][]byte {
	var energy [2]byte
	binary.LittleEndian.PutUint16(energy[:], opts.energy())
	return [][]byte{
		BuildCommand(CmdGetDevState, []byte{0x00}),
		BuildCommand(CmdGetDevState, []byte{0x00}),
		BuildCommand(CmdSetQuality, []byte{opts.quality()}),
		BuildCommand(CmdFeedSpeed, []byte{feedSpeedPrint}),
		BuildCommand(CmdSetEnergy, energy[:]),
		BuildCommand(CmdApplyEnergy, []byte{0x01}),
		BuildCommand(CmdUpdateDevice, []byte{0x00}),
		BuildCommand(CmdControlLattice, latticeStart),
	}
}

// FinishSequence returns the frames that must follow the last row, in
// order: lattice end, feed-speed reset, three paper advances, final
// device-state query.
func FinishSequence() [][]byte {
	return [][]byte{
		BuildCommand(CmdControlLattice, latticeEnd),
		BuildCommand(CmdFeedSpeed, []byte{feedSpeedRest}),
		FeedCommand(DefaultFeedSteps),
		FeedCommand(DefaultFeedSteps),
		FeedCommand(DefaultFeedSteps),
		BuildCommand(CmdGetDevState, []byte{0x00}),
	}
}
