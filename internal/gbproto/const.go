package gbproto

// Frame magic and terminator bytes.
var Magic = [2]byte{0x51, 0x78}

// Terminator closes every frame.
const Terminator byte = 0xFF

// Command identifiers understood by GB-family firmware.
const (
	CmdFeedPaper      byte = 0xA1 // Advance paper by a step count (u16 LE payload)
	CmdDrawRow        byte = 0xA2 // Print one row, packed-bit encoding
	CmdGetDevState    byte = 0xA3 // Query device state
	CmdSetQuality     byte = 0xA4 // Print quality preset
	CmdControlLattice byte = 0xA6 // Lattice start/end marker around a print
	CmdUpdateDevice   byte = 0xA9 // Device update / commit settings
	CmdSetEnergy      byte = 0xAF // Heating energy level (u16 LE payload)
	CmdFeedSpeed      byte = 0xBD // Paper feed speed
	CmdApplyEnergy    byte = 0xBE // Apply the previously set energy level
	CmdDrawRowRLE     byte = 0xBF // Print one row, run-length encoding
)

// BLE identifiers for the GB protocol family.
// Some hosts see the printer advertise AF30 instead of AE30, so discovery
// must accept either.
const (
	ServiceUUID         = "0000ae30-0000-1000-8000-00805f9b34fb"
	FallbackServiceUUID = "0000af30-0000-1000-8000-00805f9b34fb"
	TXCharUUID          = "0000ae01-0000-1000-8000-00805f9b34fb"
)

// Vendor-mandated payload values.
var (
	// latticeStart and latticeEnd bracket the row data of one print job.
	latticeStart = []byte{0xAA, 0x55, 0x17, 0x38, 0x44, 0x5F, 0x5F, 0x5F, 0x44, 0x38, 0x2C}
	latticeEnd   = []byte{0xAA, 0x55, 0x17, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x17}
)

const (
	// DefaultEnergy is the heating energy the stock app uses.
	DefaultEnergy uint16 = 0x2EE0
	// DefaultQuality is the mid print-quality preset.
	DefaultQuality byte = 0x33

	feedSpeedPrint byte = 0x23 // feed speed while rows are printing
	feedSpeedRest  byte = 0x19 // feed speed restored after a job

	// DefaultFeedSteps is the paper advance appended after the last row.
	DefaultFeedSteps uint16 = 0x30
)

// PrintWidth is the head width in pixels; every row is exactly this wide.
const PrintWidth = 384
