package gbproto

import "encoding/binary"

// FrameOverhead is the number of non-payload bytes in every frame:
// magic(2) + cmd(1) + reserved(1) + length(2) + crc(1) + terminator(1).
const FrameOverhead = 8

// BuildCommand assembles one protocol frame:
//
//	[magic(2) | cmd | 0x00 | len_lo | len_hi | payload | crc8(payload) | 0xFF]
//
// The length field is the little-endian payload length and the CRC covers
// payload bytes only.
func BuildCommand(cmd byte, payload []byte) []byte {
	buf := make([]byte, 0, len(payload)+FrameOverhead)
	buf = append(buf, Magic[0], Magic[1], cmd, 0x00)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(payload)))
	buf = append(buf, payload...)
	buf = append(buf, CRC8(payload), Terminator)
	return buf
}

// FeedCommand builds a paper-advance frame for the given step count.
func FeedCommand(steps uint16) []byte {
	var payload [2]byte
	binary.LittleEndian.PutUint16(payload[:], steps)
	return BuildCommand(CmdFeedPaper, payload[:])
}
