package gbproto

// Row encoders. Input rows are one byte per pixel: 0 = white, anything
// else = black.

// maxRunLength is the largest repeat count one RLE token can carry; the
// count lives in the low 7 bits, the pixel value in the top bit.
const maxRunLength = 0x7F

// ByteEncode packs eight pixels per output byte, least-significant bit
// first. The output is ceil(len(row)/8) bytes.
func ByteEncode(row []byte) []byte {
	out := make([]byte, (len(row)+7)/8)
	for i, px := range row {
		if px != 0 {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

// RunLengthEncode emits one token per maximal run of identical pixels,
// splitting runs longer than 127 into capped tokens.
func RunLengthEncode(row []byte) []byte {
	if len(row) == 0 {
		return nil
	}
	var out []byte
	emit := func(value byte, count int) {
		var bit byte
		if value != 0 {
			bit = 0x80
		}
		for count > maxRunLength {
			out = append(out, bit|maxRunLength)
			count -= maxRunLength
		}
		if count > 0 {
			out = append(out, bit|byte(count))
		}
	}
	run := 1
	for i := 1; i < len(row); i++ {
		same := (row[i] == 0) == (row[i-1] == 0)
		if same {
			run++
			continue
		}
		emit(row[i-1], run)
		run = 1
	}
	emit(row[len(row)-1], run)
	return out
}

// EncodeRow builds the print-row frame for one row, preferring the
// run-length form and falling back to packed bits whenever RLE would not
// be smaller. The wire size is therefore never worse than the packed-bit
// frame for the same row.
func EncodeRow(row []byte, width int) []byte {
	if width > len(row) {
		width = len(row)
	}
	row = row[:width]
	rle := RunLengthEncode(row)
	if len(rle) <= width/8 {
		return BuildCommand(CmdDrawRowRLE, rle)
	}
	return BuildCommand(CmdDrawRow, ByteEncode(row))
}
