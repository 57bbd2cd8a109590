package gbproto

import (
	"bytes"
	"testing"
)

func pixels(value byte, n int) []byte {
	return bytes.Repeat([]byte{value}, n)
}

func TestByteEncode(t *testing.T) {
	tests := []struct {
		name string
		row  []byte
		want []byte
	}{
		{"eight_black", pixels(1, 8), []byte{0xFF}},
		{"eight_white", pixels(0, 8), []byte{0x00}},
		{"first_pixel_is_lsb", []byte{1, 0, 0, 0, 0, 0, 0, 0}, []byte{0x01}},
		{"last_pixel_is_msb", []byte{0, 0, 0, 0, 0, 0, 0, 1}, []byte{0x80}},
		{"nonzero_counts_as_black", []byte{7, 0, 0, 0, 0, 0, 0, 0}, []byte{0x01}},
		{"two_bytes", append(pixels(1, 8), pixels(0, 8)...), []byte{0xFF, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ByteEncode(tt.row); !bytes.Equal(got, tt.want) {
				t.Errorf("ByteEncode = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestRunLengthEncode_SingleRun(t *testing.T) {
	tests := []struct {
		name  string
		value byte
		count int
		want  byte
	}{
		{"white_run", 0, 10, 0x0A},
		{"black_run", 1, 10, 0x8A},
		{"max_run", 1, 127, 0xFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RunLengthEncode(pixels(tt.value, tt.count))
			if len(got) != 1 {
				t.Fatalf("token count = %d, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("token = 0x%02X, want 0x%02X", got[0], tt.want)
			}
		})
	}
}

func TestRunLengthEncode_LongRunSplits(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		wantTokens int
	}{
		{"just_over", 128, 2},
		{"two_full", 254, 2},
		{"three_tokens", 300, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RunLengthEncode(pixels(1, tt.count))
			if len(got) != tt.wantTokens {
				t.Fatalf("token count = %d, want %d", len(got), tt.wantTokens)
			}
			sum := 0
			for _, tok := range got {
				if tok&0x80 == 0 {
					t.Errorf("token 0x%02X lost the black value bit", tok)
				}
				sum += int(tok & 0x7F)
			}
			if sum != tt.count {
				t.Errorf("token counts sum to %d, want %d", sum, tt.count)
			}
		})
	}
}

func TestRunLengthEncode_Alternating(t *testing.T) {
	row := []byte{0, 0, 1, 1, 1, 0}
	want := []byte{0x02, 0x83, 0x01}
	if got := RunLengthEncode(row); !bytes.Equal(got, want) {
		t.Errorf("RunLengthEncode = %x, want %x", got, want)
	}
}

func TestEncodeRow_PrefersRLEForSparseRows(t *testing.T) {
	// A blank row compresses to a couple of RLE tokens, far below the
	// 48-byte packed form.
	row := pixels(0, PrintWidth)
	frame := EncodeRow(row, PrintWidth)
	if frame[2] != CmdDrawRowRLE {
		t.Errorf("cmd = 0x%02X, want 0x%02X (RLE)", frame[2], CmdDrawRowRLE)
	}
}

func TestEncodeRow_FallsBackForNoisyRows(t *testing.T) {
	// Alternating pixels produce one RLE token per pixel, so the packed
	// form must win.
	row := make([]byte, PrintWidth)
	for i := range row {
		row[i] = byte(i % 2)
	}
	frame := EncodeRow(row, PrintWidth)
	if frame[2] != CmdDrawRow {
		t.Errorf("cmd = 0x%02X, want 0x%02X (packed)", frame[2], CmdDrawRow)
	}
	if len(frame) != PrintWidth/8+FrameOverhead {
		t.Errorf("frame length = %d, want %d", len(frame), PrintWidth/8+FrameOverhead)
	}
}

func TestEncodeRow_NeverWorseThanPacked(t *testing.T) {
	rows := [][]byte{
		pixels(0, PrintWidth),
		pixels(1, PrintWidth),
		append(pixels(1, 200), pixels(0, PrintWidth-200)...),
	}
	noisy := make([]byte, PrintWidth)
	for i := range noisy {
		noisy[i] = byte((i / 3) % 2)
	}
	rows = append(rows, noisy)

	for i, row := range rows {
		packed := BuildCommand(CmdDrawRow, ByteEncode(row))
		got := EncodeRow(row, PrintWidth)
		if len(got) > len(packed) {
			t.Errorf("row %d: EncodeRow emitted %d bytes, packed form is %d", i, len(got), len(packed))
		}
	}
}
