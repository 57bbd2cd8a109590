package printjob

// Bitmap is a monochrome image in row-major order, one byte per pixel.
// 0 is white (no heat), any non-zero value prints black.
type Bitmap struct {
	Pix   []byte
	Width int
}

// Rows returns the number of complete pixel rows.
func (b Bitmap) Rows() int {
	if b.Width <= 0 {
		return 0
	}
	return len(b.Pix) / b.Width
}

// Row returns the pixels of row y. The returned slice aliases Pix.
func (b Bitmap) Row(y int) []byte {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}

// Rotate180 returns a copy of the bitmap turned upside down: row y,
// column x maps to row rows-1-y, column width-1-x. Rotation happens
// before encoding so encoded commands always describe the final
// physical orientation.
func (b Bitmap) Rotate180() Bitmap {
	rows := b.Rows()
	out := Bitmap{Pix: make([]byte, rows*b.Width), Width: b.Width}
	for y := 0; y < rows; y++ {
		src := b.Row(y)
		dst := out.Pix[(rows-1-y)*b.Width : (rows-y)*b.Width]
		for x, v := range src {
			dst[b.Width-1-x] = v
		}
	}
	return out
}
