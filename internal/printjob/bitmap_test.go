package printjob

import (
	"bytes"
	"testing"
)

func TestBitmapRows(t *testing.T) {
	b := Bitmap{Pix: make([]byte, 12), Width: 4}
	if got := b.Rows(); got != 3 {
		t.Errorf("Rows() = %d, want 3", got)
	}
	if got := (Bitmap{}).Rows(); got != 0 {
		t.Errorf("empty Rows() = %d, want 0", got)
	}
}

func TestRotate180(t *testing.T) {
	// 3x2 bitmap with every pixel distinct.
	b := Bitmap{
		Pix: []byte{
			1, 2, 3,
			4, 5, 6,
		},
		Width: 3,
	}
	got := b.Rotate180()
	want := []byte{
		6, 5, 4,
		3, 2, 1,
	}
	if !bytes.Equal(got.Pix, want) {
		t.Errorf("Rotate180 = %v, want %v", got.Pix, want)
	}
	if got.Width != 3 {
		t.Errorf("Rotate180 width = %d, want 3", got.Width)
	}
}

func TestRotate180_Involution(t *testing.T) {
	b := Bitmap{Pix: []byte{0, 1, 0, 1, 1, 0, 0, 0}, Width: 4}
	twice := b.Rotate180().Rotate180()
	if !bytes.Equal(twice.Pix, b.Pix) {
		t.Errorf("double rotation changed the bitmap: %v", twice.Pix)
	}
}
