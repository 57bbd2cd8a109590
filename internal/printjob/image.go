package printjob

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/neriko/catprint/internal/gbproto"
)

// FromImage converts src to a printable bitmap: scaled to the fixed
// print-head width preserving aspect ratio, then thresholded on
// luminance. Anything darker than mid-gray prints black.
func FromImage(src image.Image) Bitmap {
	bounds := src.Bounds()
	width := gbproto.PrintWidth
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	scaled := image.NewGray(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Src, nil)

	bmp := Bitmap{Pix: make([]byte, width*height), Width: width}
	for i, v := range scaled.Pix {
		if v < 128 {
			bmp.Pix[i] = 1
		}
	}
	return bmp
}

// LoadImage reads a PNG or JPEG file and converts it with FromImage.
func LoadImage(path string) (Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bitmap{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Bitmap{}, fmt.Errorf("decode image %s: %w", path, err)
	}
	return FromImage(img), nil
}
