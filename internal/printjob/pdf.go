package printjob

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the bitmap to a single-page PDF file sized to the
// physical media, for previewing a job without a printer.
func WritePDF(bmp Bitmap, opts Options, outputPath string) error {
	data, err := GeneratePDF(bmp, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

// GeneratePDF renders the bitmap to a PDF in memory. The page is sized
// from the same geometry the spooler path uses, so the preview matches
// the physical output.
func GeneratePDF(bmp Bitmap, opts Options) ([]byte, error) {
	if bmp.Rows() == 0 {
		return nil, fmt.Errorf("no rows to render")
	}
	if opts.Rotate {
		bmp = bmp.Rotate180()
	}

	heightMM := mediaHeightMM(bmp.Rows())

	var buf bytes.Buffer
	if err := png.Encode(&buf, toBitonal(bmp)); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}

	pdf := fpdf.New("P", "mm", "", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: mediaWidthMM, Ht: heightMM})
	pdf.RegisterImageOptionsReader("job", fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	pdf.ImageOptions("job", 0, 0, mediaWidthMM, heightMM, false, fpdf.ImageOptions{}, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return out.Bytes(), nil
}

// toBitonal converts the bitmap to a 1-bit paletted image.
func toBitonal(bmp Bitmap) *image.Paletted {
	rows := bmp.Rows()
	palette := color.Palette{color.White, color.Black}
	dst := image.NewPaletted(image.Rect(0, 0, bmp.Width, rows), palette)
	for y := 0; y < rows; y++ {
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+bmp.Width]
		for x, v := range bmp.Row(y) {
			if v != 0 {
				dstRow[x] = 1
			}
		}
	}
	return dst
}
