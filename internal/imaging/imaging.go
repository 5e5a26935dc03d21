// Package imaging turns image files and generated patterns into the raw
// RGB frame buffers the display driver consumes.
package imaging

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
)

// Fit selects how a loaded image maps onto the display rectangle.
type Fit string

const (
	FitFill Fit = "fill" // stretch to the display, ignoring aspect
	FitFit  Fit = "fit"  // letterbox on black, preserving aspect
	FitCrop Fit = "crop" // cover the display, center-cropping overflow
)

// Load decodes an image file and scales it to width x height per fit,
// returning an RGB frame buffer.
func Load(path string, width, height int, fit Fit) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode %q: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	switch fit {
	case FitFit:
		drawLetterboxed(dst, src)
	case FitCrop:
		drawCropped(dst, src)
	case FitFill, "":
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	default:
		return nil, fmt.Errorf("imaging: unknown fit mode %q", fit)
	}

	return rgbaToRGB(dst), nil
}

func drawLetterboxed(dst *image.RGBA, src image.Image) {
	dw, dh := dst.Bounds().Dx(), dst.Bounds().Dy()
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()

	scale := min(float64(dw)/float64(sw), float64(dh)/float64(sh))
	w := int(float64(sw) * scale)
	h := int(float64(sh) * scale)
	x := (dw - w) / 2
	y := (dh - h) / 2

	draw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, src.Bounds(), draw.Src, nil)
}

func drawCropped(dst *image.RGBA, src image.Image) {
	dw, dh := dst.Bounds().Dx(), dst.Bounds().Dy()
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()

	scale := max(float64(dw)/float64(sw), float64(dh)/float64(sh))
	w := int(float64(sw) * scale)
	h := int(float64(sh) * scale)
	x := (dw - w) / 2
	y := (dh - h) / 2

	draw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, src.Bounds(), draw.Src, nil)
}

func rgbaToRGB(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			out = append(out, row[i], row[i+1], row[i+2])
		}
	}
	return out
}
