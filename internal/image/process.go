package image

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"

	"github.com/jmylchreest/colorsort/internal/colour"
)

// Orientation of an image.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// OrientationOf returns Vertical when h > w. Square images are Horizontal.
func OrientationOf(w, h int) Orientation {
	if h > w {
		return Vertical
	}
	return Horizontal
}

// ResizeDims scales (w, h) so that the longer axis equals target.
// A target of zero or less keeps the original size.
func ResizeDims(w, h, target int) (int, int) {
	if target <= 0 {
		return w, h
	}
	if h > w {
		return int(float64(w) / float64(h) * float64(target)), target
	}
	return target, int(float64(h) / float64(w) * float64(target))
}

// Resize returns img scaled so its longer axis equals target, as NRGBA.
// A target of zero or less returns an NRGBA copy at the original size.
func Resize(img image.Image, target int) *image.NRGBA {
	b := img.Bounds()
	w, h := ResizeDims(b.Dx(), b.Dy(), target)
	if w == b.Dx() && h == b.Dy() {
		return ToNRGBA(img)
	}
	return ToNRGBA(resize.Resize(uint(max(w, 1)), uint(max(h, 1)), img, resize.Bicubic)) // #nosec G115 -- dimensions are positive
}

// ToNRGBA converts img to an NRGBA image anchored at the origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// CropRect returns the centre of bounds after removing round(dim * frac)
// pixels from each side. fracY applies to the top and bottom, fracX to the left and right.
func CropRect(bounds image.Rectangle, fracY, fracX float64) image.Rectangle {
	cy := colour.RoundToInt(float64(bounds.Dy()) * fracY)
	cx := colour.RoundToInt(float64(bounds.Dx()) * fracX)
	r := image.Rect(bounds.Min.X+cx, bounds.Min.Y+cy, bounds.Max.X-cx, bounds.Max.Y-cy)
	if r.Empty() {
		return image.Rectangle{Min: r.Min, Max: r.Min}
	}
	return r
}

// RGBSamples returns the pixels inside r, row by row.
func RGBSamples(img *image.NRGBA, r image.Rectangle) []colour.RGB {
	r = r.Intersect(img.Bounds())
	out := make([]colour.RGB, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out = append(out, pixelAt(img, x, y).ToRGB())
		}
	}
	return out
}

// HSV8Samples returns the pixels inside r on the 8-bit HSV scale, row by row.
func HSV8Samples(img *image.NRGBA, r image.Rectangle) []colour.HSV8 {
	r = r.Intersect(img.Bounds())
	out := make([]colour.HSV8, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out = append(out, colour.PixelToHSV8(pixelAt(img, x, y)))
		}
	}
	return out
}

// Fill returns a w x h image of a single colour.
func Fill(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func pixelAt(img *image.NRGBA, x, y int) colour.RGB8 {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	return colour.RGB8{R: p[0], G: p[1], B: p[2]}
}
