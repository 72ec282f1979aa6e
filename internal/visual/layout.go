// Package visual renders dominant-colour panels, spectra and collages.
package visual

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/jmylchreest/colorsort/internal/colour"
	imgutil "github.com/jmylchreest/colorsort/internal/image"
)

// Background fills borders and padding.
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// AddBorder returns img surrounded by a white border of the given widths.
func AddBorder(img image.Image, left, top, right, bottom int) *image.NRGBA {
	b := img.Bounds()
	out := imgutil.Fill(b.Dx()+left+right, b.Dy()+top+bottom, Background)
	draw.Draw(out, image.Rect(left, top, left+b.Dx(), top+b.Dy()), img, b.Min, draw.Src)
	return out
}

// ConcatHorizontal places images left to right, aligned to the top.
func ConcatHorizontal(images []image.Image) *image.NRGBA {
	w, h := 0, 0
	for _, img := range images {
		w += img.Bounds().Dx()
		h = max(h, img.Bounds().Dy())
	}
	out := imgutil.Fill(w, h, Background)
	x := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(out, image.Rect(x, 0, x+b.Dx(), b.Dy()), img, b.Min, draw.Src)
		x += b.Dx()
	}
	return out
}

// ConcatVertical places images top to bottom, aligned to the left.
func ConcatVertical(images []image.Image) *image.NRGBA {
	w, h := 0, 0
	for _, img := range images {
		w = max(w, img.Bounds().Dx())
		h += img.Bounds().Dy()
	}
	out := imgutil.Fill(w, h, Background)
	y := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(out, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy()
	}
	return out
}

// ColourChips returns one size x size square per colour.
func ColourChips(colours []colour.RGB, size int) []image.Image {
	chips := make([]image.Image, len(colours))
	for i, c := range colours {
		p := c.RGB8()
		chips[i] = imgutil.Fill(size, size, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
	}
	return chips
}

// Stack concatenates images along orientation with gap pixels between them.
func Stack(images []image.Image, gap int, orientation imgutil.Orientation) *image.NRGBA {
	spaced := make([]image.Image, len(images))
	for i, img := range images {
		switch {
		case i == 0:
			spaced[i] = img
		case orientation == imgutil.Vertical:
			spaced[i] = AddBorder(img, 0, gap, 0, 0)
		default:
			spaced[i] = AddBorder(img, gap, 0, 0, 0)
		}
	}
	if orientation == imgutil.Vertical {
		return ConcatVertical(spaced)
	}
	return ConcatHorizontal(spaced)
}

// PadConcat centres images across the layout axis, then concatenates them
// along orientation with an outer border around the result and an inner
// border between neighbours.
func PadConcat(images []image.Image, outer, inner int, orientation imgutil.Orientation) *image.NRGBA {
	if len(images) == 0 {
		return imgutil.Fill(2*outer, 2*outer, Background)
	}

	if orientation == imgutil.Vertical {
		maxW := 0
		for _, img := range images {
			maxW = max(maxW, img.Bounds().Dx())
		}
		padded := make([]image.Image, len(images))
		for i, img := range images {
			diff := maxW - img.Bounds().Dx()
			left, right := diff/2+diff%2, diff/2
			top, bottom := 0, inner
			if i == 0 {
				top = outer
			}
			if i == len(images)-1 {
				bottom = outer
			}
			padded[i] = AddBorder(img, left+outer, top, right+outer, bottom)
		}
		return ConcatVertical(padded)
	}

	maxH := 0
	for _, img := range images {
		maxH = max(maxH, img.Bounds().Dy())
	}
	padded := make([]image.Image, len(images))
	for i, img := range images {
		diff := maxH - img.Bounds().Dy()
		top, bottom := diff/2, diff/2+diff%2
		left, right := 0, inner
		if i == 0 {
			left = outer
		}
		if i == len(images)-1 {
			right = outer
		}
		padded[i] = AddBorder(img, left, top+outer, right, bottom+outer)
	}
	return ConcatHorizontal(padded)
}

// Rotate returns the perpendicular orientation.
func Rotate(o imgutil.Orientation) imgutil.Orientation {
	if o == imgutil.Vertical {
		return imgutil.Horizontal
	}
	return imgutil.Vertical
}
