package visual

import (
	"fmt"
	"image"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/jmylchreest/colorsort/internal/analysis"
	"github.com/jmylchreest/colorsort/internal/colour"
	imgutil "github.com/jmylchreest/colorsort/internal/image"
)

const (
	// DefaultSpectrumHeight is the spectrum height in pixels.
	DefaultSpectrumHeight = 500

	// SpectrumRatio is the spectrum's width to height ratio.
	SpectrumRatio = 1.5
)

// segment is one coloured slice of a spectrum bar.
type segment struct {
	c      colour.RGB8
	height int
}

// barWidth is shared by every bar so the strip keeps SpectrumRatio.
func barWidth(n, height int) int {
	if n == 0 {
		return 0
	}
	return colour.RoundToInt(float64(height) * SpectrumRatio / float64(n))
}

// barSegments lists the segments of one image's bar from bottom to top.
// Without allColours the bar is the most dominant colour only.
func barSegments(img analysis.Image, allColours bool, height int) []segment {
	dominant := img.Dominant()
	if !allColours && len(dominant) > 0 {
		dominant = []analysis.Dominant{{RGB: dominant[0].RGB, Proportion: 1}}
	}

	segs := make([]segment, 0, len(dominant))
	for i := len(dominant) - 1; i >= 0; i-- {
		d := dominant[i]
		segs = append(segs, segment{
			c:      colour.RGB8{R: uint8(d.RGB.R), G: uint8(d.RGB.G), B: uint8(d.RGB.B)},
			height: colour.RoundToInt(d.Proportion * float64(height)),
		})
	}
	return segs
}

// Spectrum renders one vertical bar per image, left to right in the given
// order. Each bar stacks the image's colour histogram bottom-up.
func Spectrum(images []analysis.Image, allColours bool, height int) *image.NRGBA {
	w := barWidth(len(images), height)
	bars := make([]image.Image, 0, len(images))
	for _, img := range images {
		var parts []image.Image
		for _, s := range barSegments(img, allColours, height) {
			if s.height <= 0 || w <= 0 {
				continue
			}
			parts = append(parts, imgutil.Fill(w, s.height, color.NRGBA{R: s.c.R, G: s.c.G, B: s.c.B, A: 255}))
		}
		if len(parts) == 0 {
			continue
		}
		bars = append(bars, ConcatVertical(parts))
	}
	if len(bars) == 0 {
		return imgutil.Fill(1, 1, Background)
	}
	return ConcatHorizontal(bars)
}

// SpectrumSVG writes the same graphic as Spectrum in SVG form.
func SpectrumSVG(w io.Writer, images []analysis.Image, allColours bool, height int) {
	bw := barWidth(len(images), height)
	bars := make([][]segment, len(images))
	maxH := 0
	for i, img := range images {
		bars[i] = barSegments(img, allColours, height)
		total := 0
		for _, s := range bars[i] {
			total += max(s.height, 0)
		}
		maxH = max(maxH, total)
	}

	canvas := svg.New(w)
	canvas.Start(bw*len(images), maxH)
	canvas.Title("colour spectrum")
	for i, segs := range bars {
		y := 0
		canvas.Gid(fmt.Sprintf("bar-%d", i))
		for _, s := range segs {
			if s.height <= 0 {
				continue
			}
			canvas.Rect(i*bw, y, bw, s.height, fmt.Sprintf("fill:rgb(%d,%d,%d)", s.c.R, s.c.G, s.c.B))
			y += s.height
		}
		canvas.Gend()
	}
	canvas.End()
}
