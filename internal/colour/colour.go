// Package colour provides colour types and colour-space conversion.
package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultHueRange is the hue scale used throughout colorsort (degrees).
	DefaultHueRange = 360.0

	// DefaultSVRange is the saturation and value scale (percent).
	DefaultSVRange = 100.0

	// NumHues8 is the number of representable hues on the 8-bit HSV scale.
	NumHues8 = 256
)

// RGB is a colour with fractional channels in [0, 255].
// Cluster centres are rarely whole numbers, so channels are kept as float64.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// HSV is a colour with hue in [0, 360) and saturation and value in [0, 100].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// RGB8 is an 8-bit pixel.
type RGB8 struct {
	R, G, B uint8
}

// HSV8 is a pixel on the 8-bit HSV scale (each component nominally in [0, 255]).
// Components are ints so that out-of-range samples can be detected rather than wrapped.
type HSV8 struct {
	H, S, V int
}

// String returns the colour as "rgb(r, g, b)" with rounded channels.
func (c RGB) String() string {
	r := c.Round()
	return fmt.Sprintf("rgb(%d, %d, %d)", int(r.R), int(r.G), int(r.B))
}

// Hex returns the colour as a hex string (e.g. "#1a2b3c").
func (c RGB) Hex() string {
	r := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", r.R, r.G, r.B)
}

// RGB8 clamps and rounds the colour to 8-bit channels.
func (c RGB) RGB8() RGB8 {
	return RGB8{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B)}
}

// Round returns a copy with every channel rounded to the nearest integer.
func (c RGB) Round() RGB {
	return RGB{R: math.Round(c.R), G: math.Round(c.G), B: math.Round(c.B)}
}

// ToHSV converts to HSV using the default 360/100 scales.
func (c RGB) ToHSV() HSV {
	return RGBToHSV(c, DefaultHueRange, DefaultSVRange)
}

// String returns the colour as "hsv(h, s, v)" with rounded components.
func (c HSV) String() string {
	r := c.Round()
	return fmt.Sprintf("hsv(%d, %d, %d)", int(r.H), int(r.S), int(r.V))
}

// Round returns a copy with every component rounded to the nearest integer.
// A hue that rounds up to 360 wraps to 0.
func (c HSV) Round() HSV {
	return HSV{
		H: math.Mod(math.Round(c.H), DefaultHueRange),
		S: math.Round(c.S),
		V: math.Round(c.V),
	}
}

// ToRGB converts to RGB using the default 360/100 scales.
func (c HSV) ToRGB() RGB {
	return HSVToRGB(c, DefaultHueRange, DefaultSVRange)
}

// ToRGB widens an 8-bit pixel.
func (p RGB8) ToRGB() RGB {
	return RGB{R: float64(p.R), G: float64(p.G), B: float64(p.B)}
}

// RGBToHSV converts an RGB colour to HSV, scaling hue to normH and
// saturation/value to normSV. The hue wraps modulo normH.
func RGBToHSV(c RGB, normH, normSV float64) HSV {
	h, s, v := colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Hsv()
	return HSV{
		H: math.Mod(h/360*normH, normH),
		S: s * normSV,
		V: v * normSV,
	}
}

// HSVToRGB converts an HSV colour on the normH/normSV scales to RGB.
func HSVToRGB(c HSV, normH, normSV float64) RGB {
	h := math.Mod(c.H/normH*360, 360)
	if h < 0 {
		h += 360
	}
	col := colorful.Hsv(h, c.S/normSV, c.V/normSV)
	return RGB{R: col.R * 255, G: col.G * 255, B: col.B * 255}
}

// RGBsToHSVs converts a batch of RGB colours.
func RGBsToHSVs(colours []RGB, normH, normSV float64) []HSV {
	out := make([]HSV, len(colours))
	for i, c := range colours {
		out[i] = RGBToHSV(c, normH, normSV)
	}
	return out
}

// HSVsToRGBs converts a batch of HSV colours.
func HSVsToRGBs(colours []HSV, normH, normSV float64) []RGB {
	out := make([]RGB, len(colours))
	for i, c := range colours {
		out[i] = HSVToRGB(c, normH, normSV)
	}
	return out
}

// PixelToHSV8 converts an 8-bit pixel to the 8-bit HSV scale.
// Hue and saturation are truncated, value is the largest channel.
func PixelToHSV8(p RGB8) HSV8 {
	maxc := max(p.R, p.G, p.B)
	minc := min(p.R, p.G, p.B)
	if maxc == minc {
		return HSV8{H: 0, S: 0, V: int(maxc)}
	}

	cr := float64(maxc) - float64(minc)
	s := cr / float64(maxc)
	rc := (float64(maxc) - float64(p.R)) / cr
	gc := (float64(maxc) - float64(p.G)) / cr
	bc := (float64(maxc) - float64(p.B)) / cr

	var h float64
	switch maxc {
	case p.R:
		h = bc - gc
	case p.G:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}
	h /= 6.0
	if h < 0 {
		h += 1.0
	}

	return HSV8{
		H: clampInt(int(h * 255.0)),
		S: clampInt(int(s * 255.0)),
		V: int(maxc),
	}
}

// NormalizeHSV8 rescales an 8-bit-scale HSV triple to 360/100/100.
// Components may be fractional (e.g. medians of an even number of samples).
func NormalizeHSV8(h, s, v float64) HSV {
	return HSV{
		H: math.Mod(h/255*DefaultHueRange, DefaultHueRange),
		S: s / 255 * DefaultSVRange,
		V: v / 255 * DefaultSVRange,
	}
}

// RoundToInt rounds half up: 0.5 becomes 1, 1.4999 becomes 1.
func RoundToInt(x float64) int {
	return int(math.Floor(x + 0.5))
}

// HueSortMetric rotates a hue by 90 degrees so that reds on both sides of the
// 0/360 wrap land next to each other when sorting.
func HueSortMetric(hue float64) float64 {
	return math.Mod(hue+90, DefaultHueRange)
}

func clamp8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

func clampInt(v int) int {
	return max(0, min(255, v))
}
