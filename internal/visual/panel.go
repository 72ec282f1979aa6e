package visual

import (
	"image"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/colorsort/internal/analysis"
	"github.com/jmylchreest/colorsort/internal/colour"
)

const (
	// DefaultChipSize is the edge length of a dominant-colour chip.
	DefaultChipSize = 80

	// DefaultChipGap separates neighbouring chips.
	DefaultChipGap = 10

	// DefaultBorder is split into an outer border (half) and an inner border (quarter).
	DefaultBorder = 40
)

// PanelOptions controls DominantColourPanel.
type PanelOptions struct {
	ChipSize int
	ChipGap  int
	Border   int

	// Remapped appends the image redrawn with only its dominant colours.
	// Only clustered images support it; others log a warning and skip it.
	Remapped bool

	// Labels writes each chip's hex code onto the chip.
	Labels bool
}

// DefaultPanelOptions returns the standard chip layout.
func DefaultPanelOptions() PanelOptions {
	return PanelOptions{
		ChipSize: DefaultChipSize,
		ChipGap:  DefaultChipGap,
		Border:   DefaultBorder,
	}
}

type remapper interface {
	Remap(other analysis.Image) *image.NRGBA
}

// DominantColourPanel renders the analysed raster next to its stacked
// colour chips. Chips stack along the image's orientation and the panel
// runs perpendicular to it.
func DominantColourPanel(img analysis.Image, opts PanelOptions, logger hclog.Logger) *image.NRGBA {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.ChipSize <= 0 {
		opts.ChipSize = DefaultChipSize
	}

	colours := img.DominantRGB(true)
	chips := ColourChips(colours, opts.ChipSize)
	if opts.Labels {
		for i, c := range colours {
			chips[i] = labelChip(chips[i].(*image.NRGBA), c)
		}
	}

	components := []image.Image{img.Raster(), Stack(chips, opts.ChipGap, img.Orientation())}
	if opts.Remapped {
		if r, ok := img.(remapper); ok {
			components = append(components, r.Remap(img))
		} else {
			logger.Warn("unable to include remapped image", "image", img.Name(), "algorithm", img.Algorithm())
		}
	}

	return PadConcat(components, opts.Border/2, opts.Border/4, Rotate(img.Orientation()))
}

func labelChip(chip *image.NRGBA, c colour.RGB) *image.NRGBA {
	ink := image.White
	if colour.Luminance(c) > 0.5 {
		ink = image.Black
	}

	face := basicfont.Face7x13
	text := c.Hex()
	d := &font.Drawer{
		Dst:  chip,
		Src:  ink,
		Face: face,
	}

	b := chip.Bounds()
	advance := d.MeasureString(text)
	xOffset := (fixed.I(b.Dx()) - advance) / 2
	d.Dot = fixed.Point26_6{
		X: fixed.I(b.Min.X) + max(xOffset, 0),
		Y: fixed.I(b.Min.Y + b.Dy()/2 + face.Ascent/2),
	}
	d.DrawString(text)
	return chip
}
