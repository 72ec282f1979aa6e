package visual

import (
	"image"
	"math"

	imgutil "github.com/jmylchreest/colorsort/internal/image"
)

// DefaultCollageSpacing pads every collage cell.
const DefaultCollageSpacing = 10

// Collage tiles images row by row in the given order. When columns is not
// positive the grid is kept as square as possible.
func Collage(images []image.Image, columns, spacing int) *image.NRGBA {
	if len(images) == 0 {
		return imgutil.Fill(2*spacing+1, 2*spacing+1, Background)
	}
	if columns <= 0 {
		columns = int(math.Ceil(math.Sqrt(float64(len(images)))))
	}

	var rows []image.Image
	for start := 0; start < len(images); start += columns {
		end := min(start+columns, len(images))
		rows = append(rows, PadConcat(images[start:end], spacing, spacing, imgutil.Horizontal))
	}
	return PadConcat(rows, spacing, spacing, imgutil.Vertical)
}
