package analysis

import (
	"fmt"
	"image"

	"github.com/jmylchreest/colorsort/internal/cluster"
	"github.com/jmylchreest/colorsort/internal/colour"
	imgutil "github.com/jmylchreest/colorsort/internal/image"
	"github.com/jmylchreest/colorsort/internal/seed"
)

// Clustered is an image analysed with k-means. It keeps the fitted model so
// that pixels can be remapped to the dominant colours.
type Clustered struct {
	baseImage
	model *cluster.Model
	seed  uint64
}

var _ Image = (*Clustered)(nil)

func newClustered(b baseImage, cfg Config) (*Clustered, error) {
	log := cfg.logger().With("image", b.Name())

	s, err := seed.Resolve(b.raster, b.path, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seed for %s: %w", b.path, err)
	}

	samples := imgutil.RGBSamples(b.raster, b.crop)
	if distinct := countDistinct(samples, b.nColors); distinct < b.nColors {
		log.Warn("colour count exceeds distinct colours; some clusters will be empty",
			"n", b.nColors, "distinct", distinct)
	}

	model, err := cluster.Fit(samples, b.nColors, cluster.Options{Seed: s, MaxIterations: cfg.MaxIterations})
	if err != nil {
		return nil, fmt.Errorf("failed to cluster %s: %w", b.path, err)
	}
	log.Debug("clustered", "n", b.nColors, "iterations", model.Iterations, "seed", s)

	hist := model.Histogram()
	b.dominant = make([]Dominant, len(hist))
	for i, bin := range hist {
		b.dominant[i] = Dominant{RGB: bin.Center, HSV: bin.Center.ToHSV(), Proportion: bin.Proportion}
	}

	return &Clustered{baseImage: b, model: model, seed: s}, nil
}

// Seed returns the seed the model was fitted with.
func (c *Clustered) Seed() uint64 {
	return c.seed
}

// Centers returns the fitted cluster centres, indexed by label.
func (c *Clustered) Centers() []colour.RGB {
	out := make([]colour.RGB, len(c.model.Centers))
	copy(out, c.model.Centers)
	return out
}

// Remap replaces every pixel of other with its nearest cluster centre.
// A nil other remaps the receiver's own raster.
func (c *Clustered) Remap(other Image) *image.NRGBA {
	src := c.raster
	if other != nil {
		src = other.Raster()
	}

	labels := c.model.Predict(imgutil.RGBSamples(src, src.Bounds()))
	out := image.NewNRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	for i, l := range labels {
		p := c.model.Centers[l].RGB8()
		out.Pix[i*4+0] = p.R
		out.Pix[i*4+1] = p.G
		out.Pix[i*4+2] = p.B
		out.Pix[i*4+3] = 0xff
	}
	return out
}

// countDistinct counts distinct samples, stopping once limit is reached.
func countDistinct(samples []colour.RGB, limit int) int {
	seen := make(map[colour.RGB]struct{}, limit)
	for _, s := range samples {
		seen[s] = struct{}{}
		if len(seen) >= limit {
			break
		}
	}
	return len(seen)
}
