package analysis

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colorsort/internal/colour"
	"github.com/jmylchreest/colorsort/internal/heuristic"
	imgutil "github.com/jmylchreest/colorsort/internal/image"
)

// HueDistributed is an image analysed with the hue-distribution algorithm.
// It has no per-pixel assignment and so cannot be remapped.
type HueDistributed struct {
	baseImage
}

var _ Image = (*HueDistributed)(nil)

func newHueDistributed(b baseImage, cfg Config) (*HueDistributed, error) {
	log := cfg.logger().With("image", b.Name())
	if b.nColors > 1 {
		log.Warn("dominant colours may be very similar", "algorithm", HueDist, "n", b.nColors)
	}

	dominant, err := DominantFromHueDist(imgutil.HSV8Samples(b.raster, b.crop), b.nColors, log)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hue distribution for %s: %w", b.path, err)
	}
	b.dominant = dominant
	return &HueDistributed{baseImage: b}, nil
}

// DominantFromHueDist ranks the 256 hue bins by sample count and summarises
// the n fullest: the bin's hue with the median saturation and value of its
// samples. An empty bin yields saturation and value 0.
func DominantFromHueDist(samples []colour.HSV8, n int, log hclog.Logger) ([]Dominant, error) {
	if n < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", n)
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}

	dist, err := heuristic.ComputeHueDist(samples, colour.NumHues8)
	if err != nil {
		return nil, err
	}

	ranked := make([]int, len(dist))
	for i := range ranked {
		ranked[i] = i
	}
	slices.SortStableFunc(ranked, func(a, b int) int {
		return cmp.Compare(len(dist[b]), len(dist[a]))
	})

	n = min(n, len(ranked))
	out := make([]Dominant, n)
	total := 0
	for i, hue := range ranked[:n] {
		bin := dist[hue]
		var s, v float64
		if len(bin) == 0 {
			log.Warn("no pixels found for hue; n may exceed the number of hues in the image", "hue", hue)
		} else {
			s = median(bin, func(p colour.HSV8) int { return p.S })
			v = median(bin, func(p colour.HSV8) int { return p.V })
		}

		hsv := colour.NormalizeHSV8(float64(hue), s, v)
		out[i] = Dominant{RGB: hsv.ToRGB(), HSV: hsv, Proportion: float64(len(bin))}
		total += len(bin)
	}

	for i := range out {
		if total == 0 {
			out[i].Proportion = 1 / float64(n)
		} else {
			out[i].Proportion /= float64(total)
		}
	}
	return out, nil
}

func median(bin []colour.HSV8, field func(colour.HSV8) int) float64 {
	vals := make([]int, len(bin))
	for i, p := range bin {
		vals[i] = field(p)
	}
	slices.Sort(vals)

	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return float64(vals[mid])
	}
	return float64(vals[mid-1]+vals[mid]) / 2
}
