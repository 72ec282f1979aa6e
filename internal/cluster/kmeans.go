// Package cluster provides seeded k-means clustering of RGB samples.
package cluster

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/jmylchreest/colorsort/internal/colour"
)

// DefaultMaxIterations bounds the number of assign/update rounds in Fit.
const DefaultMaxIterations = 300

var (
	// ErrNoSamples is returned when Fit is given nothing to cluster.
	ErrNoSamples = errors.New("no samples to cluster")

	// ErrInvalidK is returned when the requested cluster count is below 1.
	ErrInvalidK = errors.New("cluster count must be at least 1")
)

// Options configures a k-means run.
type Options struct {
	// Seed drives k-means++ initialisation. The same seed and samples always
	// produce the same model.
	Seed uint64

	// MaxIterations caps the assign/update rounds. Zero means DefaultMaxIterations.
	MaxIterations int
}

// Model is a fitted k-means model.
type Model struct {
	// Centers holds one centre per cluster, indexed by label.
	Centers []colour.RGB

	// Labels holds the cluster assigned to each training sample.
	Labels []int

	// Iterations is the number of assign/update rounds that ran.
	Iterations int
}

// Bin is one entry of a colour histogram.
type Bin struct {
	Center     colour.RGB `json:"center"`
	Proportion float64    `json:"proportion"`
}

// Fit clusters samples into k groups.
// Clusters that end up with no members keep their previous centre.
func Fit(samples []colour.RGB, k int, opts Options) (*Model, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidK, k)
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	centers := initCentersPlusPlus(samples, k, rng)

	labels := make([]int, len(samples))
	for i := range labels {
		labels[i] = -1
	}

	iter := 0
	converged := false
	for iter < maxIter {
		iter++

		changed := 0
		for i, s := range samples {
			nearest := nearestCenter(s, centers)
			if labels[i] != nearest {
				labels[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			converged = true
			break
		}

		centers = recalculateCenters(samples, labels, centers)
	}

	// Labels must describe the final centres.
	if !converged {
		for i, s := range samples {
			labels[i] = nearestCenter(s, centers)
		}
	}

	return &Model{Centers: centers, Labels: labels, Iterations: iter}, nil
}

// Predict assigns each sample to its nearest centre.
func (m *Model) Predict(samples []colour.RGB) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = nearestCenter(s, m.Centers)
	}
	return out
}

// Histogram returns every centre paired with the share of training samples
// assigned to it, sorted by descending proportion. Ties keep label order.
func (m *Model) Histogram() []Bin {
	counts := make([]int, len(m.Centers))
	for _, l := range m.Labels {
		counts[l]++
	}

	total := float64(len(m.Labels))
	bins := make([]Bin, len(m.Centers))
	for i, c := range m.Centers {
		p := 0.0
		if total > 0 {
			p = float64(counts[i]) / total
		}
		bins[i] = Bin{Center: c, Proportion: p}
	}

	slices.SortStableFunc(bins, func(a, b Bin) int {
		return cmp.Compare(b.Proportion, a.Proportion)
	})
	return bins
}

// initCentersPlusPlus picks k starting centres with the k-means++ rule.
// When every sample already coincides with a chosen centre the last centre
// is repeated, leaving the extra clusters empty.
func initCentersPlusPlus(samples []colour.RGB, k int, rng *rand.Rand) []colour.RGB {
	centers := make([]colour.RGB, 0, k)
	centers = append(centers, samples[rng.IntN(len(samples))])

	distances := make([]float64, len(samples))
	for len(centers) < k {
		total := 0.0
		for i, s := range samples {
			d := math.MaxFloat64
			for _, c := range centers {
				d = min(d, sqDistance(s, c))
			}
			distances[i] = d
			total += d
		}

		if total == 0 {
			centers = append(centers, centers[len(centers)-1])
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		picked := len(samples) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target && d > 0 {
				picked = i
				break
			}
		}
		centers = append(centers, samples[picked])
	}

	return centers
}

// nearestCenter returns the index of the closest centre. Ties go to the lowest index.
func nearestCenter(s colour.RGB, centers []colour.RGB) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range centers {
		d := sqDistance(s, c)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func recalculateCenters(samples []colour.RGB, labels []int, prev []colour.RGB) []colour.RGB {
	sums := make([]colour.RGB, len(prev))
	counts := make([]int, len(prev))
	for i, s := range samples {
		l := labels[i]
		sums[l].R += s.R
		sums[l].G += s.G
		sums[l].B += s.B
		counts[l]++
	}

	centers := make([]colour.RGB, len(prev))
	for i := range prev {
		if counts[i] == 0 {
			centers[i] = prev[i]
			continue
		}
		n := float64(counts[i])
		centers[i] = colour.RGB{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centers
}

func sqDistance(a, b colour.RGB) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return dr*dr + dg*dg + db*db
}
