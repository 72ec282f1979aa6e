package heuristic

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/colorsort/internal/colour"
)

var (
	// ErrHueOutOfRange is returned when a sample's hue is outside [0, 256).
	ErrHueOutOfRange = errors.New("hue out of range")

	// ErrInvalidBins is returned when fewer than one bin is requested.
	ErrInvalidBins = errors.New("bin count must be at least 1")
)

// HueDist holds the samples falling in each hue bin. Index i is bin i, and
// every bin is present even when empty.
type HueDist [][]colour.HSV8

// Counts returns the number of samples in each bin.
func (d HueDist) Counts() []int {
	out := make([]int, len(d))
	for i, b := range d {
		out[i] = len(b)
	}
	return out
}

// ComputeHueDist splits samples into nBins equal-width bins over the 8-bit
// hue range. nBins above 256 is clamped to 256.
func ComputeHueDist(samples []colour.HSV8, nBins int) (HueDist, error) {
	nBins, err := clampBins(nBins)
	if err != nil {
		return nil, err
	}

	dist := make(HueDist, nBins)
	for _, s := range samples {
		b, err := binOf(s.H, nBins)
		if err != nil {
			return nil, err
		}
		dist[b] = append(dist[b], s)
	}
	return dist, nil
}

// HueCounts is ComputeHueDist without keeping the samples.
func HueCounts(samples []colour.HSV8, nBins int) ([]int, error) {
	nBins, err := clampBins(nBins)
	if err != nil {
		return nil, err
	}

	counts := make([]int, nBins)
	for _, s := range samples {
		b, err := binOf(s.H, nBins)
		if err != nil {
			return nil, err
		}
		counts[b]++
	}
	return counts, nil
}

func clampBins(nBins int) (int, error) {
	if nBins < 1 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidBins, nBins)
	}
	return min(nBins, colour.NumHues8), nil
}

func binOf(h, nBins int) (int, error) {
	if h < 0 || h >= colour.NumHues8 {
		return 0, fmt.Errorf("%w: %d", ErrHueOutOfRange, h)
	}
	return h * nBins / colour.NumHues8, nil
}
