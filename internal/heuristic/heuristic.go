// Package heuristic chooses how many dominant colours to extract from an image.
package heuristic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/colorsort/internal/colour"
)

// Name identifies a cluster-count heuristic.
type Name string

const (
	// HueCoverage scales MaxN by the share of the 256 hues present in the image.
	HueCoverage Name = "hue_coverage"

	// HueBinned counts the non-empty bins among MaxN equal-width hue bins.
	HueBinned Name = "hue_binned"

	// BinnedWithThreshold counts the bins holding more than Threshold times the fullest bin.
	BinnedWithThreshold Name = "binned_with_threshold"

	// SimpleThreshold counts the bins holding more than Threshold of all samples.
	SimpleThreshold Name = "simple_threshold"

	// Default is the heuristic used when none is configured.
	Default = BinnedWithThreshold
)

const (
	// DefaultMinN is the smallest n any heuristic returns.
	DefaultMinN = 2

	// DefaultMaxN is the largest n any heuristic returns, and the bin count
	// the binned heuristics use.
	DefaultMaxN = 8

	// DefaultThreshold is the threshold used by the thresholded heuristics.
	DefaultThreshold = 0.1
)

// ErrUnknownHeuristic is returned for heuristic names that are not recognised.
var ErrUnknownHeuristic = errors.New("unknown heuristic")

// Params tunes the heuristics.
type Params struct {
	MinN      int
	MaxN      int
	Threshold float64
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{MinN: DefaultMinN, MaxN: DefaultMaxN, Threshold: DefaultThreshold}
}

// Func computes n from 8-bit HSV samples.
type Func func(samples []colour.HSV8) (int, error)

// aliases maps the long-form names accepted on input to their canonical name.
var aliases = map[string]Name{
	"auto_n_hue":                   HueCoverage,
	"auto_n_hue_binned":            HueBinned,
	"auto_n_binned_with_threshold": BinnedWithThreshold,
	"auto_n_simple_threshold":      SimpleThreshold,
}

// ValidNames returns every canonical heuristic name.
func ValidNames() []Name {
	return []Name{HueCoverage, HueBinned, BinnedWithThreshold, SimpleThreshold}
}

// Parse validates a heuristic name. Matching is case-insensitive and accepts
// the auto_n_* long forms.
func Parse(s string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if n, ok := aliases[key]; ok {
		return n, nil
	}
	n := Name(key)
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

// Validate checks that the name is one of the known heuristics.
func (n Name) Validate() error {
	switch n {
	case HueCoverage, HueBinned, BinnedWithThreshold, SimpleThreshold:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: %v)", ErrUnknownHeuristic, string(n), ValidNames())
	}
}

// String returns the heuristic name.
func (n Name) String() string {
	return string(n)
}

// Lookup returns the function for a heuristic name bound to params.
// HueBinned ignores params.Threshold and always uses 0.
func Lookup(name Name, params Params) (Func, error) {
	switch name {
	case HueCoverage:
		return func(s []colour.HSV8) (int, error) { return ByHueCoverage(s, params) }, nil
	case HueBinned:
		p := params
		p.Threshold = 0
		return func(s []colour.HSV8) (int, error) { return ByBinnedThreshold(s, p) }, nil
	case BinnedWithThreshold:
		return func(s []colour.HSV8) (int, error) { return ByBinnedThreshold(s, params) }, nil
	case SimpleThreshold:
		return func(s []colour.HSV8) (int, error) { return BySimpleThreshold(s, params) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, string(name))
	}
}

// ByHueCoverage returns max(MinN, round(distinct hues / 256 * MaxN)).
func ByHueCoverage(samples []colour.HSV8, p Params) (int, error) {
	seen := make(map[int]struct{}, colour.NumHues8)
	for _, s := range samples {
		if s.H < 0 || s.H >= colour.NumHues8 {
			return 0, fmt.Errorf("%w: %d", ErrHueOutOfRange, s.H)
		}
		seen[s.H] = struct{}{}
	}
	coverage := float64(len(seen)) / float64(colour.NumHues8)
	return max(p.MinN, colour.RoundToInt(coverage*float64(p.MaxN))), nil
}

// ByBinnedThreshold bins hues into MaxN bins and counts the bins whose size is
// strictly greater than Threshold times the size of the fullest bin.
func ByBinnedThreshold(samples []colour.HSV8, p Params) (int, error) {
	counts, err := HueCounts(samples, p.MaxN)
	if err != nil {
		return 0, err
	}

	largest := 0
	for _, c := range counts {
		largest = max(largest, c)
	}

	limit := p.Threshold * float64(largest)
	return max(p.MinN, countAbove(counts, limit)), nil
}

// BySimpleThreshold bins hues into MaxN bins and counts the bins whose size is
// strictly greater than Threshold times the total number of samples.
func BySimpleThreshold(samples []colour.HSV8, p Params) (int, error) {
	counts, err := HueCounts(samples, p.MaxN)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	limit := p.Threshold * float64(total)
	return max(p.MinN, countAbove(counts, limit)), nil
}

func countAbove(counts []int, limit float64) int {
	n := 0
	for _, c := range counts {
		if float64(c) > limit {
			n++
		}
	}
	return n
}
