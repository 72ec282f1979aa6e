// Package analysis builds analysed images: a resized raster together with its
// dominant colours, computed once by one of the dominant-colour algorithms.
package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm selects how dominant colours are computed.
type Algorithm string

const (
	// KMeans clusters the pixels and ranks the cluster centres by size.
	KMeans Algorithm = "kmeans"

	// HueDist ranks the 256 hue bins by size and summarises the fullest ones.
	HueDist Algorithm = "hue_dist"

	// DefaultAlgorithm is used when none is configured.
	DefaultAlgorithm = KMeans
)

var (
	// ErrUnknownAlgorithm is returned for algorithm names that are not recognised.
	ErrUnknownAlgorithm = errors.New("unknown dominant colour algorithm")

	// ErrNoColourCount is returned when neither a colour count nor a heuristic is configured.
	ErrNoColourCount = errors.New("either a colour count or a heuristic is required")

	// ErrRemapUnsupported is returned when remapping is requested for an
	// algorithm that does not assign pixels to clusters.
	ErrRemapUnsupported = errors.New("remapping is not supported by this algorithm")
)

// ValidAlgorithms returns all valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{KMeans, HueDist}
}

// ParseAlgorithm converts a string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Validate checks if the algorithm is valid.
func (a Algorithm) Validate() error {
	switch a {
	case KMeans, HueDist:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: %v)", ErrUnknownAlgorithm, string(a), ValidAlgorithms())
	}
}

// SupportsRemap reports whether images analysed with a can be remapped.
func (a Algorithm) SupportsRemap() bool {
	return a == KMeans
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	return string(a)
}
