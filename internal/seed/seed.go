// Package seed resolves the k-means seed used when analysing an image.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"path/filepath"
	"strings"
)

// Mode determines how the clustering seed is derived.
type Mode string

const (
	// ModeManual uses a fixed, configured seed (default 0).
	ModeManual Mode = "manual"
	// ModeContent hashes the image pixels, so identical images share a seed.
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute file path.
	ModeFilepath Mode = "filepath"
	// ModeRandom draws a fresh seed on every run. Results are not reproducible.
	ModeRandom Mode = "random"

	// DefaultMode is used when no mode is configured.
	DefaultMode = ModeManual
)

// ErrUnknownMode is returned for seed modes that are not recognised.
var ErrUnknownMode = errors.New("unknown seed mode")

// Config holds the seed settings.
type Config struct {
	Mode  Mode
	Value uint64 // used by ModeManual
}

// Resolve returns the seed for one image.
// img is required for ModeContent and path for ModeFilepath.
func Resolve(img image.Image, path string, cfg Config) (uint64, error) {
	mode := cfg.Mode
	if mode == "" {
		mode = DefaultMode
	}

	switch mode {
	case ModeManual:
		return cfg.Value, nil
	case ModeContent:
		if img == nil {
			return 0, fmt.Errorf("image is required for %s seed mode", mode)
		}
		return FromContent(img), nil
	case ModeFilepath:
		if path == "" {
			return 0, fmt.Errorf("image path is required for %s seed mode", mode)
		}
		return FromPath(path), nil
	case ModeRandom:
		return rand.Uint64(), nil // #nosec G404 -- opt-in non-determinism
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// FromContent hashes the image dimensions and a grid of pixels.
func FromContent(img image.Image) uint64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dims := make([]byte, 8)
	binary.LittleEndian.PutUint32(dims[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are non-negative
	binary.LittleEndian.PutUint32(dims[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are non-negative
	hasher.Write(dims)

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	px := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			px[0] = byte(r >> 8)
			px[1] = byte(g >> 8)
			px[2] = byte(b >> 8)
			px[3] = byte(a >> 8)
			hasher.Write(px)
		}
	}

	return binary.LittleEndian.Uint64(hasher.Sum(nil)[:8])
}

// FromPath hashes the absolute form of path (or path itself if it cannot be resolved).
func FromPath(path string) uint64 {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(abs))
	return binary.LittleEndian.Uint64(sum[:8])
}

// ValidModes returns every seed mode.
func ValidModes() []Mode {
	return []Mode{ModeManual, ModeContent, ModeFilepath, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeManual, ModeContent, ModeFilepath, ModeRandom:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: manual, content, filepath, random)", ErrUnknownMode, s)
	}
}
