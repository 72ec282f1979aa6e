// Package testutil generates image fixtures for tests.
package testutil

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Named fixture colours.
var (
	Black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Gray  = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	Red   = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	Green = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	Blue  = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
)

// SixColours maps the fixture names used across tests to their colours.
var SixColours = map[string]color.NRGBA{
	"black": Black,
	"blue":  Blue,
	"gray":  Gray,
	"green": Green,
	"red":   Red,
	"white": White,
}

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// Blocks returns a w x h image split into equal-height horizontal bands, one per colour.
func Blocks(w, h int, colours ...color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	band := max(h/len(colours), 1)
	for y := range h {
		c := colours[min(y/band, len(colours)-1)]
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// FixtureName returns the conventional fixture filename, e.g. "100-by-100-red.jpg".
func FixtureName(w, h int, name, ext string) string {
	return fmt.Sprintf("%d-by-%d-%s.%s", w, h, name, strings.TrimPrefix(ext, "."))
}

// WriteJPEG encodes img at quality 100 to dir/name and returns the path.
func WriteJPEG(t testing.TB, dir, name string, img image.Image) string {
	t.Helper()
	return write(t, dir, name, func(f *os.File) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	})
}

// WritePNG encodes img to dir/name and returns the path.
func WritePNG(t testing.TB, dir, name string, img image.Image) string {
	t.Helper()
	return write(t, dir, name, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

// SolidSet writes one w x h solid JPEG per entry of SixColours and returns the
// paths keyed by colour name.
func SolidSet(t testing.TB, dir string, w, h int) map[string]string {
	t.Helper()
	paths := make(map[string]string, len(SixColours))
	for name, c := range SixColours {
		paths[name] = WriteJPEG(t, dir, FixtureName(w, h, name, "jpg"), Solid(w, h, c))
	}
	return paths
}

func write(t testing.TB, dir, name string, encode func(*os.File) error) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	f, err := os.Create(path) // #nosec G304 -- test fixture path
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatalf("failed to encode fixture %s: %v", name, err)
	}
	return path
}
