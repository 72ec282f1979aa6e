package analysis

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/colorsort/internal/colour"
	"github.com/jmylchreest/colorsort/internal/heuristic"
	imgutil "github.com/jmylchreest/colorsort/internal/image"
)

// Dominant is one dominant colour and the share of the image it represents.
type Dominant struct {
	RGB        colour.RGB `json:"rgb"`
	HSV        colour.HSV `json:"hsv"`
	Proportion float64    `json:"proportion"`
}

// Image is an analysed image. Every value is computed by New and never changes.
type Image interface {
	Path() string
	Name() string
	Algorithm() Algorithm
	NColors() int
	Width() int
	Height() int
	Orientation() imgutil.Orientation
	Raster() *image.NRGBA

	// Dominant returns the dominant colours ordered by descending proportion.
	Dominant() []Dominant
	DominantRGB(round bool) []colour.RGB
	DominantHSV(round bool) []colour.HSV
	MostDominantRGB(round bool) colour.RGB
	MostDominantHSV(round bool) colour.HSV

	// IsBW reports whether the most dominant colour has a saturation below 1.
	IsBW() bool
	HueSortMetric() float64
	GenerateFilename(index int, base string) string
	Summary() string
}

// New loads and analyses the image at path.
func New(path string, cfg Config) (Image, error) {
	img, err := imgutil.NewFileLoader().Load(path)
	if err != nil {
		return nil, err
	}
	return FromImage(path, img, cfg)
}

// FromImage analyses an already decoded image. path is used for identity,
// naming and the filepath seed mode.
func FromImage(path string, img image.Image, cfg Config) (Image, error) {
	if err := cfg.Algorithm.Validate(); err != nil {
		return nil, err
	}

	raster := imgutil.Resize(img, cfg.ResizeLongAxis)
	b := baseImage{
		path:        path,
		algorithm:   cfg.Algorithm,
		raster:      raster,
		orientation: imgutil.OrientationOf(raster.Bounds().Dx(), raster.Bounds().Dy()),
		crop:        imgutil.CropRect(raster.Bounds(), cfg.EdgeCrop, cfg.cropX()),
	}
	if b.crop.Empty() {
		return nil, fmt.Errorf("edge crop leaves no pixels in %s", path)
	}

	n, err := resolveNColors(b.raster, b.crop, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve colour count for %s: %w", path, err)
	}
	b.nColors = n

	switch cfg.Algorithm {
	case KMeans:
		return newClustered(b, cfg)
	case HueDist:
		return newHueDistributed(b, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(cfg.Algorithm))
	}
}

func resolveNColors(raster *image.NRGBA, crop image.Rectangle, cfg Config) (int, error) {
	if cfg.NColors > 0 {
		return cfg.NColors, nil
	}
	if cfg.Heuristic == "" {
		return 0, ErrNoColourCount
	}
	fn, err := heuristic.Lookup(cfg.Heuristic, cfg.params())
	if err != nil {
		return 0, err
	}
	return fn(imgutil.HSV8Samples(raster, crop))
}

// baseImage holds what every variant shares.
type baseImage struct {
	path        string
	algorithm   Algorithm
	raster      *image.NRGBA
	orientation imgutil.Orientation
	crop        image.Rectangle
	nColors     int
	dominant    []Dominant
}

func (b *baseImage) Path() string                     { return b.path }
func (b *baseImage) Name() string                     { return filepath.Base(b.path) }
func (b *baseImage) Algorithm() Algorithm             { return b.algorithm }
func (b *baseImage) NColors() int                     { return b.nColors }
func (b *baseImage) Width() int                       { return b.raster.Bounds().Dx() }
func (b *baseImage) Height() int                      { return b.raster.Bounds().Dy() }
func (b *baseImage) Orientation() imgutil.Orientation { return b.orientation }
func (b *baseImage) Raster() *image.NRGBA             { return b.raster }

func (b *baseImage) Dominant() []Dominant {
	out := make([]Dominant, len(b.dominant))
	copy(out, b.dominant)
	return out
}

func (b *baseImage) DominantRGB(round bool) []colour.RGB {
	out := make([]colour.RGB, len(b.dominant))
	for i, d := range b.dominant {
		out[i] = d.RGB
		if round {
			out[i] = d.RGB.Round()
		}
	}
	return out
}

func (b *baseImage) DominantHSV(round bool) []colour.HSV {
	out := make([]colour.HSV, len(b.dominant))
	for i, d := range b.dominant {
		out[i] = d.HSV
		if round {
			out[i] = d.HSV.Round()
		}
	}
	return out
}

func (b *baseImage) MostDominantRGB(round bool) colour.RGB {
	if round {
		return b.dominant[0].RGB.Round()
	}
	return b.dominant[0].RGB
}

func (b *baseImage) MostDominantHSV(round bool) colour.HSV {
	if round {
		return b.dominant[0].HSV.Round()
	}
	return b.dominant[0].HSV
}

func (b *baseImage) IsBW() bool {
	return b.dominant[0].HSV.S < 1
}

func (b *baseImage) HueSortMetric() float64 {
	return colour.HueSortMetric(b.dominant[0].HSV.H)
}

// GenerateFilename returns "{index}_{base}_hue={h}_sat={s}_val={v}_n={n}.jpg"
// using the rounded most dominant colour. The index prefix is omitted when index < 0.
func (b *baseImage) GenerateFilename(index int, base string) string {
	var sb strings.Builder
	if index >= 0 {
		fmt.Fprintf(&sb, "%d_", index)
	}
	hsv := b.MostDominantHSV(true)
	fmt.Fprintf(&sb, "%s_hue=%d_sat=%d_val=%d_n=%d.jpg", base, int(hsv.H), int(hsv.S), int(hsv.V), b.nColors)
	return sb.String()
}

// Summary returns a short multi-line description of the image and its colours.
func (b *baseImage) Summary() string {
	rgbs := make([]string, len(b.dominant))
	hsvs := make([]string, len(b.dominant))
	for i, d := range b.dominant {
		r, h := d.RGB.Round(), d.HSV.Round()
		rgbs[i] = fmt.Sprintf("[%d, %d, %d]", int(r.R), int(r.G), int(r.B))
		hsvs[i] = fmt.Sprintf("[%d, %d, %d]", int(h.H), int(h.S), int(h.V))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: n=%d, algorithm=%s\n", b.Name(), b.nColors, b.algorithm)
	fmt.Fprintf(&sb, "    rgb=[%s]\n", strings.Join(rgbs, ", "))
	fmt.Fprintf(&sb, "    hsv=[%s]", strings.Join(hsvs, ", "))
	return sb.String()
}
