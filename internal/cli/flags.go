package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/colorsort/internal/analysis"
	"github.com/jmylchreest/colorsort/internal/config"
	"github.com/jmylchreest/colorsort/internal/heuristic"
	"github.com/jmylchreest/colorsort/internal/seed"
	"github.com/jmylchreest/colorsort/internal/sorter"
)

// enumValue is a pflag.Value that only accepts names its parser recognises,
// so bad names fail at flag parse time.
type enumValue[T ~string] struct {
	target *T
	parse  func(string) (T, error)
	valid  []T
	kind   string
}

var _ pflag.Value = (*enumValue[analysis.Algorithm])(nil)

func newEnum[T ~string](target *T, parse func(string) (T, error), valid []T, kind string) *enumValue[T] {
	return &enumValue[T]{target: target, parse: parse, valid: valid, kind: kind}
}

func (e *enumValue[T]) String() string {
	if e == nil || e.target == nil {
		return ""
	}
	return string(*e.target)
}

func (e *enumValue[T]) Set(s string) error {
	v, err := e.parse(s)
	if err != nil {
		return err
	}
	*e.target = v
	return nil
}

func (e *enumValue[T]) Type() string { return e.kind }

// usage appends the accepted names to a flag description.
func (e *enumValue[T]) usage(desc string) string {
	names := make([]string, len(e.valid))
	for i, v := range e.valid {
		names[i] = string(v)
	}
	return fmt.Sprintf("%s (%s)", desc, strings.Join(names, ", "))
}

// registerAnalysisFlags adds the flags shared by every command that analyses images.
func registerAnalysisFlags(cmd *cobra.Command, s *config.Settings) {
	f := cmd.Flags()

	alg := newEnum(&s.Algorithm, analysis.ParseAlgorithm, analysis.ValidAlgorithms(), "algorithm")
	f.VarP(alg, "algorithm", "a", alg.usage("dominant colour algorithm"))

	heur := newEnum(&s.Heuristic, heuristic.Parse, heuristic.ValidNames(), "heuristic")
	f.Var(heur, "n-colors-heuristic", heur.usage("heuristic that picks n when --n-colors is not set"))

	mode := newEnum(&s.SeedMode, seed.ParseMode, seed.ValidModes(), "mode")
	f.Var(mode, "seed-mode", mode.usage("how the clustering seed is derived"))

	f.IntVarP(&s.NColors, "n-colors", "n", s.NColors, "number of dominant colours (0 uses the heuristic)")
	f.Float64Var(&s.Threshold, "threshold", s.Threshold, "heuristic threshold as a fraction of pixels")
	f.IntVar(&s.ResizeLongAxis, "resize", s.ResizeLongAxis, "resize the longer axis to this many pixels before analysis (0 keeps the original size)")
	f.Float64Var(&s.EdgeCrop, "edge-crop", s.EdgeCrop, "fraction cropped from every edge before analysis, in [0, 0.5)")
	f.Uint64Var(&s.Seed, "seed", s.Seed, "clustering seed for --seed-mode manual")
	f.IntVarP(&s.Workers, "workers", "j", s.Workers, "images analysed in parallel")
}

// registerSortFlags adds the sort and output flags.
func registerSortFlags(cmd *cobra.Command, s *config.Settings) {
	f := cmd.Flags()

	method := newEnum(&s.SortMethod, sorter.ParseMethod, sorter.ValidMethods(), "method")
	f.VarP(method, "sort-method", "m", method.usage("primary sort key"))

	f.BoolVar(&s.SkipSort, "skip-sort", s.SkipSort, "keep the discovery order")
	f.BoolVarP(&s.Reverse, "reverse", "r", s.Reverse, "reverse the sort order")
	f.StringVar(&s.Anchor, "anchor", s.Anchor, "file name of the image the sorted sequence starts with")
	f.BoolVar(&s.ExcludeBW, "exclude-bw", s.ExcludeBW, "leave black and white images out of every output")

	f.StringVarP(&s.OutputDir, "output-dir", "o", s.OutputDir, "directory for generated files")
	f.BoolVar(&s.SaveSorted, "save-sorted", s.SaveSorted, "save the sorted sequence of images")
	f.BoolVar(&s.DominantColours, "dominant-colors", s.DominantColours, "save a dominant colour panel for every image")
	f.BoolVar(&s.Remapped, "remapped", s.Remapped, "add the image redrawn with its dominant colours to each panel (kmeans only)")
	f.BoolVar(&s.ChipLabels, "chip-labels", s.ChipLabels, "print hex codes on the colour chips")
	f.IntVar(&s.ChipSize, "chip-size", s.ChipSize, "colour chip size in pixels")
	f.BoolVar(&s.Spectrum, "spectrum", s.Spectrum, "save a spectrum of the whole collection")
	f.BoolVar(&s.SpectrumAllColours, "spectrum-all-colors", s.SpectrumAllColours, "use every dominant colour in the spectrum instead of the most dominant")
	f.IntVar(&s.SpectrumHeight, "spectrum-height", s.SpectrumHeight, "spectrum height in pixels")
	f.BoolVar(&s.SpectrumSVG, "svg", s.SpectrumSVG, "also write the spectrum as SVG")
	f.BoolVar(&s.Collage, "collage", s.Collage, "save a collage of the sorted images")
	f.IntVar(&s.CollageColumns, "collage-columns", s.CollageColumns, "collage columns (0 keeps the grid square)")
	f.BoolVar(&s.Summary, "summary", s.Summary, "print a summary of every analysed image")
	f.BoolVar(&s.Archive, "archive", s.Archive, "bundle this run's outputs into a .tar.xz archive")
}
