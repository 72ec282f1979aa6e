// Package config resolves colorsort settings from defaults, .env files and
// COLORSORT_* environment variables. Command-line flags are applied on top by
// the cli package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/jmylchreest/colorsort/internal/analysis"
	"github.com/jmylchreest/colorsort/internal/heuristic"
	"github.com/jmylchreest/colorsort/internal/seed"
	"github.com/jmylchreest/colorsort/internal/sorter"
	"github.com/jmylchreest/colorsort/internal/visual"
)

// EnvPrefix prefixes every environment variable colorsort reads.
const EnvPrefix = "COLORSORT_"

// DefaultOutputDir is where generated files go when nothing else is configured.
const DefaultOutputDir = "output"

// Settings is the full configuration surface of a colorsort run.
type Settings struct {
	// Analysis
	Algorithm      analysis.Algorithm
	NColors        int
	Heuristic      heuristic.Name
	Threshold      float64
	ResizeLongAxis int
	EdgeCrop       float64
	SeedMode       seed.Mode
	Seed           uint64
	Workers        int

	// Sorting
	SortMethod sorter.Method
	SkipSort   bool
	Reverse    bool
	Anchor     string
	ExcludeBW  bool

	// Outputs
	OutputDir          string
	SaveSorted         bool
	DominantColours    bool
	Remapped           bool
	ChipLabels         bool
	ChipSize           int
	ChipGap            int
	ChipBorder         int
	Spectrum           bool
	SpectrumAllColours bool
	SpectrumHeight     int
	SpectrumSVG        bool
	Collage            bool
	CollageColumns     int
	CollageSpacing     int
	Summary            bool
	Archive            bool
}

// Defaults returns the settings used when nothing is overridden.
func Defaults() Settings {
	return Settings{
		Algorithm:      analysis.DefaultAlgorithm,
		Heuristic:      heuristic.Default,
		Threshold:      heuristic.DefaultThreshold,
		ResizeLongAxis: analysis.DefaultResizeLongAxis,
		SeedMode:       seed.DefaultMode,
		Workers:        runtime.NumCPU(),
		SortMethod:     sorter.DefaultMethod,
		OutputDir:      DefaultOutputDir,
		ChipSize:       visual.DefaultChipSize,
		ChipGap:        visual.DefaultChipGap,
		ChipBorder:     visual.DefaultBorder,
		SpectrumHeight: visual.DefaultSpectrumHeight,
		CollageSpacing: visual.DefaultCollageSpacing,
	}
}

// Load returns Defaults overlaid with values from envFiles (".env" when none
// are given) and then the process environment. Missing env files are ignored;
// the process environment always wins over file values.
func Load(envFiles ...string) (Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	values := map[string]string{}
	for _, file := range envFiles {
		fileValues, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Settings{}, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			values[k] = v
		}
	}

	s := Defaults()
	if err := s.apply(values); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// apply overlays recognised COLORSORT_* keys onto s.
func (s *Settings) apply(values map[string]string) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := values[EnvPrefix+key]; ok {
			*dst = strings.TrimSpace(v)
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := values[EnvPrefix+key]; ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := values[EnvPrefix+key]; ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := values[EnvPrefix+key]; ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	var algorithm, heur, method, mode string
	str("ALGORITHM", &algorithm)
	str("HEURISTIC", &heur)
	str("SORT_METHOD", &method)
	str("SEED_MODE", &mode)
	if algorithm != "" {
		a, err := analysis.ParseAlgorithm(algorithm)
		errs = append(errs, err)
		s.Algorithm = a
	}
	if heur != "" {
		h, err := heuristic.Parse(heur)
		errs = append(errs, err)
		s.Heuristic = h
	}
	if method != "" {
		m, err := sorter.ParseMethod(method)
		errs = append(errs, err)
		s.SortMethod = m
	}
	if mode != "" {
		m, err := seed.ParseMode(mode)
		errs = append(errs, err)
		s.SeedMode = m
	}
	if v, ok := values[EnvPrefix+"SEED"]; ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			s.Seed = n
		}
	}

	integer("N_COLORS", &s.NColors)
	float("THRESHOLD", &s.Threshold)
	integer("RESIZE", &s.ResizeLongAxis)
	float("EDGE_CROP", &s.EdgeCrop)
	integer("WORKERS", &s.Workers)
	boolean("REVERSE", &s.Reverse)
	str("ANCHOR", &s.Anchor)
	boolean("EXCLUDE_BW", &s.ExcludeBW)
	str("OUTPUT_DIR", &s.OutputDir)
	integer("CHIP_SIZE", &s.ChipSize)
	integer("SPECTRUM_HEIGHT", &s.SpectrumHeight)
	integer("COLLAGE_COLUMNS", &s.CollageColumns)

	return errors.Join(errs...)
}

// Validate reports configuration errors. It is called before any image is read.
func (s Settings) Validate() error {
	if err := s.Analysis(nil).Validate(); err != nil {
		return err
	}
	if !s.SkipSort {
		if err := s.SortMethod.Validate(); err != nil {
			return err
		}
	}
	if s.Remapped && !s.Algorithm.SupportsRemap() {
		return fmt.Errorf("%w: %s", analysis.ErrRemapUnsupported, s.Algorithm)
	}
	if s.Threshold < 0 || s.Threshold >= 1 {
		return fmt.Errorf("heuristic threshold must be in [0, 1), got %v", s.Threshold)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", s.Workers)
	}
	if s.SpectrumHeight <= 0 {
		return fmt.Errorf("spectrum height must be positive, got %d", s.SpectrumHeight)
	}
	if s.ChipSize <= 0 {
		return fmt.Errorf("chip size must be positive, got %d", s.ChipSize)
	}
	if s.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

// Analysis returns the per-image analysis configuration.
func (s Settings) Analysis(logger hclog.Logger) analysis.Config {
	params := heuristic.DefaultParams()
	params.Threshold = s.Threshold
	return analysis.Config{
		Algorithm:       s.Algorithm,
		ResizeLongAxis:  s.ResizeLongAxis,
		EdgeCrop:        s.EdgeCrop,
		NColors:         s.NColors,
		Heuristic:       s.Heuristic,
		HeuristicParams: params,
		Seed:            seed.Config{Mode: s.SeedMode, Value: s.Seed},
		Logger:          logger,
	}
}

// Panel returns the dominant-colour panel options.
func (s Settings) Panel() visual.PanelOptions {
	return visual.PanelOptions{
		ChipSize: s.ChipSize,
		ChipGap:  s.ChipGap,
		Border:   s.ChipBorder,
		Remapped: s.Remapped,
		Labels:   s.ChipLabels,
	}
}

// WantsOutput reports whether any graphic or file output is enabled.
func (s Settings) WantsOutput() bool {
	return s.SaveSorted || s.DominantColours || s.Spectrum || s.Collage
}
