package analysis

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colorsort/internal/heuristic"
	"github.com/jmylchreest/colorsort/internal/seed"
)

// DefaultResizeLongAxis is the default length of the longer image axis after resizing.
const DefaultResizeLongAxis = 400

// Config controls how an image is analysed.
type Config struct {
	Algorithm Algorithm

	// ResizeLongAxis is the target length of the longer axis. Zero keeps the original size.
	ResizeLongAxis int

	// EdgeCrop is the fraction of each dimension removed from every side before
	// colour analysis, in [0, 0.5). EdgeCropX overrides it for the left and right edges.
	EdgeCrop  float64
	EdgeCropX *float64

	// NColors is the number of dominant colours. Zero defers to Heuristic.
	NColors int

	// Heuristic picks NColors when it is zero. Empty means no heuristic.
	Heuristic       heuristic.Name
	HeuristicParams heuristic.Params

	Seed          seed.Config
	MaxIterations int

	// Logger receives data-quality warnings. Nil discards them.
	Logger hclog.Logger
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Algorithm:       DefaultAlgorithm,
		ResizeLongAxis:  DefaultResizeLongAxis,
		Heuristic:       heuristic.Default,
		HeuristicParams: heuristic.DefaultParams(),
		Seed:            seed.Config{Mode: seed.DefaultMode},
	}
}

// Validate reports configuration errors before any image is read.
func (c Config) Validate() error {
	if err := c.Algorithm.Validate(); err != nil {
		return err
	}
	if c.ResizeLongAxis < 0 {
		return fmt.Errorf("resize target must not be negative, got %d", c.ResizeLongAxis)
	}
	if err := validateCrop("edge crop", c.EdgeCrop); err != nil {
		return err
	}
	if c.EdgeCropX != nil {
		if err := validateCrop("horizontal edge crop", *c.EdgeCropX); err != nil {
			return err
		}
	}
	if c.NColors < 0 {
		return fmt.Errorf("colour count must not be negative, got %d", c.NColors)
	}
	if c.NColors == 0 {
		if c.Heuristic == "" {
			return ErrNoColourCount
		}
		if err := c.Heuristic.Validate(); err != nil {
			return err
		}
	}
	if _, err := seed.ParseMode(string(c.seedMode())); err != nil {
		return err
	}
	return nil
}

func validateCrop(name string, v float64) error {
	if v < 0 || v >= 0.5 {
		return fmt.Errorf("%s must be in [0, 0.5), got %v", name, v)
	}
	return nil
}

func (c Config) cropX() float64 {
	if c.EdgeCropX != nil {
		return *c.EdgeCropX
	}
	return c.EdgeCrop
}

func (c Config) seedMode() seed.Mode {
	if c.Seed.Mode == "" {
		return seed.DefaultMode
	}
	return c.Seed.Mode
}

func (c Config) params() heuristic.Params {
	if c.HeuristicParams == (heuristic.Params{}) {
		return heuristic.DefaultParams()
	}
	return c.HeuristicParams
}

func (c Config) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}
