package heuristic

import (
	"errors"
	"slices"
	"testing"

	"github.com/jmylchreest/colorsort/internal/colour"
)

// hueSamples builds fully saturated samples. Without spread the hues are
// 0..nHues-1; with spread they step by 256/DefaultMaxN, capped at 255.
func hueSamples(nHues int, spread bool, extra ...int) []colour.HSV8 {
	step := colour.NumHues8 / DefaultMaxN
	out := make([]colour.HSV8, 0, nHues+len(extra))
	for i := range nHues {
		h := i
		if spread {
			h = min(step*i, colour.NumHues8-1)
		}
		out = append(out, colour.HSV8{H: h, S: 255, V: 255})
	}
	for _, h := range extra {
		out = append(out, colour.HSV8{H: h, S: 255, V: 255})
	}
	return out
}

func TestHueCounts(t *testing.T) {
	tests := []struct {
		name  string
		nHues int
		nBins int
		want  map[int]int
	}{
		{name: "ten hues two bins", nHues: 10, nBins: 2, want: map[int]int{0: 10}},
		{name: "spill into second bin", nHues: 129, nBins: 2, want: map[int]int{0: 128, 1: 1}},
		{name: "one per bin", nHues: 256, nBins: 256, want: fill(256, 1)},
		{name: "two per bin", nHues: 256, nBins: 128, want: fill(128, 2)},
		{name: "eight bins", nHues: 256, nBins: 8, want: fill(8, 32)},
		{name: "clamped bins", nHues: 256, nBins: 1000, want: fill(256, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HueCounts(hueSamples(tt.nHues, false), tt.nBins)
			if err != nil {
				t.Fatalf("HueCounts() error = %v", err)
			}
			wantLen := min(tt.nBins, colour.NumHues8)
			if len(got) != wantLen {
				t.Fatalf("len(HueCounts()) = %d, want %d", len(got), wantLen)
			}
			for i, c := range got {
				if c != tt.want[i] {
					t.Errorf("HueCounts()[%d] = %d, want %d", i, c, tt.want[i])
				}
			}
		})
	}
}

func fill(n, v int) map[int]int {
	m := make(map[int]int, n)
	for i := range n {
		m[i] = v
	}
	return m
}

func TestComputeHueDistKeepsEmptyBins(t *testing.T) {
	for nBins := 1; nBins <= colour.NumHues8; nBins++ {
		dist, err := ComputeHueDist([]colour.HSV8{{H: 255, S: 1, V: 1}}, nBins)
		if err != nil {
			t.Fatalf("ComputeHueDist(%d) error = %v", nBins, err)
		}
		if len(dist) != nBins {
			t.Fatalf("len(ComputeHueDist(%d)) = %d", nBins, len(dist))
		}
		if got := len(dist[nBins-1]); got != 1 {
			t.Fatalf("ComputeHueDist(%d): last bin has %d samples, want 1", nBins, got)
		}
	}
}

func TestComputeHueDistErrors(t *testing.T) {
	tests := []struct {
		name    string
		samples []colour.HSV8
		nBins   int
		wantErr error
	}{
		{name: "hue 256", samples: hueSamples(257, false), nBins: 256, wantErr: ErrHueOutOfRange},
		{name: "negative hue", samples: []colour.HSV8{{H: -1}}, nBins: 8, wantErr: ErrHueOutOfRange},
		{name: "zero bins", samples: hueSamples(1, false), nBins: 0, wantErr: ErrInvalidBins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeHueDist(tt.samples, tt.nBins)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ComputeHueDist() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestByHueCoverage(t *testing.T) {
	tests := []struct {
		nHues int
		want  int
	}{
		{1, 2}, {51, 2}, {80, 3}, {160, 5}, {239, 7}, {240, 8}, {256, 8},
	}

	for _, tt := range tests {
		got, err := ByHueCoverage(hueSamples(tt.nHues, false), DefaultParams())
		if err != nil {
			t.Fatalf("ByHueCoverage(%d) error = %v", tt.nHues, err)
		}
		if got != tt.want {
			t.Errorf("ByHueCoverage(%d hues) = %d, want %d", tt.nHues, got, tt.want)
		}
	}
}

func TestHueBinned(t *testing.T) {
	fn, err := Lookup(HueBinned, DefaultParams())
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	tests := []struct {
		nHues  int
		spread bool
		want   int
	}{
		{1, false, 2}, {32, false, 2}, {64, false, 2}, {65, false, 3}, {160, false, 5},
		{242, false, 8}, {256, false, 8},
		{1, true, 2}, {2, true, 2}, {3, true, 3}, {5, true, 5}, {8, true, 8}, {9, true, 8}, {256, true, 8},
	}

	for _, tt := range tests {
		got, err := fn(hueSamples(tt.nHues, tt.spread))
		if err != nil {
			t.Fatalf("hue_binned(%d, %v) error = %v", tt.nHues, tt.spread, err)
		}
		if got != tt.want {
			t.Errorf("hue_binned(%d hues, spread=%v) = %d, want %d", tt.nHues, tt.spread, got, tt.want)
		}
	}
}

func TestByBinnedThreshold(t *testing.T) {
	tests := []struct {
		name      string
		nHues     int
		spread    bool
		extra     []int
		threshold float64
		want      int
	}{
		{name: "1 hue", nHues: 1, want: 2},
		{name: "32 hues", nHues: 32, want: 2},
		{name: "64 hues", nHues: 64, want: 2},
		{name: "65 hues", nHues: 65, want: 3},
		{name: "160 hues", nHues: 160, want: 5},
		{name: "242 hues", nHues: 242, want: 8},
		{name: "256 hues", nHues: 256, want: 8},
		{name: "65 hues default threshold", nHues: 65, threshold: DefaultThreshold, want: 2},
		{name: "160 hues default threshold", nHues: 160, threshold: DefaultThreshold, want: 5},
		{name: "256 hues default threshold", nHues: 256, threshold: DefaultThreshold, want: 8},
		{name: "spread", nHues: 8, spread: true, want: 8},
		{name: "spread extra 0.1", nHues: 8, spread: true, extra: []int{1, 1, 1, 1}, threshold: 0.1, want: 8},
		{name: "spread extra 0.2", nHues: 8, spread: true, extra: []int{1, 1, 1, 1}, threshold: 0.2, want: 2},
		{name: "two heavy 0.2", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33}, threshold: 0.2, want: 2},
		{name: "three heavy 0.1", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 65}, threshold: 0.1, want: 8},
		{name: "three heavy 0.2", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 65}, threshold: 0.2, want: 3},
		{name: "three heavy 0.4", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 65}, threshold: 0.4, want: 2},
		{name: "even heavy 0.4", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 33, 65, 65}, threshold: 0.4, want: 3},
		{name: "uneven heavy 0.4", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 33, 65}, threshold: 0.4, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.Threshold = tt.threshold
			got, err := ByBinnedThreshold(hueSamples(tt.nHues, tt.spread, tt.extra...), p)
			if err != nil {
				t.Fatalf("ByBinnedThreshold() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ByBinnedThreshold() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBySimpleThreshold(t *testing.T) {
	tests := []struct {
		name      string
		nHues     int
		spread    bool
		extra     []int
		threshold float64
		want      int
	}{
		{name: "1 hue", nHues: 1, want: 2},
		{name: "65 hues", nHues: 65, want: 3},
		{name: "242 hues", nHues: 242, want: 8},
		{name: "spread", nHues: 8, spread: true, want: 8},
		{name: "extra 0.05", nHues: 8, spread: true, extra: []int{1, 1, 1, 1}, threshold: 0.05, want: 8},
		{name: "extra 0.1", nHues: 8, spread: true, extra: []int{1, 1, 1, 1}, threshold: 0.1, want: 2},
		{name: "two bins 0.1", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 33}, threshold: 0.1, want: 2},
		{name: "three bins 0.1", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 33, 65}, threshold: 0.1, want: 3},
		{name: "three bins 0.2", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 33, 65}, threshold: 0.2, want: 2},
		{name: "nineteen 0.1", nHues: 8, spread: true, extra: []int{1, 1, 1, 1, 33, 33, 33, 65, 65}, threshold: 0.1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.Threshold = tt.threshold
			got, err := BySimpleThreshold(hueSamples(tt.nHues, tt.spread, tt.extra...), p)
			if err != nil {
				t.Fatalf("BySimpleThreshold() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BySimpleThreshold() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Name
		wantErr bool
	}{
		{in: "hue_coverage", want: HueCoverage},
		{in: "HUE_BINNED", want: HueBinned},
		{in: " binned_with_threshold ", want: BinnedWithThreshold},
		{in: "simple_threshold", want: SimpleThreshold},
		{in: "auto_n_hue", want: HueCoverage},
		{in: "auto_n_simple_threshold", want: SimpleThreshold},
		{in: "FAKE", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownHeuristic) {
				t.Errorf("Parse() error = %v, want ErrUnknownHeuristic", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupDefault(t *testing.T) {
	if Default != BinnedWithThreshold {
		t.Errorf("Default = %q, want %q", Default, BinnedWithThreshold)
	}
	fn, err := Lookup(Default, DefaultParams())
	if err != nil {
		t.Fatalf("Lookup(Default) error = %v", err)
	}
	got, _ := fn(hueSamples(65, false))
	want, _ := ByBinnedThreshold(hueSamples(65, false), DefaultParams())
	if got != want {
		t.Errorf("Lookup(Default)() = %d, want %d", got, want)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup(Name("FAKE"), DefaultParams()); !errors.Is(err, ErrUnknownHeuristic) {
		t.Errorf("Lookup() error = %v, want ErrUnknownHeuristic", err)
	}
}

func TestValidNames(t *testing.T) {
	for _, n := range ValidNames() {
		if err := n.Validate(); err != nil {
			t.Errorf("%q.Validate() error = %v", n, err)
		}
	}
	if !slices.Contains(ValidNames(), Default) {
		t.Errorf("ValidNames() does not contain Default")
	}
}
