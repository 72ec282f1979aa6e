package sorter

import (
	"errors"
	"slices"
	"testing"

	"github.com/jmylchreest/colorsort/internal/colour"
)

type fakeImage struct {
	name string
	hsv  colour.HSV
}

func (f fakeImage) Name() string { return f.name }
func (f fakeImage) IsBW() bool   { return f.hsv.S < 1 }
func (f fakeImage) MostDominantHSV(round bool) colour.HSV {
	if round {
		return f.hsv.Round()
	}
	return f.hsv
}

// fixtures mirrors twelve solid images named "hue-sat-val.jpg". The
// 0-50-100 entry carries the drift a JPEG round trip introduces.
func fixtures() []fakeImage {
	return []fakeImage{
		{"240-100-100.jpg", colour.HSV{H: 240, S: 100, V: 100}},
		{"0-0-100.jpg", colour.HSV{H: 0, S: 0, V: 100}},
		{"120-50-100.jpg", colour.HSV{H: 120, S: 50, V: 100}},
		{"0-100-50.jpg", colour.HSV{H: 0, S: 100, V: 50}},
		{"240-50-100.jpg", colour.HSV{H: 240, S: 50, V: 100}},
		{"0-0-0.jpg", colour.HSV{H: 0, S: 0, V: 0}},
		{"120-100-50.jpg", colour.HSV{H: 120, S: 100, V: 50}},
		{"0-50-100.jpg", colour.HSV{H: 358.5882352941177, S: 49.411764705882355, V: 99.6078431372549}},
		{"240-100-50.jpg", colour.HSV{H: 240, S: 100, V: 50}},
		{"0-0-50.jpg", colour.HSV{H: 0, S: 0, V: 50}},
		{"120-100-100.jpg", colour.HSV{H: 120, S: 100, V: 100}},
		{"0-100-100.jpg", colour.HSV{H: 0, S: 100, V: 100}},
	}
}

func names(items []fakeImage) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func reversed(s []string) []string {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}

var (
	hueColourOrder = []string{
		"0-50-100.jpg",
		"0-100-50.jpg",
		"0-100-100.jpg",
		"120-100-50.jpg",
		"120-50-100.jpg",
		"120-100-100.jpg",
		"240-100-50.jpg",
		"240-50-100.jpg",
		"240-100-100.jpg",
	}
	hueBWOrder = []string{"0-0-0.jpg", "0-0-50.jpg", "0-0-100.jpg"}

	saturationOrder = []string{
		"0-0-0.jpg",
		"0-0-50.jpg",
		"0-0-100.jpg",
		"0-50-100.jpg",
		"120-50-100.jpg",
		"240-50-100.jpg",
		"0-100-50.jpg",
		"120-100-50.jpg",
		"240-100-50.jpg",
		"0-100-100.jpg",
		"120-100-100.jpg",
		"240-100-100.jpg",
	}

	valueOrder = []string{
		"0-0-0.jpg",
		"0-0-50.jpg",
		"0-100-50.jpg",
		"120-100-50.jpg",
		"240-100-50.jpg",
		"0-50-100.jpg",
		"0-0-100.jpg",
		"0-100-100.jpg",
		"120-50-100.jpg",
		"120-100-100.jpg",
		"240-50-100.jpg",
		"240-100-100.jpg",
	}
)

func TestHue(t *testing.T) {
	tests := []struct {
		name    string
		reverse bool
		want    []string
	}{
		{name: "forward", want: append(slices.Clone(hueColourOrder), hueBWOrder...)},
		{name: "reverse", reverse: true, want: append(reversed(hueColourOrder), reversed(hueBWOrder)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Hue(fixtures(), tt.reverse, "", nil))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Hue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestByHueGroups(t *testing.T) {
	colours, bw := ByHue(fixtures(), false, "", nil)
	if !slices.Equal(names(colours), hueColourOrder) {
		t.Errorf("ByHue() colours = %v, want %v", names(colours), hueColourOrder)
	}
	if !slices.Equal(names(bw), hueBWOrder) {
		t.Errorf("ByHue() bw = %v, want %v", names(bw), hueBWOrder)
	}
}

func TestHueWithAnchor(t *testing.T) {
	tests := []struct {
		anchor string
		want   []string
	}{
		{anchor: "0-50-100.jpg", want: hueColourOrder},
		{anchor: "fake.jpg", want: hueColourOrder},
		{anchor: "0-0-50.jpg", want: hueColourOrder},
		{anchor: "0-100-100.jpg", want: rotate(hueColourOrder, 2)},
		{anchor: "120-50-100.jpg", want: rotate(hueColourOrder, 4)},
		{anchor: "240-100-100.jpg", want: rotate(hueColourOrder, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			want := append(slices.Clone(tt.want), hueBWOrder...)
			got := names(Hue(fixtures(), false, tt.anchor, nil))
			if !slices.Equal(got, want) {
				t.Errorf("Hue() = %v, want %v", got, want)
			}
		})
	}
}

func TestBySaturation(t *testing.T) {
	for _, reverse := range []bool{false, true} {
		want := saturationOrder
		if reverse {
			want = reversed(saturationOrder)
		}
		got := names(BySaturation(fixtures(), reverse, "", nil))
		if !slices.Equal(got, want) {
			t.Errorf("BySaturation(reverse=%v) = %v, want %v", reverse, got, want)
		}
	}
}

func TestBySaturationWithAnchor(t *testing.T) {
	tests := []struct {
		anchor string
		shift  int
	}{
		{anchor: "0-0-0.jpg", shift: 0},
		{anchor: "fake.jpg", shift: 0},
		{anchor: "0-50-100.jpg", shift: 3},
		{anchor: "120-100-50.jpg", shift: 7},
		{anchor: "240-100-100.jpg", shift: 11},
	}

	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			want := rotate(saturationOrder, tt.shift)
			got := names(BySaturation(fixtures(), false, tt.anchor, nil))
			if !slices.Equal(got, want) {
				t.Errorf("BySaturation() = %v, want %v", got, want)
			}
		})
	}
}

func TestByValue(t *testing.T) {
	for _, reverse := range []bool{false, true} {
		want := valueOrder
		if reverse {
			want = reversed(valueOrder)
		}
		got := names(ByValue(fixtures(), reverse, "", nil))
		if !slices.Equal(got, want) {
			t.Errorf("ByValue(reverse=%v) = %v, want %v", reverse, got, want)
		}
	}
}

func TestByValueWithAnchor(t *testing.T) {
	tests := []struct {
		anchor string
		shift  int
	}{
		{anchor: "0-0-0.jpg", shift: 0},
		{anchor: "fake.jpg", shift: 0},
		{anchor: "0-100-50.jpg", shift: 2},
		{anchor: "120-50-100.jpg", shift: 8},
		{anchor: "240-100-100.jpg", shift: 11},
	}

	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			want := rotate(valueOrder, tt.shift)
			got := names(ByValue(fixtures(), false, tt.anchor, nil))
			if !slices.Equal(got, want) {
				t.Errorf("ByValue() = %v, want %v", got, want)
			}
		})
	}
}

func rotate(s []string, n int) []string {
	return append(slices.Clone(s[n:]), s[:n]...)
}

func TestSortDoesNotModifyInput(t *testing.T) {
	in := fixtures()
	before := names(in)

	for _, m := range ValidMethods() {
		if _, err := Sort(in, m, true, "120-100-100.jpg", nil); err != nil {
			t.Fatalf("Sort(%s) error = %v", m, err)
		}
		if got := names(in); !slices.Equal(got, before) {
			t.Fatalf("Sort(%s) modified its input: %v", m, got)
		}
	}
}

func TestSortDispatch(t *testing.T) {
	tests := []struct {
		method Method
		want   []string
	}{
		{method: MethodHue, want: append(slices.Clone(hueColourOrder), hueBWOrder...)},
		{method: MethodSaturation, want: saturationOrder},
		{method: MethodValue, want: valueOrder},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := Sort(fixtures(), tt.method, false, "", nil)
			if err != nil {
				t.Fatalf("Sort() error = %v", err)
			}
			if !slices.Equal(names(got), tt.want) {
				t.Errorf("Sort() = %v, want %v", names(got), tt.want)
			}
		})
	}

	if _, err := Sort(fixtures(), Method("fake"), false, "", nil); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Sort(fake) error = %v, want ErrUnknownMethod", err)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{in: "hue", want: MethodHue},
		{in: "Saturation", want: MethodSaturation},
		{in: "value", want: MethodValue},
		{in: "color", wantErr: true},
		{in: "fake", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownMethod) {
				t.Errorf("ParseMethod() error = %v, want ErrUnknownMethod", err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPartitionIsStable(t *testing.T) {
	colours, bw := Partition(fixtures())
	if len(colours) != 9 || len(bw) != 3 {
		t.Fatalf("Partition() sizes = %d, %d, want 9, 3", len(colours), len(bw))
	}
	want := []string{"0-0-100.jpg", "0-0-0.jpg", "0-0-50.jpg"}
	if !slices.Equal(names(bw), want) {
		t.Errorf("Partition() bw = %v, want %v", names(bw), want)
	}
}

func TestRotateToAnchorFirstMatch(t *testing.T) {
	items := []fakeImage{{name: "a"}, {name: "b"}, {name: "c"}, {name: "b"}}
	got := names(RotateToAnchor(items, "b", nil))
	want := []string{"b", "c", "b", "a"}
	if !slices.Equal(got, want) {
		t.Errorf("RotateToAnchor() = %v, want %v", got, want)
	}
}
