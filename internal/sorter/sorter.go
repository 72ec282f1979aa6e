// Package sorter orders analysed images by their most dominant colour.
package sorter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colorsort/internal/colour"
)

// Item is anything that can be sorted by colour.
type Item interface {
	Name() string
	IsBW() bool
	MostDominantHSV(round bool) colour.HSV
}

// Method selects the primary sort key.
type Method string

const (
	// MethodHue sorts colour images by hue and appends black and white images by value.
	MethodHue Method = "hue"
	// MethodSaturation sorts every image by saturation, then value, then hue.
	MethodSaturation Method = "saturation"
	// MethodValue sorts every image by value, then hue, then saturation.
	MethodValue Method = "value"

	// DefaultMethod is used when none is configured.
	DefaultMethod = MethodHue
)

// ErrUnknownMethod is returned for sort method names that are not recognised.
var ErrUnknownMethod = errors.New("unknown sort method")

// ValidMethods returns every sort method.
func ValidMethods() []Method {
	return []Method{MethodHue, MethodSaturation, MethodValue}
}

// ParseMethod converts a string to a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate checks that the method is known.
func (m Method) Validate() error {
	switch m {
	case MethodHue, MethodSaturation, MethodValue:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: %v)", ErrUnknownMethod, string(m), ValidMethods())
	}
}

// String returns the method name.
func (m Method) String() string {
	return string(m)
}

// Sort orders items with the given method. The input slice is not modified.
func Sort[T Item](items []T, method Method, reverse bool, anchor string, logger hclog.Logger) ([]T, error) {
	switch method {
	case MethodHue:
		return Hue(items, reverse, anchor, logger), nil
	case MethodSaturation:
		return BySaturation(items, reverse, anchor, logger), nil
	case MethodValue:
		return ByValue(items, reverse, anchor, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, string(method))
	}
}

// Partition splits items into colour and black and white groups, keeping input order.
func Partition[T Item](items []T) (colours, bw []T) {
	for _, it := range items {
		if it.IsBW() {
			bw = append(bw, it)
		} else {
			colours = append(colours, it)
		}
	}
	return colours, bw
}

// ByHue sorts colour items by (hue metric, value, saturation) and black and
// white items by value. reverse flips each group separately. The anchor
// rotation applies to the colour group only.
func ByHue[T Item](items []T, reverse bool, anchor string, logger hclog.Logger) (colours, bw []T) {
	colours, bw = Partition(items)

	slices.SortStableFunc(colours, func(a, b T) int {
		ha, hb := a.MostDominantHSV(true), b.MostDominantHSV(true)
		return cmp.Or(
			cmp.Compare(colour.HueSortMetric(ha.H), colour.HueSortMetric(hb.H)),
			cmp.Compare(ha.V, hb.V),
			cmp.Compare(ha.S, hb.S),
		)
	})
	slices.SortStableFunc(bw, func(a, b T) int {
		return cmp.Compare(a.MostDominantHSV(true).V, b.MostDominantHSV(true).V)
	})

	if reverse {
		slices.Reverse(colours)
		slices.Reverse(bw)
	}

	return RotateToAnchor(colours, anchor, logger), bw
}

// Hue returns ByHue's colour group followed by its black and white group.
func Hue[T Item](items []T, reverse bool, anchor string, logger hclog.Logger) []T {
	colours, bw := ByHue(items, reverse, anchor, logger)
	return append(colours, bw...)
}

// BySaturation sorts all items by (saturation, value, hue metric).
func BySaturation[T Item](items []T, reverse bool, anchor string, logger hclog.Logger) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		ha, hb := a.MostDominantHSV(true), b.MostDominantHSV(true)
		return cmp.Or(
			cmp.Compare(ha.S, hb.S),
			cmp.Compare(ha.V, hb.V),
			cmp.Compare(colour.HueSortMetric(ha.H), colour.HueSortMetric(hb.H)),
		)
	})
	if reverse {
		slices.Reverse(out)
	}
	return RotateToAnchor(out, anchor, logger)
}

// ByValue sorts all items by (value, hue metric, saturation).
func ByValue[T Item](items []T, reverse bool, anchor string, logger hclog.Logger) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		ha, hb := a.MostDominantHSV(true), b.MostDominantHSV(true)
		return cmp.Or(
			cmp.Compare(ha.V, hb.V),
			cmp.Compare(colour.HueSortMetric(ha.H), colour.HueSortMetric(hb.H)),
			cmp.Compare(ha.S, hb.S),
		)
	})
	if reverse {
		slices.Reverse(out)
	}
	return RotateToAnchor(out, anchor, logger)
}

// RotateToAnchor rotates items left so the first item named anchor comes
// first. An empty anchor leaves the order alone; an anchor that is not found
// is logged and also leaves the order alone.
func RotateToAnchor[T Item](items []T, anchor string, logger hclog.Logger) []T {
	if anchor == "" {
		return items
	}

	idx := slices.IndexFunc(items, func(it T) bool { return it.Name() == anchor })
	if idx < 0 {
		if logger == nil {
			logger = hclog.NewNullLogger()
		}
		logger.Warn("anchor image not found; order is not rotated", "anchor", anchor)
		return items
	}

	return append(slices.Clone(items[idx:]), items[:idx]...)
}
