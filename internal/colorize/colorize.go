// Package colorize assigns hex colors to record values: continuous gradient
// interpolation with a sign-aware pivot for numeric data, and hue-spaced
// categorical palettes ordered by a spatial traversal heuristic for
// everything else.
package colorize

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrMissingAnchors reports a gradient request without both anchor colors.
	ErrMissingAnchors = errors.New("gradient requires start and end anchor colors")
	// ErrEmptyPalette reports a categorical assignment with no palette entries.
	ErrEmptyPalette = errors.New("categorical palette is empty")
)

// Transform optionally reshapes rescaled values before gradient
// interpolation (log, sqrt, and so on).
type Transform func(float64) float64

// IsNumeric reports whether every element is an int or float and, when it
// is, returns the values as float64.
func IsNumeric(values []any) ([]float64, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]float64, len(values))
	for i, v := range values {
		switch n := v.(type) {
		case int:
			out[i] = float64(n)
		case int32:
			out[i] = float64(n)
		case int64:
			out[i] = float64(n)
		case float32:
			out[i] = float64(n)
		case float64:
			out[i] = n
		default:
			return nil, false
		}
	}
	return out, true
}

// Gradient interpolates a color per value between startHex and endHex.
// When values span both signs the gradient pivots at zero: negatives run
// startHex to midHex, positives midHex to endHex, each subset rescaled
// independently, and zero itself maps to midHex. midHex defaults to white.
func Gradient(values []float64, startHex, endHex, midHex string, trans Transform) ([]string, error) {
	if startHex == "" || endHex == "" {
		return nil, ErrMissingAnchors
	}
	if midHex == "" {
		midHex = "#ffffff"
	}
	start, err := ParseColor(startHex)
	if err != nil {
		return nil, err
	}
	end, err := ParseColor(endHex)
	if err != nil {
		return nil, err
	}
	mid, err := ParseColor(midHex)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []string{}, nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]string, len(values))
	if !(lo < 0 && hi > 0) {
		for i, t := range rescale(values, trans) {
			out[i] = start.BlendRgb(end, t).Hex()
		}
		return out, nil
	}

	// Zero belongs to both subsets so each side's rescale sees it as an
	// endpoint, keeping the pivot continuous.
	var neg, pos []float64
	for _, v := range values {
		if v <= 0 {
			neg = append(neg, v)
		}
		if v >= 0 {
			pos = append(pos, v)
		}
	}
	tneg := rescale(neg, trans)
	tpos := rescale(pos, trans)

	ni, pi := 0, 0
	for i, v := range values {
		switch {
		case v < 0:
			out[i] = start.BlendRgb(mid, tneg[ni]).Hex()
			ni++
		case v > 0:
			out[i] = mid.BlendRgb(end, tpos[pi]).Hex()
			pi++
		default:
			out[i] = mid.Hex()
			ni++
			pi++
		}
	}
	return out, nil
}

// Stop is one value/color breakpoint of a colorbar legend.
type Stop struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

// ColorbarLegend derives the sorted distinct value/color stops bounding a
// gradient: deduplicated by first occurrence of each color, sorted by
// value, with only the extreme min and max labeled.
func ColorbarLegend(values []float64, colors []string) []Stop {
	seen := make(map[string]bool, len(colors))
	var stops []Stop
	for i, c := range colors {
		if i >= len(values) || seen[c] {
			continue
		}
		seen[c] = true
		stops = append(stops, Stop{Value: values[i], Color: c})
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].Value < stops[j].Value })
	if len(stops) > 0 {
		stops[0].Label = strconv.FormatFloat(stops[0].Value, 'g', -1, 64)
		stops[len(stops)-1].Label = strconv.FormatFloat(stops[len(stops)-1].Value, 'g', -1, 64)
	}
	return stops
}

// Categorical maps each distinct value to a palette color.
//
// When the distinct count fits the palette, hues are assigned in an order
// that keeps spatially adjacent records visually distinct: records are
// scored by a greedy farthest-point traversal over their representative
// points (px, py), each value takes the mean score of its records, and
// values are colored in decreasing score order. px and py may be nil, in
// which case natural value order is used.
//
// When distinct values outnumber the palette, the most frequent
// len(palette)-1 values get their own colors (frequency ties broken by
// ascending value order) and the long tail shares the palette's last color.
func Categorical(values []string, palette []string, px, py []float64) (map[string]string, error) {
	distinct := distinctValues(values)
	if len(distinct) == 0 {
		return map[string]string{}, nil
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}

	out := make(map[string]string, len(distinct))
	if len(distinct) <= len(palette) {
		scores := make(map[string]float64, len(distinct))
		if len(px) == len(values) && len(py) == len(values) && len(px) > 0 {
			order := OrderRecords(px, py)
			sum := make(map[string]float64)
			cnt := make(map[string]int)
			for i, v := range values {
				sum[v] += float64(order[i])
				cnt[v]++
			}
			for v := range sum {
				scores[v] = sum[v] / float64(cnt[v])
			}
		}
		sort.SliceStable(distinct, func(i, j int) bool {
			si, sj := scores[distinct[i]], scores[distinct[j]]
			if si != sj {
				return si > sj
			}
			return distinct[i] < distinct[j]
		})
		for i, v := range distinct {
			out[v] = palette[i]
		}
		return out, nil
	}

	counts := make(map[string]int, len(distinct))
	for _, v := range values {
		counts[v]++
	}
	sort.Slice(distinct, func(i, j int) bool {
		ci, cj := counts[distinct[i]], counts[distinct[j]]
		if ci != cj {
			return ci > cj
		}
		return distinct[i] < distinct[j]
	})
	for i, v := range distinct {
		slot := i
		if slot > len(palette)-1 {
			slot = len(palette) - 1
		}
		out[v] = palette[slot]
	}
	return out, nil
}

// Apply resolves a per-record color slice from a categorical mapping.
func Apply(values []string, mapping map[string]string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = mapping[v]
	}
	return out
}

// OrderRecords scores records by a greedy farthest-point traversal: start
// at record 0 and repeatedly jump to the unvisited record with maximum
// Euclidean distance from the current one. The returned score is each
// record's position in that traversal.
func OrderRecords(x, y []float64) []int {
	n := len(x)
	score := make([]int, n)
	if n == 0 {
		return score
	}
	visited := make([]bool, n)
	cur := 0
	for step := 0; step < n; step++ {
		visited[cur] = true
		score[cur] = step
		next, best := -1, -1.0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if d := math.Hypot(x[cur]-x[j], y[cur]-y[j]); d > best {
				best, next = d, j
			}
		}
		if next < 0 {
			break
		}
		cur = next
	}
	return score
}

// ParseColor resolves a named CSS color or hex string to a color value.
func ParseColor(s string) (colorful.Color, error) {
	if hex, ok := NamedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// CheckColor reports whether s can be used directly as a color: a named
// CSS color or a parseable hex string.
func CheckColor(s string) bool {
	if _, ok := NamedColors[s]; ok {
		return true
	}
	_, err := colorful.Hex(s)
	return err == nil
}

// rescale maps values to [0, 1] by min-max scaling, optionally applying
// trans to a copy rescaled to (epsilon, 10) first.
func rescale(values []float64, trans Transform) []float64 {
	x := append([]float64(nil), values...)
	if trans != nil {
		x = minmaxScale(x, 1e-10, 10)
		for i := range x {
			x[i] = trans(x[i])
		}
	}
	return minmaxScale(x, 0, 1)
}

// minmaxScale linearly rescales x to [lo, hi]. A degenerate domain (all
// values equal) maps everything to the interval midpoint.
func minmaxScale(x []float64, lo, hi float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	dmin, dmax := x[0], x[0]
	for _, v := range x {
		dmin = math.Min(dmin, v)
		dmax = math.Max(dmax, v)
	}
	if dmax == dmin {
		for i := range out {
			out[i] = (hi + lo) / 2
		}
		return out
	}
	for i, v := range x {
		y := (v - (dmax+dmin)/2) / (dmax - dmin)
		out[i] = y*(hi-lo) + (hi+lo)/2
	}
	return out
}

func distinctValues(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
