package colorize

import (
	"errors"
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func colorDist(a, b string) float64 {
	ca, _ := colorful.Hex(a)
	cb, _ := colorful.Hex(b)
	return ca.DistanceRgb(cb)
}

func TestIsNumeric(t *testing.T) {
	if _, ok := IsNumeric([]any{1, 2.5, int64(3)}); !ok {
		t.Error("mixed int/float should be numeric")
	}
	if _, ok := IsNumeric([]any{1, "two"}); ok {
		t.Error("strings should not be numeric")
	}
	if _, ok := IsNumeric(nil); ok {
		t.Error("empty input should not be numeric")
	}
}

func TestGradientSignPivot(t *testing.T) {
	colors, err := Gradient([]float64{-5, 0, 5}, "#ff0000", "#0000ff", "#ffffff", nil)
	if err != nil {
		t.Fatal(err)
	}
	if colors[1] != "#ffffff" {
		t.Errorf("zero maps to %q, want mid #ffffff", colors[1])
	}
	if colors[0] != "#ff0000" {
		t.Errorf("minimum maps to %q, want start #ff0000", colors[0])
	}
	if colors[2] != "#0000ff" {
		t.Errorf("maximum maps to %q, want end #0000ff", colors[2])
	}
	if colorDist(colors[0], "#ff0000") >= colorDist(colors[0], colors[2]) {
		t.Error("negative endpoint not closer to start than to the positive endpoint")
	}
}

func TestGradientSameSignMonotonic(t *testing.T) {
	colors, err := Gradient([]float64{0, 5, 10}, "#000000", "#ffffff", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if colors[0] != "#000000" || colors[2] != "#ffffff" {
		t.Fatalf("endpoints=%v, want black and white", colors)
	}
	mid, _ := colorful.Hex(colors[1])
	if math.Abs(mid.R-0.5) > 0.01 || math.Abs(mid.G-0.5) > 0.01 || math.Abs(mid.B-0.5) > 0.01 {
		t.Errorf("midpoint=%q, want mid gray", colors[1])
	}
}

func TestGradientTransform(t *testing.T) {
	// The transform is applied to an (epsilon, 10) rescaled copy, then the
	// result is rescaled to [0, 1]; endpoints stay pinned either way.
	colors, err := Gradient([]float64{1, 10, 100}, "#000000", "#ffffff", "", math.Log10)
	if err != nil {
		t.Fatal(err)
	}
	if colors[0] != "#000000" || colors[2] != "#ffffff" {
		t.Fatalf("endpoints=%v, want black and white", colors)
	}
}

func TestGradientMissingAnchors(t *testing.T) {
	if _, err := Gradient([]float64{1, 2}, "", "#0000ff", "", nil); !errors.Is(err, ErrMissingAnchors) {
		t.Errorf("err=%v, want ErrMissingAnchors", err)
	}
	if _, err := Gradient([]float64{1, 2}, "#ff0000", "", "", nil); !errors.Is(err, ErrMissingAnchors) {
		t.Errorf("err=%v, want ErrMissingAnchors", err)
	}
}

func TestGradientNamedAnchors(t *testing.T) {
	colors, err := Gradient([]float64{0, 1}, "black", "white", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if colors[0] != "#000000" || colors[1] != "#ffffff" {
		t.Errorf("named anchors resolved to %v", colors)
	}
}

func TestGradientDegenerate(t *testing.T) {
	colors, err := Gradient([]float64{3, 3, 3}, "#000000", "#ffffff", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range colors {
		if c != colors[0] {
			t.Fatalf("equal values produced unequal colors: %v", colors)
		}
	}
}

func TestColorbarLegend(t *testing.T) {
	stops := ColorbarLegend([]float64{3, 1, 2, 1}, []string{"#cc0000", "#000000", "#660000", "#000000"})
	if len(stops) != 3 {
		t.Fatalf("stops=%d, want 3 (duplicate color deduplicated)", len(stops))
	}
	for i := 1; i < len(stops); i++ {
		if stops[i-1].Value > stops[i].Value {
			t.Fatalf("stops not sorted by value: %+v", stops)
		}
	}
	if stops[0].Label == "" || stops[len(stops)-1].Label == "" {
		t.Error("extreme stops must be labeled")
	}
	if stops[1].Label != "" {
		t.Error("interior stops must not be labeled")
	}
}

func TestCategoricalBijection(t *testing.T) {
	palette := []string{"#111111", "#222222", "#333333"}
	mapping, err := Categorical([]string{"a", "b", "c", "a"}, palette, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(mapping) != 3 {
		t.Fatalf("mapping size=%d, want 3", len(mapping))
	}
	used := map[string]bool{}
	for _, c := range mapping {
		if used[c] {
			t.Fatalf("palette color %q assigned twice", c)
		}
		used[c] = true
	}
}

func TestCategoricalSpatialOrdering(t *testing.T) {
	// Records of "b" sit at the far end of the traversal from record 0, so
	// "b" accumulates a higher mean traversal score and takes the first hue.
	values := []string{"a", "a", "b", "b"}
	px := []float64{0, 1, 10, 11}
	py := []float64{0, 0, 0, 0}
	mapping, err := Categorical(values, []string{"#111111", "#222222"}, px, py)
	if err != nil {
		t.Fatal(err)
	}
	if mapping["b"] != "#111111" || mapping["a"] != "#222222" {
		t.Errorf("mapping=%v, want b first", mapping)
	}
}

func TestCategoricalLongTail(t *testing.T) {
	values := []string{"a", "a", "a", "b", "b", "c", "d"}
	palette := []string{"#111111", "#222222"}
	mapping, err := Categorical(values, palette, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if mapping["a"] != "#111111" {
		t.Errorf("most frequent value got %q, want first palette color", mapping["a"])
	}
	for _, v := range []string{"b", "c", "d"} {
		if mapping[v] != "#222222" {
			t.Errorf("tail value %q got %q, want shared last color", v, mapping[v])
		}
	}
}

func TestCategoricalEmptyPalette(t *testing.T) {
	if _, err := Categorical([]string{"a"}, nil, nil, nil); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("err=%v, want ErrEmptyPalette", err)
	}
	// No distinct values means nothing to color and no palette needed.
	if m, err := Categorical(nil, nil, nil, nil); err != nil || len(m) != 0 {
		t.Errorf("empty input: mapping=%v err=%v", m, err)
	}
}

func TestOrderRecords(t *testing.T) {
	score := OrderRecords([]float64{0, 1, 10}, []float64{0, 0, 0})
	want := []int{0, 2, 1}
	for i := range want {
		if score[i] != want[i] {
			t.Fatalf("score=%v, want %v", score, want)
		}
	}
}

func TestHLSPalette(t *testing.T) {
	palette := DefaultPalette(6)
	if len(palette) != 6 {
		t.Fatalf("palette size=%d, want 6", len(palette))
	}
	seen := map[string]bool{}
	for _, c := range palette {
		if !CheckColor(c) {
			t.Errorf("palette entry %q is not a valid color", c)
		}
		if seen[c] {
			t.Errorf("palette entry %q repeated", c)
		}
		seen[c] = true
	}
}

func TestCheckColor(t *testing.T) {
	for _, ok := range []string{"#ff0000", "tomato", "rebeccapurple"} {
		if !CheckColor(ok) {
			t.Errorf("CheckColor(%q)=false, want true", ok)
		}
	}
	for _, bad := range []string{"", "notacolor", "#zzz"} {
		if CheckColor(bad) {
			t.Errorf("CheckColor(%q)=true, want false", bad)
		}
	}
}

func TestMinmaxScaleDegenerate(t *testing.T) {
	out := minmaxScale([]float64{7, 7}, 0, 1)
	if out[0] != 0.5 || out[1] != 0.5 {
		t.Errorf("degenerate domain scaled to %v, want midpoints", out)
	}
}
