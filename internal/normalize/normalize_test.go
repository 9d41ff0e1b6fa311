package normalize

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestValueGeohash(t *testing.T) {
	g, err := Value("dnrgrfm", 6)
	if err != nil {
		t.Fatalf("Value(geohash) error: %v", err)
	}
	poly, ok := g.(orb.Polygon)
	if !ok {
		t.Fatalf("got %T, want orb.Polygon", g)
	}
	if len(poly[0]) != 5 {
		t.Errorf("ring has %d points, want 5 (closed box)", len(poly[0]))
	}
}

func TestValueWKT(t *testing.T) {
	g, err := Value("POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0))", 6)
	if err != nil {
		t.Fatalf("Value(wkt) error: %v", err)
	}
	if _, ok := g.(orb.Polygon); !ok {
		t.Fatalf("got %T, want orb.Polygon", g)
	}

	// Keyword match is case-insensitive.
	if _, err := Value("point (1 2)", 6); err != nil {
		t.Errorf("lowercase wkt rejected: %v", err)
	}
}

func TestValueCoordinatePair(t *testing.T) {
	g, err := Value([2]float64{-78.75, 35.74}, 6)
	if err != nil {
		t.Fatalf("Value(pair) error: %v", err)
	}
	p, ok := g.(orb.Point)
	if !ok {
		t.Fatalf("got %T, want orb.Point", g)
	}
	if p[0] != -78.75 || p[1] != 35.74 {
		t.Errorf("point=%v", p)
	}

	if _, err := Value([]float64{10.4, 57.6}, 6); err != nil {
		t.Errorf("slice pair rejected: %v", err)
	}
}

func TestValueOutOfRange(t *testing.T) {
	cases := [][2]float64{
		{-200, 35},
		{181, 0},
		{0, 91},
		{0, -90.5},
	}
	for _, c := range cases {
		if _, err := Value(c, 6); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Value(%v) err=%v, want ErrOutOfRange", c, err)
		}
	}
}

func TestValueGeometryPassthrough(t *testing.T) {
	in := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	g, err := Value(in, 6)
	if err != nil {
		t.Fatalf("Value(geometry) error: %v", err)
	}
	if !orb.Equal(g, in) {
		t.Errorf("geometry mutated by passthrough")
	}

	// Points are canonical geometry too: no coordinate range check, so an
	// already-planar point passes through untouched.
	planar := orb.Point{-9659192.22, 4324038.39}
	g, err = Value(planar, 6)
	if err != nil {
		t.Fatalf("Value(planar point) error: %v", err)
	}
	if g != planar {
		t.Errorf("point=%v, want %v", g, planar)
	}
}

func TestValueUnrecognized(t *testing.T) {
	for _, v := range []any{"not anything spatial", 42, struct{}{}, []float64{1, 2, 3}} {
		if _, err := Value(v, 6); !errors.Is(err, ErrUnrecognizedInput) {
			t.Errorf("Value(%v) err=%v, want ErrUnrecognizedInput", v, err)
		}
	}
}

func TestIsFeatureData(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[-78.75,35.74]},"properties":{}}]}`
	if !IsFeatureData(fc) {
		t.Errorf("feature collection not recognized")
	}
	if IsFeatureData(`{"type":"FeatureCollection"}`) {
		t.Errorf("collection without features recognized")
	}
	if IsFeatureData("dnrgrfm") {
		t.Errorf("geohash recognized as feature data")
	}
	if IsFeatureData(42) {
		t.Errorf("non-string recognized as feature data")
	}
}

func TestFeatureCollectionBuffersPoints(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[-78.75,35.74]},"properties":{}},
		{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]},"properties":{}}
	]}`
	g, err := Value(fc, 3)
	if err != nil {
		t.Fatalf("Value(feature data) error: %v", err)
	}
	coll, ok := g.(orb.Collection)
	if !ok {
		t.Fatalf("got %T, want orb.Collection", g)
	}
	if len(coll) != 2 {
		t.Fatalf("collection has %d geometries, want 2", len(coll))
	}
	poly, ok := coll[0].(orb.Polygon)
	if !ok {
		t.Fatalf("point feature is %T, want buffered orb.Polygon", coll[0])
	}
	b := poly.Bound()
	if got := b.Max[0] - b.Min[0]; math.Abs(got-0.002) > 1e-9 {
		t.Errorf("envelope width=%v, want 0.002 at precision 3", got)
	}
}

func TestBatchAllOrNothing(t *testing.T) {
	_, err := Batch([]any{"dnrgrfm", "garbage!!", "POINT (1 2)"}, 6)
	if !errors.Is(err, ErrUnrecognizedInput) {
		t.Fatalf("err=%v, want ErrUnrecognizedInput", err)
	}

	geoms, err := Batch([]any{"dnrgrfm", "POINT (1 2)", [2]float64{0, 0}}, 6)
	if err != nil {
		t.Fatalf("Batch error: %v", err)
	}
	if len(geoms) != 3 {
		t.Errorf("got %d geometries, want 3", len(geoms))
	}
}

func TestBatchRejectsMixedFeatureData(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[]}`
	if _, err := Batch([]any{fc, "dnrgrfm"}, 6); !errors.Is(err, ErrUnrecognizedInput) {
		t.Errorf("mixed batch err=%v, want ErrUnrecognizedInput", err)
	}
}

func TestBatchEmpty(t *testing.T) {
	if _, err := Batch(nil, 6); err == nil {
		t.Errorf("empty batch accepted")
	}
}
