package flatten

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const margin = 1e-6

func TestFlattenPoint(t *testing.T) {
	parts := Flatten(orb.Point{-78.75, 35.74}, margin, 6)
	if len(parts) != 1 {
		t.Fatalf("parts=%d, want 1", len(parts))
	}
	part := parts[0]
	if len(part.Exterior) < 4 {
		t.Fatalf("exterior has %d coordinate pairs, want >= 4", len(part.Exterior))
	}
	if len(part.Holes) != 0 {
		t.Fatalf("holes=%d, want 0", len(part.Holes))
	}
	if part.Exterior[0] != part.Exterior[len(part.Exterior)-1] {
		t.Error("exterior ring not closed")
	}
}

func TestFlattenPolygonWithHole(t *testing.T) {
	poly := orb.Polygon{
		{{0, 0}, {0, 4}, {4, 4}, {4, 0}, {0, 0}},
		{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}},
	}
	parts := Flatten(poly, margin, 6)
	if len(parts) != 1 {
		t.Fatalf("parts=%d, want 1", len(parts))
	}
	if len(parts[0].Holes) != 1 {
		t.Fatalf("holes=%d, want 1", len(parts[0].Holes))
	}
	if len(parts[0].Exterior) != 5 || len(parts[0].Holes[0]) != 5 {
		t.Errorf("ring lengths=(%d, %d), want (5, 5)", len(parts[0].Exterior), len(parts[0].Holes[0]))
	}
}

func TestFlattenMultiPolygonOrder(t *testing.T) {
	mp := orb.MultiPolygon{
		{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}},
		{{{10, 10}, {10, 11}, {11, 11}, {11, 10}, {10, 10}}},
	}
	parts := Flatten(mp, margin, 6)
	if len(parts) != 2 {
		t.Fatalf("parts=%d, want 2", len(parts))
	}
	if parts[0].Exterior[0][0] != 0 || parts[1].Exterior[0][0] != 10 {
		t.Error("parts not in input order")
	}
}

func TestFlattenLineString(t *testing.T) {
	ls := orb.LineString{{0, 0}, {1, 0}, {2, 1}}
	parts := Flatten(ls, 0.01, 6)
	if len(parts) != 1 {
		t.Fatalf("parts=%d, want 1", len(parts))
	}
	ext := parts[0].Exterior
	if len(ext) != 2*len(ls)+1 {
		t.Fatalf("ribbon has %d points, want %d", len(ext), 2*len(ls)+1)
	}
	if ext[0] != ext[len(ext)-1] {
		t.Error("ribbon ring not closed")
	}
}

func TestFlattenLineStringAnyOrientation(t *testing.T) {
	// The ribbon must keep its width for every line direction; a vertical
	// line in particular must not collapse to a collinear ring.
	cases := map[string]orb.LineString{
		"vertical":   {{0, 0}, {0, 5}},
		"horizontal": {{0, 0}, {5, 0}},
		"diagonal":   {{0, 0}, {3, 4}},
		"bent":       {{0, 0}, {0, 2}, {2, 2}},
	}
	for name, ls := range cases {
		parts := Flatten(ls, 0.01, 6)
		ring := orb.Ring(parts[0].Exterior)
		area := math.Abs(planar.Area(ring))
		if area == 0 {
			t.Fatalf("%s: ribbon has zero area: %v", name, ring)
		}
		// Two margin offsets across, roughly the line's length along.
		want := 2 * 0.01 * lineLength(ls)
		if area < want*0.5 || area > want*1.5 {
			t.Errorf("%s: area=%v, want about %v", name, area, want)
		}
	}
}

func TestFlattenDegenerateRing(t *testing.T) {
	// A two-point "ring" must be buffered to a minimal polygon.
	parts := Flatten(orb.Polygon{{{1, 1}, {1, 1}}}, 0.001, 6)
	if len(parts) != 1 || len(parts[0].Exterior) < 4 {
		t.Fatalf("degenerate ring not buffered: %+v", parts)
	}
}

func TestFlattenRounding(t *testing.T) {
	parts := Flatten(orb.Point{1.23456789, 2.3456789}, 0.001, 3)
	for _, p := range parts[0].Exterior {
		for _, v := range p {
			if math.Round(v*1000)/1000 != v {
				t.Errorf("coordinate %v not rounded to 3 decimals", v)
			}
		}
	}
}

func TestRings(t *testing.T) {
	poly := orb.Polygon{
		{{0, 0}, {0, 4}, {4, 4}, {4, 0}, {0, 0}},
		{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}},
	}
	rings := Rings(Flatten(poly, margin, 6))
	if len(rings) != 1 {
		t.Fatalf("parts=%d, want 1", len(rings))
	}
	if len(rings[0]) != 2 {
		t.Fatalf("rings=%d, want 2 (exterior plus hole)", len(rings[0]))
	}
}

func TestRepresentativePointInside(t *testing.T) {
	cases := map[string]orb.Polygon{
		"square": {{{0, 0}, {0, 4}, {4, 4}, {4, 0}, {0, 0}}},
		// Concave "U" whose centroid falls outside the polygon interior.
		"u-shape": {{{0, 0}, {0, 3}, {1, 3}, {1, 1}, {3, 1}, {3, 3}, {4, 3}, {4, 0}, {0, 0}}},
		"with-hole": {
			{{0, 0}, {0, 4}, {4, 4}, {4, 0}, {0, 0}},
			{{1, 1}, {1, 3}, {3, 3}, {3, 1}, {1, 1}},
		},
	}
	for name, poly := range cases {
		p := RepresentativePoint(poly)
		if !planar.PolygonContains(poly, p) {
			t.Errorf("%s: representative point %v not inside polygon", name, p)
		}
	}
}

func TestRepresentativePointSimpleShapes(t *testing.T) {
	if p := RepresentativePoint(orb.Point{3, 4}); p != (orb.Point{3, 4}) {
		t.Errorf("point: got %v", p)
	}
	ls := orb.LineString{{0, 0}, {1, 1}, {2, 2}}
	if p := RepresentativePoint(ls); p != (orb.Point{1, 1}) {
		t.Errorf("linestring: got %v, want middle vertex", p)
	}
	mp := orb.MultiPolygon{
		{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}},
		{{{10, 10}, {10, 20}, {20, 20}, {20, 10}, {10, 10}}},
	}
	p := RepresentativePoint(mp)
	if !planar.PolygonContains(mp[1], p) {
		t.Errorf("multipolygon: %v not inside the largest part", p)
	}
}
