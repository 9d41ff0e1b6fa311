// Package flatten converts canonical geometries into the nested
// exterior/hole coordinate representation consumed by polygon renderers.
//
// Every output part is polygonal: points are buffered into square
// envelopes, boundary-only shapes into thin ribbon polygons, and degenerate
// rings into minimal envelope polygons. Multi-part inputs flatten to
// concatenated part lists in input order.
package flatten

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Part is one polygonal part: a closed exterior ring plus zero or more
// interior rings (holes).
type Part struct {
	Exterior []orb.Point   `json:"exterior"`
	Holes    [][]orb.Point `json:"holes"`
}

// Flatten converts g into polygonal parts with coordinates rounded to
// precision decimal digits. margin is the buffer half-width applied to
// points and boundary-only shapes.
func Flatten(g orb.Geometry, margin float64, precision int) []Part {
	switch geom := g.(type) {
	case orb.Point:
		return []Part{ringPart(envelope(geom, margin), precision)}

	case orb.MultiPoint:
		parts := make([]Part, 0, len(geom))
		for _, p := range geom {
			parts = append(parts, ringPart(envelope(p, margin), precision))
		}
		return parts

	case orb.LineString:
		return []Part{ringPart(ribbon(geom, margin), precision)}

	case orb.MultiLineString:
		parts := make([]Part, 0, len(geom))
		for _, ls := range geom {
			parts = append(parts, ringPart(ribbon(ls, margin), precision))
		}
		return parts

	case orb.Ring:
		return Flatten(orb.Polygon{geom}, margin, precision)

	case orb.Polygon:
		return []Part{polygonPart(geom, margin, precision)}

	case orb.MultiPolygon:
		parts := make([]Part, 0, len(geom))
		for _, poly := range geom {
			parts = append(parts, polygonPart(poly, margin, precision))
		}
		return parts

	case orb.Collection:
		var parts []Part
		for _, sub := range geom {
			parts = append(parts, Flatten(sub, margin, precision)...)
		}
		return parts

	case orb.Bound:
		return Flatten(geom.ToPolygon(), margin, precision)

	default:
		return nil
	}
}

// Rings returns the ring-list view of parts: for each part, the exterior
// ring followed by its holes.
func Rings(parts []Part) [][][]orb.Point {
	out := make([][][]orb.Point, len(parts))
	for i, part := range parts {
		rings := make([][]orb.Point, 0, 1+len(part.Holes))
		rings = append(rings, part.Exterior)
		rings = append(rings, part.Holes...)
		out[i] = rings
	}
	return out
}

// RepresentativePoint returns a point guaranteed to lie inside g. For
// polygons the centroid is used when it is interior; otherwise the midpoint
// of a horizontal slice through the polygon. Multi-part geometries answer
// for their largest part.
func RepresentativePoint(g orb.Geometry) orb.Point {
	switch geom := g.(type) {
	case orb.Point:
		return geom

	case orb.MultiPoint:
		if len(geom) == 0 {
			return orb.Point{}
		}
		return geom[len(geom)/2]

	case orb.LineString:
		if len(geom) == 0 {
			return orb.Point{}
		}
		return geom[len(geom)/2]

	case orb.MultiLineString:
		if len(geom) == 0 {
			return orb.Point{}
		}
		return RepresentativePoint(longestLine(geom))

	case orb.Ring:
		return RepresentativePoint(orb.Polygon{geom})

	case orb.Polygon:
		return polygonInterior(geom)

	case orb.MultiPolygon:
		if len(geom) == 0 {
			return orb.Point{}
		}
		best, bestArea := geom[0], math.Abs(planar.Area(geom[0]))
		for _, poly := range geom[1:] {
			if a := math.Abs(planar.Area(poly)); a > bestArea {
				best, bestArea = poly, a
			}
		}
		return polygonInterior(best)

	case orb.Collection:
		if len(geom) == 0 {
			return orb.Point{}
		}
		best, bestArea := geom[0], math.Abs(planar.Area(geom[0]))
		for _, sub := range geom[1:] {
			if a := math.Abs(planar.Area(sub)); a > bestArea {
				best, bestArea = sub, a
			}
		}
		return RepresentativePoint(best)

	case orb.Bound:
		return geom.Center()

	default:
		return orb.Point{}
	}
}

func polygonPart(poly orb.Polygon, margin float64, precision int) Part {
	if len(poly) == 0 {
		return Part{Exterior: nil, Holes: [][]orb.Point{}}
	}
	part := Part{
		Exterior: roundRing(closedRing(poly[0], margin), precision),
		Holes:    make([][]orb.Point, 0, len(poly)-1),
	}
	for _, hole := range poly[1:] {
		part.Holes = append(part.Holes, roundRing(closedRing(hole, margin), precision))
	}
	return part
}

func ringPart(ring orb.Ring, precision int) Part {
	return Part{Exterior: roundRing(ring, precision), Holes: [][]orb.Point{}}
}

// closedRing closes r and buffers degenerate rings (fewer than four
// coordinate pairs) into a minimal envelope polygon.
func closedRing(r orb.Ring, margin float64) orb.Ring {
	if len(r) == 0 {
		return r
	}
	ring := make(orb.Ring, len(r))
	copy(ring, r)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	if len(ring) < 4 {
		return envelope(ring.Bound().Center(), margin)
	}
	return ring
}

// envelope buffers p into a closed square ring of half-width margin.
func envelope(p orb.Point, margin float64) orb.Ring {
	x, y := p[0], p[1]
	return orb.Ring{
		{x - margin, y + margin},
		{x - margin, y - margin},
		{x + margin, y - margin},
		{x + margin, y + margin},
		{x - margin, y + margin},
	}
}

// ribbon buffers a line into a thin closed polygon of width 2*margin by
// offsetting each vertex perpendicular to the local line direction, so the
// ribbon keeps its width in every orientation.
func ribbon(ls orb.LineString, margin float64) orb.Ring {
	if len(ls) == 0 {
		return nil
	}
	if len(ls) == 1 {
		return envelope(ls[0], margin)
	}
	normals := make([]orb.Point, len(ls))
	for i := range ls {
		prev, next := i-1, i+1
		if prev < 0 {
			prev = 0
		}
		if next > len(ls)-1 {
			next = len(ls) - 1
		}
		dx, dy := ls[next][0]-ls[prev][0], ls[next][1]-ls[prev][1]
		n := math.Hypot(dx, dy)
		if n == 0 {
			normals[i] = orb.Point{0, margin}
			continue
		}
		normals[i] = orb.Point{-dy / n * margin, dx / n * margin}
	}
	ring := make(orb.Ring, 0, 2*len(ls)+1)
	for i, p := range ls {
		ring = append(ring, orb.Point{p[0] + normals[i][0], p[1] + normals[i][1]})
	}
	for i := len(ls) - 1; i >= 0; i-- {
		ring = append(ring, orb.Point{ls[i][0] - normals[i][0], ls[i][1] - normals[i][1]})
	}
	ring = append(ring, ring[0])
	return ring
}

func polygonInterior(poly orb.Polygon) orb.Point {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return orb.Point{}
	}
	centroid, _ := planar.CentroidArea(poly)
	if planar.PolygonContains(poly, centroid) {
		return centroid
	}

	// Scanline fallback: slice the polygon horizontally at the centroid's
	// latitude and take the midpoint of a span that is actually interior.
	y := centroid[1]
	var xs []float64
	for _, ring := range poly {
		for i := 0; i+1 < len(ring); i++ {
			a, b := ring[i], ring[i+1]
			if (a[1] <= y && b[1] > y) || (b[1] <= y && a[1] > y) {
				t := (y - a[1]) / (b[1] - a[1])
				xs = append(xs, a[0]+t*(b[0]-a[0]))
			}
		}
	}
	sort.Float64s(xs)
	for i := 0; i+1 < len(xs); i++ {
		mid := orb.Point{(xs[i] + xs[i+1]) / 2, y}
		if planar.PolygonContains(poly, mid) {
			return mid
		}
	}
	return poly[0].Bound().Center()
}

func longestLine(mls orb.MultiLineString) orb.LineString {
	best, bestLen := mls[0], lineLength(mls[0])
	for _, ls := range mls[1:] {
		if l := lineLength(ls); l > bestLen {
			best, bestLen = ls, l
		}
	}
	return best
}

func lineLength(ls orb.LineString) float64 {
	var total float64
	for i := 0; i+1 < len(ls); i++ {
		total += math.Hypot(ls[i+1][0]-ls[i][0], ls[i+1][1]-ls[i][1])
	}
	return total
}

func roundRing(r orb.Ring, precision int) []orb.Point {
	out := make([]orb.Point, len(r))
	p := math.Pow(10, float64(precision))
	for i, pt := range r {
		out[i] = orb.Point{math.Round(pt[0]*p) / p, math.Round(pt[1]*p) / p}
	}
	return out
}
