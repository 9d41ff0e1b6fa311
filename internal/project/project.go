// Package project converts geographic-degree coordinates to planar
// web-Mercator units (EPSG:4326 to EPSG:3857), tracking decimal precision
// across the transform so rounding granularity stays visually equivalent in
// both coordinate spaces.
package project

import (
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Geometry returns g transformed to web Mercator, preserving ring and hole
// structure and ordering. The input is cloned first: orb projections mutate
// coordinates in place.
func Geometry(g orb.Geometry) orb.Geometry {
	return project.Geometry(Clone(g), project.WGS84.ToMercator)
}

// Point transforms a single point to web Mercator.
func Point(p orb.Point) orb.Point {
	return project.WGS84.ToMercator(p)
}

// Unproject applies the inverse Mercator transform. The pipeline itself
// never needs it; round-trip tests do.
func Unproject(g orb.Geometry) orb.Geometry {
	return project.Geometry(Clone(g), project.Mercator.ToWGS84)
}

var derivedPrecision sync.Map // base precision -> destination precision

// DerivePrecision computes the destination-space decimal precision
// equivalent to a one-unit change at basePrecision decimal digits in
// degrees: project 10^-basePrecision, take round(log10), negate. The result
// is memoized per base precision.
func DerivePrecision(basePrecision int) int {
	if v, ok := derivedPrecision.Load(basePrecision); ok {
		return v.(int)
	}
	unit := math.Pow(0.1, float64(basePrecision))
	p := project.WGS84.ToMercator(orb.Point{unit, 0})
	derived := -int(math.Round(math.Log10(round(p[0], basePrecision))))
	derivedPrecision.Store(basePrecision, derived)
	return derived
}

// Scalar transforms one coordinate to web Mercator and rounds it to the
// destination precision derived from basePrecision. Longitude values
// project along the x axis, latitude along y.
func Scalar(v float64, basePrecision int, longitude bool) float64 {
	prec := DerivePrecision(basePrecision)
	if longitude {
		p := project.WGS84.ToMercator(orb.Point{v, 0})
		return round(p[0], prec)
	}
	p := project.WGS84.ToMercator(orb.Point{0, v})
	return round(p[1], prec)
}

// Clone deep-copies a geometry so in-place transforms cannot corrupt the
// caller's copy.
func Clone(g orb.Geometry) orb.Geometry {
	switch geom := g.(type) {
	case orb.Point:
		return geom

	case orb.MultiPoint:
		clone := make(orb.MultiPoint, len(geom))
		copy(clone, geom)
		return clone

	case orb.LineString:
		clone := make(orb.LineString, len(geom))
		copy(clone, geom)
		return clone

	case orb.MultiLineString:
		clone := make(orb.MultiLineString, len(geom))
		for i, ls := range geom {
			clone[i] = make(orb.LineString, len(ls))
			copy(clone[i], ls)
		}
		return clone

	case orb.Ring:
		clone := make(orb.Ring, len(geom))
		copy(clone, geom)
		return clone

	case orb.Polygon:
		clone := make(orb.Polygon, len(geom))
		for i, ring := range geom {
			clone[i] = make(orb.Ring, len(ring))
			copy(clone[i], ring)
		}
		return clone

	case orb.MultiPolygon:
		clone := make(orb.MultiPolygon, len(geom))
		for i, poly := range geom {
			clone[i] = make(orb.Polygon, len(poly))
			for j, ring := range poly {
				clone[i][j] = make(orb.Ring, len(ring))
				copy(clone[i][j], ring)
			}
		}
		return clone

	case orb.Collection:
		clone := make(orb.Collection, len(geom))
		for i, sub := range geom {
			clone[i] = Clone(sub)
		}
		return clone

	case orb.Bound:
		return geom

	default:
		return g
	}
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
