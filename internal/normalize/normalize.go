// Package normalize turns heterogeneous spatial references into geometries.
// A reference may be a geohash, a well-known-text string, a GeoJSON feature
// collection, a lon/lat coordinate pair, or an orb geometry; everything else
// is rejected.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/geotable/geotable/internal/geohash"
)

// ErrOutOfRange reports a coordinate pair outside the WGS84 domain.
var ErrOutOfRange = errors.New("coordinate out of range")

// ErrUnrecognizedInput reports a value that matches no supported reference
// kind.
var ErrUnrecognizedInput = errors.New("unrecognized spatial reference")

// WKT geometries start with one of these keywords, upper-cased.
var wktPrefixes = []string{
	"GEOMETRYCOLLECTION",
	"MULTIPOLYGON",
	"MULTILINESTRING",
	"MULTIPOINT",
	"POLYGON",
	"LINESTRING",
	"POINT",
}

// IsFeatureData reports whether a value looks like GeoJSON feature data: a
// string or byte slice containing a feature collection.
func IsFeatureData(v any) bool {
	var raw []byte
	switch s := v.(type) {
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	default:
		return false
	}
	if !strings.Contains(string(raw), "features") {
		return false
	}
	var probe struct {
		Type     string          `json:"type"`
		Features json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Type == "FeatureCollection" && probe.Features != nil
}

// FeatureCollection parses GeoJSON feature data into a geometry collection
// holding one geometry per feature. Point features are buffered to a square
// envelope of one unit in the last meaningful decimal digit, so every
// geometry has area.
func FeatureCollection(v any, precision int) (orb.Collection, error) {
	var raw []byte
	switch s := v.(type) {
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	default:
		return nil, fmt.Errorf("%w: feature data must be a string or byte slice", ErrUnrecognizedInput)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}
	margin := math.Pow(0.1, float64(precision))
	coll := make(orb.Collection, 0, len(fc.Features))
	for _, f := range fc.Features {
		g := f.Geometry
		if p, ok := g.(orb.Point); ok {
			g = envelope(p, margin)
		}
		coll = append(coll, g)
	}
	return coll, nil
}

// Value normalizes a single spatial reference into a geometry. Candidate
// kinds are tried in a fixed order: GeoJSON feature data, geohash, WKT,
// coordinate pair, then geometry passthrough.
func Value(v any, precision int) (orb.Geometry, error) {
	if IsFeatureData(v) {
		return FeatureCollection(v, precision)
	}

	switch ref := v.(type) {
	case string:
		if geohash.Valid(ref) {
			poly, err := geohash.BoundingBox(ref, precision)
			if err != nil {
				return nil, err
			}
			return poly, nil
		}
		upper := strings.ToUpper(strings.TrimSpace(ref))
		for _, prefix := range wktPrefixes {
			if strings.HasPrefix(upper, prefix) {
				g, err := wkt.Unmarshal(ref)
				if err != nil {
					return nil, fmt.Errorf("parse wkt: %w", err)
				}
				return g, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is neither a geohash nor well-known text", ErrUnrecognizedInput, ref)

	case [2]float64:
		return lonLat(ref[0], ref[1])
	case []float64:
		if len(ref) != 2 {
			return nil, fmt.Errorf("%w: coordinate slice has %d values, want 2", ErrUnrecognizedInput, len(ref))
		}
		return lonLat(ref[0], ref[1])
	case orb.Geometry:
		// Canonical geometries pass through unchanged; range validation
		// applies to raw coordinate pairs only.
		return ref, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnrecognizedInput, v)
}

// Batch normalizes a list of references all-or-nothing: one failure fails
// the whole batch, and the error names the offending record. A batch whose
// first record is feature data must be feature data throughout.
func Batch(values []any, precision int) ([]orb.Geometry, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrUnrecognizedInput)
	}
	featureMode := IsFeatureData(values[0])
	out := make([]orb.Geometry, len(values))
	for i, v := range values {
		if featureMode != IsFeatureData(v) {
			return nil, fmt.Errorf("record %d: %w: cannot mix feature data with other reference kinds", i, ErrUnrecognizedInput)
		}
		g, err := Value(v, precision)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out[i] = g
	}
	return out, nil
}

func lonLat(lon, lat float64) (orb.Geometry, error) {
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrOutOfRange, lon)
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrOutOfRange, lat)
	}
	return orb.Point{lon, lat}, nil
}

func envelope(p orb.Point, margin float64) orb.Polygon {
	b := orb.Bound{
		Min: orb.Point{p[0] - margin, p[1] - margin},
		Max: orb.Point{p[0] + margin, p[1] + margin},
	}
	return b.ToPolygon()
}
