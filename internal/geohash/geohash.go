// Package geohash decodes base-32 geohash codes into latitude/longitude
// intervals and bounding-box polygons.
//
// Decoding expands each character to five bits and bisects the active
// coordinate interval per bit, longitude first. The decoded coordinate is
// the final interval midpoint; the error is half the final interval width.
package geohash

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// MaxLength is the longest code accepted (60 bits of precision).
const MaxLength = 12

const alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// ErrInvalidGeohash reports a malformed geohash code.
var ErrInvalidGeohash = errors.New("invalid geohash")

var decodeTable = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int8(i)
	}
	return t
}()

// Valid reports whether code is a well-formed geohash: 1 to 12 characters,
// all from the base-32 alphabet.
func Valid(code string) bool {
	if len(code) == 0 || len(code) > MaxLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if decodeTable[code[i]] < 0 {
			return false
		}
	}
	return true
}

// Decode returns the center of the lat/lon interval encoded by code, plus
// the half-widths of that interval.
func Decode(code string) (lat, lon, latErr, lonErr float64, err error) {
	if len(code) == 0 || len(code) > MaxLength {
		return 0, 0, 0, 0, fmt.Errorf("%w: code %q must be 1 to %d characters", ErrInvalidGeohash, code, MaxLength)
	}

	latLo, latHi := -90.0, 90.0
	lonLo, lonHi := -180.0, 180.0
	isLon := true

	for i := 0; i < len(code); i++ {
		v := decodeTable[code[i]]
		if v < 0 {
			return 0, 0, 0, 0, fmt.Errorf("%w: character %q in %q", ErrInvalidGeohash, code[i], code)
		}
		for bit := 4; bit >= 0; bit-- {
			if isLon {
				mid := (lonLo + lonHi) / 2
				if v>>uint(bit)&1 == 1 {
					lonLo = mid
				} else {
					lonHi = mid
				}
			} else {
				mid := (latLo + latHi) / 2
				if v>>uint(bit)&1 == 1 {
					latLo = mid
				} else {
					latHi = mid
				}
			}
			isLon = !isLon
		}
	}

	lat = (latLo + latHi) / 2
	lon = (lonLo + lonHi) / 2
	latErr = (latHi - latLo) / 2
	lonErr = (lonHi - lonLo) / 2
	return lat, lon, latErr, lonErr, nil
}

// BoundingBox returns the axis-aligned rectangle covered by code, with
// coordinates rounded to precision decimal digits.
func BoundingBox(code string, precision int) (orb.Polygon, error) {
	lat, lon, latErr, lonErr, err := Decode(code)
	if err != nil {
		return nil, err
	}

	minX := round(lon-lonErr, precision)
	maxX := round(lon+lonErr, precision)
	minY := round(lat-latErr, precision)
	maxY := round(lat+latErr, precision)

	return orb.Polygon{orb.Ring{
		{minX, maxY},
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
	}}, nil
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
