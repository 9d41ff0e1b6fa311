package geohash

import (
	"errors"
	"math"
	"testing"
)

func TestDecodeGolden(t *testing.T) {
	// 7 characters = 35 bits: 18 for longitude, 17 for latitude, which
	// happens to give equal half-widths in both directions.
	lat, lon, latErr, lonErr, err := Decode("dnrgrfm")
	if err != nil {
		t.Fatal(err)
	}
	if lat != 35.74058532714844 {
		t.Errorf("lat=%v, want 35.74058532714844", lat)
	}
	if lon != -78.75343322753906 {
		t.Errorf("lon=%v, want -78.75343322753906", lon)
	}
	if latErr != 0.0006866455078125 || lonErr != 0.0006866455078125 {
		t.Errorf("errors=(%v, %v), want 0.0006866455078125 for both", latErr, lonErr)
	}
}

func TestDecodeSingleChar(t *testing.T) {
	lat, lon, latErr, lonErr, err := Decode("9")
	if err != nil {
		t.Fatal(err)
	}
	if lat != 22.5 || lon != -112.5 {
		t.Errorf("center=(%v, %v), want (22.5, -112.5)", lat, lon)
	}
	if latErr != 22.5 || lonErr != 22.5 {
		t.Errorf("errors=(%v, %v), want (22.5, 22.5)", latErr, lonErr)
	}
}

func TestDecodeLongCode(t *testing.T) {
	lat, lon, _, _, err := Decode("u4pruydqqvj")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lat-57.64911063015461) > 1e-12 {
		t.Errorf("lat=%v, want 57.64911063015461", lat)
	}
	if math.Abs(lon-10.407439693808556) > 1e-12 {
		t.Errorf("lon=%v, want 10.407439693808556", lon)
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, code := range []string{"", "abc", "dnrgrfi", "dnrgrfl", "dnrgrfo", "0123456789bcd", "DNRGRFM"} {
		if _, _, _, _, err := Decode(code); !errors.Is(err, ErrInvalidGeohash) {
			t.Errorf("Decode(%q) err=%v, want ErrInvalidGeohash", code, err)
		}
		if Valid(code) {
			t.Errorf("Valid(%q)=true, want false", code)
		}
	}
}

func TestBoundingBoxCenteredOnDecode(t *testing.T) {
	for _, code := range []string{"dnrgrfm", "u4pruyd", "9", "s000", "zzzzzz"} {
		lat, lon, latErr, lonErr, err := Decode(code)
		if err != nil {
			t.Fatal(err)
		}
		poly, err := BoundingBox(code, 12)
		if err != nil {
			t.Fatal(err)
		}
		if len(poly) != 1 {
			t.Fatalf("%s: parts=%d, want 1", code, len(poly))
		}
		ring := poly[0]
		if len(ring) != 5 {
			t.Fatalf("%s: ring length=%d, want 5", code, len(ring))
		}
		if ring[0] != ring[len(ring)-1] {
			t.Errorf("%s: ring not closed", code)
		}
		b := ring.Bound()
		const tol = 1e-9
		if math.Abs((b.Min[0]+b.Max[0])/2-lon) > tol || math.Abs((b.Min[1]+b.Max[1])/2-lat) > tol {
			t.Errorf("%s: box center=(%v, %v), want (%v, %v)", code, (b.Min[0]+b.Max[0])/2, (b.Min[1]+b.Max[1])/2, lon, lat)
		}
		if math.Abs((b.Max[0]-b.Min[0])/2-lonErr) > tol || math.Abs((b.Max[1]-b.Min[1])/2-latErr) > tol {
			t.Errorf("%s: half-widths=(%v, %v), want (%v, %v)", code, (b.Max[0]-b.Min[0])/2, (b.Max[1]-b.Min[1])/2, lonErr, latErr)
		}
	}
}

func TestBoundingBoxRounding(t *testing.T) {
	poly, err := BoundingBox("dnrgrfm", 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range poly[0] {
		for _, v := range p {
			if r := math.Round(v*1000) / 1000; r != v {
				t.Errorf("coordinate %v not rounded to 3 decimals", v)
			}
		}
	}
}
