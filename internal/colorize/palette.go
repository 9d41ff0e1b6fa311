package colorize

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HLSPalette returns n hex colors evenly spaced over the hue channel at
// fixed lightness l and saturation s. h offsets the first hue; all three
// parameters are in [0, 1].
func HLSPalette(n int, h, l, s float64) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		hue := float64(i)/float64(n) + h
		hue -= math.Floor(hue)
		out = append(out, colorful.Hsl(hue*360, s, l).Hex())
	}
	return out
}

// DefaultPalette is the standard categorical palette: hue offset 0.01,
// lightness 0.6, saturation 0.65.
func DefaultPalette(n int) []string {
	return HLSPalette(n, 0.01, 0.6, 0.65)
}
