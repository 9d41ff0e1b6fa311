// Package viewport estimates zoom level, plot height, and center for a
// tile-based web map covering a geographic extent.
package viewport

import "math"

const (
	heightMax = 600
	zoomMax   = 21
	worldDim  = 256
)

// Estimate holds the viewport parameters derived from an extent.
type Estimate struct {
	Zoom      int     `json:"zoom"`
	CenterLon float64 `json:"center_lon"`
	CenterLat float64 `json:"center_lat"`
	Height    int     `json:"height"`
}

// EstimateZoom returns the viewport for a plot of plotWidth pixels showing
// the extent [xmin, xmax] x [ymin, ymax] in degrees.
func EstimateZoom(plotWidth int, xmin, xmax, ymin, ymax float64) Estimate {
	xRange := math.Abs(xmax - xmin)
	yRange := math.Abs(ymax - ymin)

	height := heightMax
	if xRange > 0 && yRange > 0 {
		height = int(float64(plotWidth) / xRange * yRange)
	}
	if height < plotWidth {
		height = plotWidth
	}
	if height > heightMax {
		height = heightMax
	}

	latFraction := (latRad(ymax) - latRad(ymin)) / math.Pi
	lngDiff := xmax - xmin
	if lngDiff < 0 {
		lngDiff += 360
	}
	lngFraction := lngDiff / 360

	latZoom, latOK := zoom(height, latFraction)
	lngZoom, lngOK := zoom(plotWidth, lngFraction)

	z := zoomMax
	switch {
	case latOK && lngOK:
		z = min(latZoom, min(lngZoom, zoomMax))
	case latOK:
		z = min(latZoom, zoomMax)
	case lngOK:
		z = min(lngZoom, zoomMax)
	}

	return Estimate{
		Zoom:      z,
		CenterLon: (xmin + xmax) / 2,
		CenterLat: (ymin + ymax) / 2,
		Height:    height,
	}
}

// latRad converts a latitude to a clamped Mercator radian value.
func latRad(lat float64) float64 {
	sine := math.Sin(lat * math.Pi / 180)
	radX2 := math.Log((1+sine)/(1-sine)) / 2
	return math.Max(math.Min(radX2, math.Pi), -math.Pi) / 2
}

// zoom returns the zoom factor at which fraction of the world fits in
// mapPx pixels; ok is false when the fraction is zero.
func zoom(mapPx int, fraction float64) (int, bool) {
	if fraction == 0 {
		return 0, false
	}
	return int(math.Floor(math.Log(float64(mapPx)/worldDim/fraction) / math.Ln2)), true
}
