package session

import (
	"fmt"

	"github.com/geotable/geotable/internal/project"
	"github.com/geotable/geotable/internal/tiles"
	"github.com/geotable/geotable/internal/viewport"
)

// Plot is the renderer-facing viewport descriptor: pixel frame, zoom and
// center estimated from the ingested bounds, padded axis ranges in web
// mercator, and the tile source.
type Plot struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Zoom      int        `json:"zoom"`
	CenterLon float64    `json:"center_lon"`
	CenterLat float64    `json:"center_lat"`
	XRange    [2]float64 `json:"x_range"`
	YRange    [2]float64 `json:"y_range"`
	Tiles     string     `json:"tiles"`
	TileURL   string     `json:"tile_url"`
	Title     string     `json:"title,omitempty"`
}

// PreparePlot fixes the viewport from the sources added so far. Width
// defaults to 700 pixels, height is estimated from the aspect ratio of the
// bounds when zero, and provider defaults to the package default tile set.
func (s *Session) PreparePlot(width, height int, provider, title string) error {
	if err := s.state.check(StagePreparePlot); err != nil {
		return err
	}
	if !s.bounds.Valid() {
		return fmt.Errorf("no coordinates ingested; cannot prepare a plot")
	}
	if width <= 0 {
		width = 700
	}
	tileURL, err := tiles.URL(provider)
	if err != nil {
		return err
	}
	if provider == "" {
		provider = tiles.Default
	}

	est := viewport.EstimateZoom(width, s.bounds.XMin, s.bounds.XMax, s.bounds.YMin, s.bounds.YMax)
	if height <= 0 {
		height = est.Height
	}

	xPad := (s.bounds.XMax - s.bounds.XMin) * s.padding
	yPad := (s.bounds.YMax - s.bounds.YMin) * s.padding

	s.plot = &Plot{
		Width:     width,
		Height:    height,
		Zoom:      est.Zoom,
		CenterLon: est.CenterLon,
		CenterLat: est.CenterLat,
		XRange: [2]float64{
			project.Scalar(s.bounds.XMin-xPad, s.precision, true),
			project.Scalar(s.bounds.XMax+xPad, s.precision, true),
		},
		YRange: [2]float64{
			project.Scalar(s.bounds.YMin-yPad, s.precision, false),
			project.Scalar(s.bounds.YMax+yPad, s.precision, false),
		},
		Tiles:   provider,
		TileURL: tileURL,
		Title:   title,
	}
	s.state.PlotPrepared = true
	s.log.Info().Int("width", width).Int("height", height).Int("zoom", est.Zoom).Msg("plot prepared")
	return nil
}

// Plot returns the prepared viewport, or nil before PreparePlot.
func (s *Session) Plot() *Plot { return s.plot }
