package session

import (
	"fmt"

	"github.com/geotable/geotable/internal/colorize"
)

// Renderer models a layer may draw with. Area models consume the flattened
// part coordinates; point models consume the representative points.
const (
	ModelMultiPolygons = "multi_polygons"
	ModelPatches       = "patches"
	ModelCircle        = "circle"
	ModelSquare        = "square"
	ModelTriangle      = "triangle"
	ModelText          = "text"
)

var areaModels = map[string]bool{
	ModelMultiPolygons: true,
	ModelPatches:       true,
}

var pointModels = map[string]bool{
	ModelCircle:   true,
	ModelSquare:   true,
	ModelTriangle: true,
	ModelText:     true,
}

// LayerOptions configure a layer's visual encoding.
type LayerOptions struct {
	// Color is a color literal (hex or CSS name) or the name of a source
	// column to encode. Empty means the renderer's default.
	Color string
	// Gradient anchors for numeric column encoding.
	StartHex, EndHex, MidHex string
	// Transform is applied to numeric values before scaling.
	Transform colorize.Transform
	// Alpha is the fill/line opacity; zero means the renderer's default.
	Alpha float64
	// Legend labels the layer in the plot legend.
	Legend string
	// Size is the glyph size for point models; zero means default.
	Size float64
}

// Layer binds one source to a renderer model with its resolved color
// encoding. When a column was encoded, ColorColumn names the generated
// color column on the source table.
type Layer struct {
	Source      string  `json:"source"`
	Model       string  `json:"model"`
	Color       string  `json:"color,omitempty"`
	ColorColumn string  `json:"color_column,omitempty"`
	Alpha       float64 `json:"alpha,omitempty"`
	Size        float64 `json:"size,omitempty"`
	Legend      string  `json:"legend,omitempty"`
}

// AddLayer draws a source with a renderer model. A color literal passes
// through untouched, as does a column whose values are all valid colors;
// any other column is encoded per value kind — numeric columns get a
// sign-aware gradient (and set the session colorbar, first layer wins),
// other columns get spatially ordered categorical colors — and the result
// is attached to the table as `<column>_autocolor`.
func (s *Session) AddLayer(sourceLabel, model string, opts *LayerOptions) error {
	if err := s.state.check(StageAddLayer); err != nil {
		return err
	}
	if !areaModels[model] && !pointModels[model] {
		return fmt.Errorf("unknown layer model %q", model)
	}
	table, ok := s.sources[sourceLabel]
	if !ok {
		return fmt.Errorf("source %q does not exist", sourceLabel)
	}
	if opts == nil {
		opts = &LayerOptions{}
	}

	layer := Layer{
		Source: sourceLabel,
		Model:  model,
		Alpha:  opts.Alpha,
		Size:   opts.Size,
		Legend: opts.Legend,
	}

	switch {
	case opts.Color == "":
		// Renderer default.
	case colorize.CheckColor(opts.Color):
		layer.Color = opts.Color
	default:
		values, ok := table.Column(opts.Color)
		if !ok {
			return fmt.Errorf("color %q is neither a color nor a column of source %q", opts.Color, table.Label)
		}
		if allColors(values) {
			// The column already holds renderable colors; use it as is.
			layer.ColorColumn = opts.Color
			break
		}
		colors, err := s.encodeColumn(table, values, opts)
		if err != nil {
			return err
		}
		layer.ColorColumn = opts.Color + "_autocolor"
		table.setColorColumn(layer.ColorColumn, colors)
	}

	s.layers = append(s.layers, layer)
	if opts.Legend != "" {
		s.legend = append(s.legend, LegendEntry{Label: opts.Legend, Source: sourceLabel, Model: model})
	}
	s.state.LayerAdded = true
	s.log.Info().Str("source", sourceLabel).Str("model", model).Msg("layer added")
	return nil
}

// allColors reports whether every column value is already a usable color.
func allColors(values []any) bool {
	for _, v := range values {
		s, ok := v.(string)
		if !ok || !colorize.CheckColor(s) {
			return false
		}
	}
	return len(values) > 0
}

// encodeColumn turns a source column's values into one color per row.
func (s *Session) encodeColumn(table *Table, values []any, opts *LayerOptions) ([]string, error) {
	if nums, numeric := colorize.IsNumeric(values); numeric {
		start, end, mid := opts.StartHex, opts.EndHex, opts.MidHex
		if start == "" {
			start = "#ff0000"
		}
		if end == "" {
			end = "#0000ff"
		}
		if mid == "" {
			mid = "#ffffff"
		}
		colors, err := colorize.Gradient(nums, start, end, mid, opts.Transform)
		if err != nil {
			return nil, err
		}
		if s.colorbar == nil {
			s.colorbar = colorize.ColorbarLegend(nums, colors)
		}
		return colors, nil
	}

	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = fmt.Sprint(v)
	}
	distinct := make(map[string]bool, len(labels))
	for _, l := range labels {
		distinct[l] = true
	}
	px, py := table.points()
	mapping, err := colorize.Categorical(labels, colorize.DefaultPalette(len(distinct)), px, py)
	if err != nil {
		return nil, err
	}
	return colorize.Apply(labels, mapping), nil
}

// LegendEntry labels one layer or path in the plot legend.
type LegendEntry struct {
	Label  string `json:"label"`
	Source string `json:"source"`
	Model  string `json:"model"`
}

// Layers returns the registered layers.
func (s *Session) Layers() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Colorbar returns the gradient legend stops, or nil if no numeric column
// has been encoded.
func (s *Session) Colorbar() []colorize.Stop { return s.colorbar }
