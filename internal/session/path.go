package session

import (
	"fmt"
	"math"
	"sort"

	"github.com/geotable/geotable/internal/colorize"
)

// Path edge shapes.
const (
	EdgeCurved   = "curved"
	EdgeStraight = "straight"
)

// Segment is one edge of a path in web mercator coordinates. Curved edges
// bow away from the straight line through the quadratic control point
// (CX, CY); straight edges ignore it.
type Segment struct {
	From any     `json:"from"`
	To   any     `json:"to"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
	CX   float64 `json:"cx"`
	CY   float64 `json:"cy"`
}

// PathOptions configure path construction.
type PathOptions struct {
	// Edge is curved (default) or straight.
	Edge string
	// Legend labels the path in the plot legend.
	Legend string
	// Color is a color literal for the edges.
	Color string
}

// Path connects the representative points of one source. The links column
// decides the connections: numeric values order the records into a single
// chain, and link lists connect each record to the named uids.
type Path struct {
	Source   string    `json:"source"`
	Links    string    `json:"links"`
	Edge     string    `json:"edge"`
	Color    string    `json:"color,omitempty"`
	Legend   string    `json:"legend,omitempty"`
	Segments []Segment `json:"segments"`
}

// AddPath builds a path over a source from its links column. Numeric
// columns give a traversal in ascending order; columns of uid lists give a
// graph edge per listed uid.
func (s *Session) AddPath(sourceLabel, links string, opts *PathOptions) error {
	if err := s.state.check(StageAddPath); err != nil {
		return err
	}
	table, ok := s.sources[sourceLabel]
	if !ok {
		return fmt.Errorf("source %q does not exist", sourceLabel)
	}
	if opts == nil {
		opts = &PathOptions{}
	}
	edge := opts.Edge
	if edge == "" {
		edge = EdgeCurved
	}
	if edge != EdgeCurved && edge != EdgeStraight {
		return fmt.Errorf("unknown edge type %q", edge)
	}
	if opts.Color != "" && !colorize.CheckColor(opts.Color) {
		return fmt.Errorf("invalid path color %q", opts.Color)
	}
	values, ok := table.Column(links)
	if !ok {
		return fmt.Errorf("column %q not in source %q", links, sourceLabel)
	}

	var segments []Segment
	if order, numeric := colorize.IsNumeric(values); numeric {
		segments = chainSegments(table, order)
	} else if lists, ok := linkLists(values); ok {
		var err error
		segments, err = graphSegments(table, lists)
		if err != nil {
			return err
		}
	} else {
		return fmt.Errorf("links column %q must be numeric or hold lists of uids", links)
	}

	path := Path{
		Source:   sourceLabel,
		Links:    links,
		Edge:     edge,
		Color:    opts.Color,
		Legend:   opts.Legend,
		Segments: segments,
	}
	s.paths = append(s.paths, path)
	if opts.Legend != "" {
		s.legend = append(s.legend, LegendEntry{Label: opts.Legend, Source: sourceLabel, Model: "path"})
	}
	s.log.Info().Str("source", sourceLabel).Str("links", links).Int("segments", len(segments)).Msg("path added")
	return nil
}

// Paths returns the registered paths.
func (s *Session) Paths() []Path {
	out := make([]Path, len(s.paths))
	copy(out, s.paths)
	return out
}

// chainSegments connects consecutive records in ascending order of the
// numeric links column.
func chainSegments(table *Table, order []float64) []Segment {
	idx := make([]int, len(order))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return order[idx[a]] < order[idx[b]] })

	segments := make([]Segment, 0, len(idx)-1)
	for i := 1; i < len(idx); i++ {
		from, to := table.Rows[idx[i-1]], table.Rows[idx[i]]
		segments = append(segments, segment(from.UID, to.UID,
			from.PointMercator[0], from.PointMercator[1],
			to.PointMercator[0], to.PointMercator[1]))
	}
	return segments
}

// graphSegments connects each record to every uid its link list names.
func graphSegments(table *Table, lists [][]any) ([]Segment, error) {
	byUID := make(map[any]int, len(table.Rows))
	for i, r := range table.Rows {
		byUID[r.UID] = i
	}
	var segments []Segment
	for i, targets := range lists {
		from := table.Rows[i]
		for _, uid := range targets {
			j, ok := byUID[uid]
			if !ok {
				return nil, fmt.Errorf("link target %v is not a uid of source %q", uid, table.Label)
			}
			to := table.Rows[j]
			segments = append(segments, segment(from.UID, to.UID,
				from.PointMercator[0], from.PointMercator[1],
				to.PointMercator[0], to.PointMercator[1]))
		}
	}
	return segments, nil
}

// segment computes the quadratic control point so curved edges bow
// perpendicular to the travel direction.
func segment(fromUID, toUID any, x1, y1, x2, y2 float64) Segment {
	x3 := (x1 + x2) / 2
	y3 := (y1 + y2) / 2
	return Segment{
		From: fromUID, To: toUID,
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		CX: x3 + math.Abs(y3-y2),
		CY: y3 + math.Abs(x3-x2),
	}
}

// linkLists reports whether every value is a list of uids.
func linkLists(values []any) ([][]any, bool) {
	out := make([][]any, len(values))
	for i, v := range values {
		switch list := v.(type) {
		case []any:
			out[i] = list
		case []int:
			conv := make([]any, len(list))
			for j, u := range list {
				conv[j] = u
			}
			out[i] = conv
		case []string:
			conv := make([]any, len(list))
			for j, u := range list {
				conv[j] = u
			}
			out[i] = conv
		default:
			return nil, false
		}
	}
	return out, true
}
