package session

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/geotable/geotable/internal/flatten"
)

// Row is one record of the coordinate table: the raw input reference, its
// flattened coordinates in both coordinate spaces, a representative point
// in both spaces, a stable unique identifier, and caller-supplied metadata.
type Row struct {
	UID            any               `json:"uid"`
	Raw            any               `json:"raw"`
	Coords         []flatten.Part    `json:"coords"`
	CoordsMercator []flatten.Part    `json:"coords_mercator"`
	Point          orb.Point         `json:"point"`
	PointMercator  orb.Point         `json:"point_mercator"`
	Meta           map[string]any    `json:"meta,omitempty"`
	Colors         map[string]string `json:"colors,omitempty"`

	geometry orb.Geometry
}

// Table is the renderer-facing coordinate table for one labeled source.
// Rows are appended only by source ingestion and are never mutated except
// to attach generated color columns.
type Table struct {
	Label string `json:"label"`
	Rows  []Row  `json:"rows"`
}

// Column returns the per-row values of a named column. The uid column and
// metadata columns are addressable; color columns are not (they are
// derived, not source data).
func (t *Table) Column(name string) ([]any, bool) {
	if len(t.Rows) == 0 {
		return nil, false
	}
	if name == "uid" {
		out := make([]any, len(t.Rows))
		for i, r := range t.Rows {
			out[i] = r.UID
		}
		return out, true
	}
	if _, ok := t.Rows[0].Meta[name]; !ok {
		return nil, false
	}
	out := make([]any, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Meta[name]
	}
	return out, true
}

// setColorColumn attaches a generated color column to every row.
func (t *Table) setColorColumn(name string, colors []string) {
	for i := range t.Rows {
		if t.Rows[i].Colors == nil {
			t.Rows[i].Colors = make(map[string]string, 1)
		}
		t.Rows[i].Colors[name] = colors[i]
	}
}

// points returns the representative points of all rows in the original
// coordinate space.
func (t *Table) points() (x, y []float64) {
	x = make([]float64, len(t.Rows))
	y = make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		x[i], y[i] = r.Point[0], r.Point[1]
	}
	return x, y
}

// Bounds is the aggregate extent of every ingested source, in degrees. It
// is updated monotonically: adding a source can only widen it.
type Bounds struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`

	set bool
}

// Extend widens the bounds to cover the given extent.
func (b *Bounds) Extend(xmin, xmax, ymin, ymax float64) {
	if !b.set {
		b.XMin, b.XMax, b.YMin, b.YMax = xmin, xmax, ymin, ymax
		b.set = true
		return
	}
	if xmin < b.XMin {
		b.XMin = xmin
	}
	if xmax > b.XMax {
		b.XMax = xmax
	}
	if ymin < b.YMin {
		b.YMin = ymin
	}
	if ymax > b.YMax {
		b.YMax = ymax
	}
}

// Valid reports whether any extent has been recorded.
func (b *Bounds) Valid() bool { return b.set }

// partsExtent returns the extent covered by a part list, including holes.
func partsExtent(parts []flatten.Part) (xmin, xmax, ymin, ymax float64, ok bool) {
	first := true
	visit := func(pts []orb.Point) {
		for _, p := range pts {
			if first {
				xmin, xmax, ymin, ymax = p[0], p[0], p[1], p[1]
				first = false
				continue
			}
			if p[0] < xmin {
				xmin = p[0]
			}
			if p[0] > xmax {
				xmax = p[0]
			}
			if p[1] < ymin {
				ymin = p[1]
			}
			if p[1] > ymax {
				ymax = p[1]
			}
		}
	}
	for _, part := range parts {
		visit(part.Exterior)
		for _, hole := range part.Holes {
			visit(hole)
		}
	}
	return xmin, xmax, ymin, ymax, !first
}

// uidList resolves the unique identifiers for n records: explicit ids, a
// metadata column, or positional indices.
func uidList(n int, explicit []any, column string, meta map[string][]any) ([]any, error) {
	switch {
	case explicit != nil:
		if len(explicit) != n {
			return nil, fmt.Errorf("uid list has %d entries for %d records", len(explicit), n)
		}
		return explicit, nil
	case column != "":
		col, ok := meta[column]
		if !ok {
			return nil, fmt.Errorf("uid column %q is not a metadata column", column)
		}
		return col, nil
	default:
		out := make([]any, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
}
