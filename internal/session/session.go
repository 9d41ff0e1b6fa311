// Package session implements the stage-gated visualization workflow: add
// data sources, optionally add widgets, prepare the plot, add layers and
// paths, then render. Every stage validates the workflow state before
// touching session data, and failed operations leave the session unchanged.
package session

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/rs/zerolog"

	"github.com/geotable/geotable/internal/colorize"
	"github.com/geotable/geotable/internal/flatten"
	"github.com/geotable/geotable/internal/normalize"
	"github.com/geotable/geotable/internal/project"
)

// Session is a single-use visualization workflow. It exclusively owns its
// coordinate tables, bounds, and workflow state; independent sessions may
// run concurrently but one session must not be shared across goroutines.
type Session struct {
	precision int
	padding   float64
	log       zerolog.Logger

	state      State
	sources    map[string]*Table
	order      []string
	widgets    []Widget
	layers     []Layer
	paths      []Path
	dataTables []DataTable
	legend     []LegendEntry
	colorbar   []colorize.Stop
	bounds     Bounds
	plot       *Plot
}

// Option configures a new session.
type Option func(*Session)

// WithPrecision sets the number of meaningful decimal digits in degrees.
// The default of 6 is about the precision of a phone GPS fix.
func WithPrecision(p int) Option {
	return func(s *Session) { s.precision = p }
}

// WithPadding sets the viewport margin as a fraction of the data range.
func WithPadding(p float64) Option {
	return func(s *Session) { s.padding = p }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		precision: 6,
		padding:   0.05,
		log:       zerolog.Nop(),
		sources:   make(map[string]*Table),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the workflow state flags.
func (s *Session) State() State { return s.state }

// Bounds returns the aggregate extent of all ingested sources, in degrees.
func (s *Session) Bounds() Bounds { return s.bounds }

// Table returns the coordinate table for a source label.
func (s *Session) Table(label string) (*Table, bool) {
	t, ok := s.sources[label]
	return t, ok
}

// SourceOptions configure source ingestion.
type SourceOptions struct {
	// UID supplies explicit unique identifiers, one per record. When nil
	// and UIDColumn is empty, positional indices are used.
	UID []any
	// UIDColumn names a metadata column to take identifiers from.
	UIDColumn string
	// Meta holds caller-supplied metadata columns, each the same length as
	// the record list.
	Meta map[string][]any
}

// AddSource normalizes a batch of spatial references into a coordinate
// table registered under label. The batch is all-or-nothing: if any record
// fails normalization no session state changes.
func (s *Session) AddSource(label string, records []any, opts *SourceOptions) error {
	if err := s.state.check(StageAddSource); err != nil {
		return err
	}
	if opts == nil {
		opts = &SourceOptions{}
	}
	if label == "" {
		return fmt.Errorf("source label must not be empty")
	}
	if _, exists := s.sources[label]; exists {
		return fmt.Errorf("source %q already exists", label)
	}
	for name, col := range opts.Meta {
		if len(col) != len(records) {
			return fmt.Errorf("metadata column %q has %d values for %d records", name, len(col), len(records))
		}
	}
	uids, err := uidList(len(records), opts.UID, opts.UIDColumn, opts.Meta)
	if err != nil {
		return err
	}

	geoms, err := normalize.Batch(records, s.precision)
	if err != nil {
		return err
	}

	margin := math.Pow(0.1, float64(s.precision))
	derived := project.DerivePrecision(s.precision)

	rows := make([]Row, len(records))
	for i, g := range geoms {
		projected := project.Geometry(g)
		rep := flatten.RepresentativePoint(g)

		rows[i] = Row{
			UID:            uids[i],
			Raw:            rawReference(records[i]),
			Coords:         flatten.Flatten(g, margin, s.precision),
			CoordsMercator: flatten.Flatten(projected, margin, derived),
			Point:          roundPoint(rep, s.precision),
			PointMercator:  roundPoint(project.Point(rep), derived),
			geometry:       g,
		}
		if len(opts.Meta) > 0 {
			rows[i].Meta = make(map[string]any, len(opts.Meta))
			for name, col := range opts.Meta {
				rows[i].Meta[name] = col[i]
			}
		}
	}

	// All records normalized; commit.
	table := &Table{Label: label, Rows: rows}
	for _, row := range rows {
		if xmin, xmax, ymin, ymax, ok := partsExtent(row.Coords); ok {
			s.bounds.Extend(xmin, xmax, ymin, ymax)
		}
	}
	s.sources[label] = table
	s.order = append(s.order, label)
	s.state.SourceAdded = true
	s.log.Info().Str("source", label).Int("records", len(records)).Msg("source added")
	return nil
}

// SourceLabels returns the source labels in ingestion order.
func (s *Session) SourceLabels() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// rawReference keeps the raw input for the table, serializing geometry
// inputs to well-known text so every reference is plain data.
func rawReference(v any) any {
	if g, ok := v.(orb.Geometry); ok {
		return wkt.MarshalString(g)
	}
	return v
}

func roundPoint(p orb.Point, precision int) orb.Point {
	f := math.Pow(10, float64(precision))
	return orb.Point{math.Round(p[0]*f) / f, math.Round(p[1]*f) / f}
}
