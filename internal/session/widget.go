package session

import (
	"fmt"
	"sort"

	"github.com/geotable/geotable/internal/colorize"
)

// Widget kinds a renderer can bind to a source column for filtering.
const (
	WidgetSlider      = "slider"
	WidgetRangeSlider = "range_slider"
	WidgetDropdown    = "dropdown"
	WidgetCheckbox    = "checkbox"
)

// Widget is a filter-control descriptor bound to one column of a source.
// Numeric columns carry a derived min/max range; everything else carries
// the sorted distinct labels.
type Widget struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Source  string   `json:"source"`
	Column  string   `json:"column"`
	Numeric bool     `json:"numeric"`
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
	Options []string `json:"options,omitempty"`
}

// AddWidget registers a filter widget over a source column. Range options
// are derived from the column: numeric values yield min/max, other values
// yield the distinct labels. The widget name defaults to the kind.
func (s *Session) AddWidget(sourceLabel, kind, column, name string) error {
	if err := s.state.check(StageAddWidget); err != nil {
		return err
	}
	switch kind {
	case WidgetSlider, WidgetRangeSlider, WidgetDropdown, WidgetCheckbox:
	default:
		return fmt.Errorf("unknown widget kind %q", kind)
	}
	table, ok := s.sources[sourceLabel]
	if !ok {
		return fmt.Errorf("source %q does not exist", sourceLabel)
	}
	values, ok := table.Column(column)
	if !ok {
		return fmt.Errorf("column %q not in source %q", column, sourceLabel)
	}
	if name == "" {
		name = kind
	}
	for _, w := range s.widgets {
		if w.Name == name {
			return fmt.Errorf("widget %q already exists", name)
		}
	}

	w := Widget{Name: name, Kind: kind, Source: sourceLabel, Column: column}
	if nums, ok := colorize.IsNumeric(values); ok {
		w.Numeric = true
		w.Min, w.Max = nums[0], nums[0]
		for _, v := range nums[1:] {
			if v < w.Min {
				w.Min = v
			}
			if v > w.Max {
				w.Max = v
			}
		}
	} else {
		seen := make(map[string]bool, len(values))
		for _, v := range values {
			label := fmt.Sprint(v)
			if !seen[label] {
				seen[label] = true
				w.Options = append(w.Options, label)
			}
		}
		sort.Strings(w.Options)
	}

	s.widgets = append(s.widgets, w)
	s.state.WidgetAdded = true
	s.log.Info().Str("widget", name).Str("source", sourceLabel).Str("column", column).Msg("widget added")
	return nil
}

// Widgets returns the registered widget descriptors.
func (s *Session) Widgets() []Widget {
	out := make([]Widget, len(s.widgets))
	copy(out, s.widgets)
	return out
}
