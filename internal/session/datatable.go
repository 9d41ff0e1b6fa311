package session

import (
	"fmt"
	"sort"
)

// TableColumn describes one column of a rendered data table. Width is in
// pixels, sized from the longest value.
type TableColumn struct {
	Field string `json:"field"`
	Width int    `json:"width"`
}

// DataTable is a tabular view over a source for display beside the plot.
type DataTable struct {
	Source  string        `json:"source"`
	Columns []TableColumn `json:"columns"`
}

// AddDataTable registers a tabular view of a source. A nil column list
// takes the uid column plus every metadata column; column widths are eight
// pixels per character of the longest value or header.
func (s *Session) AddDataTable(sourceLabel string, columns []string) error {
	if err := s.state.check(StageAddDataTable); err != nil {
		return err
	}
	table, ok := s.sources[sourceLabel]
	if !ok {
		return fmt.Errorf("source %q does not exist", sourceLabel)
	}

	if columns == nil {
		columns = []string{"uid"}
		if len(table.Rows) > 0 {
			meta := make([]string, 0, len(table.Rows[0].Meta))
			for name := range table.Rows[0].Meta {
				meta = append(meta, name)
			}
			sort.Strings(meta)
			columns = append(columns, meta...)
		}
	}

	dt := DataTable{Source: sourceLabel, Columns: make([]TableColumn, 0, len(columns))}
	for _, field := range columns {
		values, ok := table.Column(field)
		if !ok {
			return fmt.Errorf("column %q not in source %q", field, sourceLabel)
		}
		width := len(field)
		for _, v := range values {
			if n := len(fmt.Sprint(v)); n > width {
				width = n
			}
		}
		dt.Columns = append(dt.Columns, TableColumn{Field: field, Width: width * 8})
	}

	s.dataTables = append(s.dataTables, dt)
	s.log.Info().Str("source", sourceLabel).Int("columns", len(dt.Columns)).Msg("data table added")
	return nil
}

// DataTables returns the registered data tables.
func (s *Session) DataTables() []DataTable {
	out := make([]DataTable, len(s.dataTables))
	copy(out, s.dataTables)
	return out
}
