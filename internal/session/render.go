package session

import "github.com/geotable/geotable/internal/colorize"

// Output is the renderer-ready result of a session: everything a drawing
// frontend needs, with no rendering dependencies of its own.
type Output struct {
	Plot       *Plot           `json:"plot"`
	Bounds     Bounds          `json:"bounds"`
	Sources    []*Table        `json:"sources"`
	Layers     []Layer         `json:"layers"`
	Paths      []Path          `json:"paths,omitempty"`
	Widgets    []Widget        `json:"widgets,omitempty"`
	DataTables []DataTable     `json:"data_tables,omitempty"`
	Legend     []LegendEntry   `json:"legend,omitempty"`
	Colorbar   []colorize.Stop `json:"colorbar,omitempty"`
}

// Render closes the session and assembles the output. The session cannot
// be used afterwards.
func (s *Session) Render() (*Output, error) {
	if err := s.state.check(StageRender); err != nil {
		return nil, err
	}

	sources := make([]*Table, 0, len(s.order))
	for _, label := range s.order {
		sources = append(sources, s.sources[label])
	}

	out := &Output{
		Plot:       s.plot,
		Bounds:     s.bounds,
		Sources:    sources,
		Layers:     s.Layers(),
		Paths:      s.Paths(),
		Widgets:    s.Widgets(),
		DataTables: s.DataTables(),
		Legend:     append([]LegendEntry(nil), s.legend...),
		Colorbar:   append([]colorize.Stop(nil), s.colorbar...),
	}
	s.state.Rendered = true
	s.log.Info().Int("sources", len(sources)).Int("layers", len(out.Layers)).Msg("session rendered")
	return out, nil
}
