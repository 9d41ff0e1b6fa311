package session

import "fmt"

// Workflow stages, in the order a session normally runs them.
const (
	StageAddSource    = "add_source"
	StageAddWidget    = "add_widget"
	StagePreparePlot  = "prepare_plot"
	StageAddLayer     = "add_layer"
	StageAddPath      = "add_path"
	StageAddDataTable = "add_data_table"
	StageRender       = "render"
)

// WorkflowOrderError reports a workflow stage invoked out of order. It is a
// programming-contract violation, not a data error, and is never retried.
type WorkflowOrderError struct {
	Stage string // the stage that was attempted
	Rule  string // the precondition that was violated
}

func (e *WorkflowOrderError) Error() string {
	return fmt.Sprintf("workflow order violated in %s: %s", e.Stage, e.Rule)
}

// State tracks which workflow stages have run. Each flag is set exactly
// once and never reset; a session is single-use and a new workflow needs a
// new session.
type State struct {
	SourceAdded  bool `json:"source_added"`
	WidgetAdded  bool `json:"widget_added"`
	PlotPrepared bool `json:"plot_prepared"`
	LayerAdded   bool `json:"layer_added"`
	Rendered     bool `json:"plot_rendered"`
}

// check validates that stage may run given the stages already completed.
func (s State) check(stage string) error {
	fail := func(rule string) error {
		return &WorkflowOrderError{Stage: stage, Rule: rule}
	}

	switch stage {
	case StageAddSource:
		if s.WidgetAdded {
			return fail("sources cannot be added after a widget has been added")
		}
		if s.PlotPrepared {
			return fail("sources cannot be added after the plot has been prepared")
		}
		if s.LayerAdded {
			return fail("sources cannot be added after a layer has been added")
		}
		if s.Rendered {
			return fail("the session has already rendered; start a new session")
		}

	case StageAddWidget:
		if !s.SourceAdded {
			return fail("a source must be added before adding a widget")
		}
		if s.PlotPrepared {
			return fail("widgets cannot be added after the plot has been prepared")
		}
		if s.LayerAdded {
			return fail("widgets cannot be added after a layer has been added")
		}
		if s.Rendered {
			return fail("the session has already rendered; start a new session")
		}

	case StagePreparePlot:
		if !s.SourceAdded {
			return fail("a source must be added before preparing the plot")
		}
		if s.LayerAdded {
			return fail("the plot cannot be prepared after a layer has been added")
		}
		if s.Rendered {
			return fail("the session has already rendered; start a new session")
		}

	case StageAddLayer:
		if !s.SourceAdded {
			return fail("a source must be added before adding a layer")
		}
		if !s.PlotPrepared {
			return fail("the plot must be prepared before adding a layer")
		}
		if s.Rendered {
			return fail("the session has already rendered; start a new session")
		}

	case StageAddPath:
		if !s.SourceAdded {
			return fail("a source must be added before adding a path")
		}
		if !s.PlotPrepared {
			return fail("the plot must be prepared before adding a path")
		}
		if s.Rendered {
			return fail("the session has already rendered; start a new session")
		}
		if s.WidgetAdded {
			return fail("paths and widgets are mutually exclusive in a session")
		}

	case StageAddDataTable:
		if !s.SourceAdded {
			return fail("a source must be added before adding a data table")
		}
		if !s.PlotPrepared {
			return fail("the plot must be prepared before adding a data table")
		}
		if s.Rendered {
			return fail("the session has already rendered; start a new session")
		}

	case StageRender:
		if !s.SourceAdded {
			return fail("a source must be added before rendering")
		}
		if !s.PlotPrepared {
			return fail("the plot must be prepared before rendering")
		}
		if !s.LayerAdded {
			return fail("a layer must be added before rendering")
		}
		if s.Rendered {
			return fail("the session has already rendered; start a new session")
		}
	}

	return nil
}
