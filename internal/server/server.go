// Package server exposes a rendered session over HTTP so frontends can
// fetch the coordinate tables, bounds, and legend as JSON.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/geotable/geotable/internal/colorize"
	"github.com/geotable/geotable/internal/session"
)

// Config holds the server configuration.
type Config struct {
	Host string
	Port int
}

// Server serves one rendered session read-only.
type Server struct {
	config  Config
	router  chi.Router
	humaAPI huma.API
	out     *session.Output
	log     zerolog.Logger
}

// New creates a server over a rendered session output.
func New(cfg Config, out *session.Output, log zerolog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(requestLog(log))

	humaConfig := huma.DefaultConfig("geotable API", "0.1.0")
	humaConfig.Info.Description = "Read-only preview API for a rendered geotable session."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port), Description: "Local server"},
	}
	humaAPI := humachi.New(router, humaConfig)

	s := &Server{
		config:  cfg,
		router:  router,
		humaAPI: humaAPI,
		out:     out,
		log:     log,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// OpenAPI returns the generated API description.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// Types

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"0.1.0"`
}

type SourceInfo struct {
	Label   string `json:"label" doc:"Source label"`
	Records int    `json:"records" doc:"Number of records"`
}

type SourcesBody struct {
	Sources []SourceInfo `json:"sources"`
}

type LabelInput struct {
	Label string `path:"label" doc:"Source label" example:"towers"`
}

type TableOutput struct {
	Body session.Table
}

type BoundsBody struct {
	XMin float64 `json:"xmin" doc:"Western edge, degrees"`
	XMax float64 `json:"xmax" doc:"Eastern edge, degrees"`
	YMin float64 `json:"ymin" doc:"Southern edge, degrees"`
	YMax float64 `json:"ymax" doc:"Northern edge, degrees"`
}

type LegendBody struct {
	Entries  []session.LegendEntry `json:"entries,omitempty" doc:"Layer legend entries"`
	Colorbar []colorize.Stop       `json:"colorbar,omitempty" doc:"Gradient colorbar stops"`
}

type PlotOutput struct {
	Body session.Plot
}

func (s *Server) routes() {
	huma.Get(s.humaAPI, "/health", s.getHealth, huma.OperationTags("health"))
	huma.Get(s.humaAPI, "/api/v1/sources", s.getSources, huma.OperationTags("sources"))
	huma.Get(s.humaAPI, "/api/v1/table/{label}", s.getTable, huma.OperationTags("sources"))
	huma.Get(s.humaAPI, "/api/v1/bounds", s.getBounds, huma.OperationTags("plot"))
	huma.Get(s.humaAPI, "/api/v1/legend", s.getLegend, huma.OperationTags("plot"))
	huma.Get(s.humaAPI, "/api/v1/plot", s.getPlot, huma.OperationTags("plot"))
}

func (s *Server) getHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "0.1.0"}}, nil
}

func (s *Server) getSources(ctx context.Context, input *struct{}) (*struct{ Body SourcesBody }, error) {
	body := SourcesBody{Sources: make([]SourceInfo, 0, len(s.out.Sources))}
	for _, t := range s.out.Sources {
		body.Sources = append(body.Sources, SourceInfo{Label: t.Label, Records: len(t.Rows)})
	}
	return &struct{ Body SourcesBody }{Body: body}, nil
}

func (s *Server) getTable(ctx context.Context, input *LabelInput) (*TableOutput, error) {
	for _, t := range s.out.Sources {
		if t.Label == input.Label {
			return &TableOutput{Body: *t}, nil
		}
	}
	return nil, huma.Error404NotFound(fmt.Sprintf("no source %q", input.Label))
}

func (s *Server) getBounds(ctx context.Context, input *struct{}) (*struct{ Body BoundsBody }, error) {
	b := s.out.Bounds
	return &struct{ Body BoundsBody }{Body: BoundsBody{
		XMin: b.XMin, XMax: b.XMax, YMin: b.YMin, YMax: b.YMax,
	}}, nil
}

func (s *Server) getLegend(ctx context.Context, input *struct{}) (*struct{ Body LegendBody }, error) {
	return &struct{ Body LegendBody }{Body: LegendBody{
		Entries:  s.out.Legend,
		Colorbar: s.out.Colorbar,
	}}, nil
}

func (s *Server) getPlot(ctx context.Context, input *struct{}) (*PlotOutput, error) {
	if s.out.Plot == nil {
		return nil, huma.Error404NotFound("no plot prepared")
	}
	return &PlotOutput{Body: *s.out.Plot}, nil
}

// requestLog logs one line per request.
func requestLog(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
