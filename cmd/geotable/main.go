package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/geotable/geotable/internal/config"
	"github.com/geotable/geotable/internal/ingest"
	"github.com/geotable/geotable/internal/logger"
	"github.com/geotable/geotable/internal/server"
	"github.com/geotable/geotable/internal/session"
)

// Options defines all CLI flags and env vars.
// Flags: --host, --port, --spec, --log-level, --console
type Options struct {
	Host     string `doc:"Host to bind to" default:"0.0.0.0"`
	Port     int    `doc:"Port to listen on" short:"p" default:"8086"`
	Spec     string `doc:"Render spec file (YAML)" short:"s" default:"render.yaml"`
	LogLevel string `doc:"Log level (debug, info, warn, error)" default:"info"`
	Console  bool   `doc:"Human-readable log output" default:"false"`
}

// run executes a render spec end to end: ingest each source file, prepare
// the viewport, add layers and paths, render.
func run(spec *config.RenderSpec, log zerolog.Logger) (*session.Output, error) {
	s := session.New(
		session.WithPrecision(spec.Precision),
		session.WithPadding(spec.Padding),
		session.WithLogger(log),
	)
	defer ingest.Close()

	for _, src := range spec.Sources {
		cols, err := ingest.ReadColumn(src.File, src.RefColumn)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Label, err)
		}
		err = s.AddSource(src.Label, cols.Refs, &session.SourceOptions{
			UIDColumn: src.UIDColumn,
			Meta:      cols.Meta,
		})
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Label, err)
		}
	}

	if err := s.PreparePlot(spec.Plot.Width, spec.Plot.Height, spec.Plot.Tiles, spec.Plot.Title); err != nil {
		return nil, err
	}

	for _, l := range spec.Layers {
		err := s.AddLayer(l.Source, l.Model, &session.LayerOptions{
			Color:    l.Color,
			StartHex: l.StartHex,
			EndHex:   l.EndHex,
			MidHex:   l.MidHex,
			Alpha:    l.Alpha,
			Size:     l.Size,
			Legend:   l.Legend,
		})
		if err != nil {
			return nil, fmt.Errorf("layer on %q: %w", l.Source, err)
		}
	}

	for _, p := range spec.Paths {
		err := s.AddPath(p.Source, p.Links, &session.PathOptions{
			Edge:   p.Edge,
			Color:  p.Color,
			Legend: p.Legend,
		})
		if err != nil {
			return nil, fmt.Errorf("path on %q: %w", p.Source, err)
		}
	}

	return s.Render()
}

func buildOutput(opts *Options) (*session.Output, zerolog.Logger, error) {
	zl := logger.Build(logger.Config{Level: opts.LogLevel, Console: opts.Console}, nil)
	spec, err := config.Load(opts.Spec)
	if err != nil {
		return nil, zl, err
	}
	out, err := run(spec, zl)
	return out, zl, err
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		hooks.OnStart(func() {
			out, zl, err := buildOutput(opts)
			if err != nil {
				log.Fatalf("render: %v", err)
			}

			srv := server.New(server.Config{Host: opts.Host, Port: opts.Port}, out, zl)
			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			fmt.Println()
			fmt.Printf("geotable preview server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			fmt.Printf("  Spec:    %s\n", opts.Spec)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Printf("  OpenAPI: %s/openapi.json\n", baseURL)
			fmt.Println()

			if err := http.ListenAndServe(addr, srv); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		})
	})

	cli.Root().Use = "geotable"
	cli.Root().Short = "Spatial data normalization and visual encoding"
	cli.Root().Version = "0.1.0"

	// render subcommand: run the pipeline and write the output as JSON
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Run a render spec and write the result as JSON",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			out, _, err := buildOutput(opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			raw, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
				os.Exit(1)
			}

			dest, _ := cmd.Flags().GetString("output")
			if dest == "" || dest == "-" {
				fmt.Println(string(raw))
				return
			}
			if err := os.WriteFile(dest, raw, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", dest, err)
				os.Exit(1)
			}
			fmt.Printf("Output written to %s\n", dest)
		}),
	}
	renderCmd.Flags().StringP("output", "o", "-", "Output file (- for stdout)")
	cli.Root().AddCommand(renderCmd)

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			srv := server.New(server.Config{Host: opts.Host, Port: opts.Port}, &session.Output{}, zerolog.Nop())
			apiSpec := srv.OpenAPI()

			useYAML, _ := cmd.Flags().GetBool("yaml")

			var output []byte
			var err error
			if useYAML {
				output, err = yaml.Marshal(apiSpec)
			} else {
				output, err = json.MarshalIndent(apiSpec, "", "  ")
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(output))
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	cli.Run()
}
