// Package config loads render specifications from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RenderSpec is a declarative description of a full session run: sources
// to ingest, the viewport, and the layers to draw.
type RenderSpec struct {
	Precision int          `yaml:"precision"`
	Padding   float64      `yaml:"padding"`
	Plot      PlotSpec     `yaml:"plot"`
	Sources   []SourceSpec `yaml:"sources"`
	Layers    []LayerSpec  `yaml:"layers"`
	Paths     []PathSpec   `yaml:"paths"`
}

// PlotSpec configures the viewport stage.
type PlotSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Tiles  string `yaml:"tiles"`
	Title  string `yaml:"title"`
}

// SourceSpec names a file to ingest: the column holding spatial references
// and optionally the column holding unique identifiers.
type SourceSpec struct {
	Label     string `yaml:"label"`
	File      string `yaml:"file"`
	RefColumn string `yaml:"ref_column"`
	UIDColumn string `yaml:"uid_column"`
}

// LayerSpec configures one layer over an ingested source.
type LayerSpec struct {
	Source   string  `yaml:"source"`
	Model    string  `yaml:"model"`
	Color    string  `yaml:"color"`
	StartHex string  `yaml:"start_hex"`
	EndHex   string  `yaml:"end_hex"`
	MidHex   string  `yaml:"mid_hex"`
	Alpha    float64 `yaml:"alpha"`
	Size     float64 `yaml:"size"`
	Legend   string  `yaml:"legend"`
}

// PathSpec configures one path over an ingested source.
type PathSpec struct {
	Source string `yaml:"source"`
	Links  string `yaml:"links"`
	Edge   string `yaml:"edge"`
	Color  string `yaml:"color"`
	Legend string `yaml:"legend"`
}

// Load reads and validates a render spec file.
func Load(path string) (*RenderSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read render spec: %w", err)
	}
	var spec RenderSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse render spec: %w", err)
	}
	if spec.Precision == 0 {
		spec.Precision = 6
	}
	if spec.Padding == 0 {
		spec.Padding = 0.05
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *RenderSpec) validate() error {
	if len(s.Sources) == 0 {
		return fmt.Errorf("render spec names no sources")
	}
	labels := make(map[string]bool, len(s.Sources))
	for i, src := range s.Sources {
		if src.Label == "" {
			return fmt.Errorf("source %d has no label", i)
		}
		if labels[src.Label] {
			return fmt.Errorf("duplicate source label %q", src.Label)
		}
		labels[src.Label] = true
		if src.File == "" {
			return fmt.Errorf("source %q has no file", src.Label)
		}
		if src.RefColumn == "" {
			return fmt.Errorf("source %q has no ref_column", src.Label)
		}
	}
	if len(s.Layers) == 0 {
		return fmt.Errorf("render spec names no layers")
	}
	for _, l := range s.Layers {
		if !labels[l.Source] {
			return fmt.Errorf("layer references unknown source %q", l.Source)
		}
	}
	for _, p := range s.Paths {
		if !labels[p.Source] {
			return fmt.Errorf("path references unknown source %q", p.Source)
		}
		if p.Links == "" {
			return fmt.Errorf("path on source %q has no links column", p.Source)
		}
	}
	return nil
}
