// Package tableclient is a small HTTP client for the geotable preview API.
package tableclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/geotable/geotable/internal/session"
)

// Client calls a running geotable server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for a server base URL, e.g. "http://localhost:8086".
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: http.DefaultClient}
}

// Health is the /health response.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// SourceInfo is one entry of the /api/v1/sources response.
type SourceInfo struct {
	Label   string `json:"label"`
	Records int    `json:"records"`
}

// Bounds is the /api/v1/bounds response.
type Bounds struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

func (c *Client) get(ctx context.Context, path string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(into)
}

// Health fetches the server health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSources fetches the source labels and record counts.
func (c *Client) ListSources(ctx context.Context) ([]SourceInfo, error) {
	var out struct {
		Sources []SourceInfo `json:"sources"`
	}
	if err := c.get(ctx, "/api/v1/sources", &out); err != nil {
		return nil, err
	}
	return out.Sources, nil
}

// Table fetches the coordinate table for a source label.
func (c *Client) Table(ctx context.Context, label string) (*session.Table, error) {
	var out session.Table
	if err := c.get(ctx, "/api/v1/table/"+label, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Bounds fetches the aggregate extent.
func (c *Client) Bounds(ctx context.Context) (*Bounds, error) {
	var out Bounds
	if err := c.get(ctx, "/api/v1/bounds", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
