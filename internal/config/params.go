// Package config loads the parameters file that describes one chart render.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
)

var (
	// ErrMissingField is returned when a required parameter is empty.
	ErrMissingField = errors.New("missing required parameter")
	// ErrTrailingData is returned when a JSON parameters file holds more than
	// one value.
	ErrTrailingData = errors.New("unexpected data after parameters object")
)

// Params is the contents of a parameters file.
type Params struct {
	ChartType   string `json:"chartType"`
	DataPath    string `json:"dataPath"`
	OutputPath  string `json:"outputPath"`
	XColumn     string `json:"xColumn,omitempty"`
	YColumn     string `json:"yColumn,omitempty"`
	GroupColumn string `json:"groupColumn,omitempty"`
	Title       string `json:"title,omitempty"`
}

// Load reads a parameters file. Files ending in .hcl are decoded as HCL, every
// other file as JSON.
func Load(path string) (*Params, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return ParseHCL(src, path)
	}
	return ParseJSON(src)
}

// ParseJSON decodes a JSON parameters document.
func ParseJSON(src []byte) (*Params, error) {
	var p Params
	dec := json.NewDecoder(bytes.NewReader(src))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse parameters file: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("failed to parse parameters file: %w", ErrTrailingData)
	}
	return &p, nil
}

// Validate checks that the chart type is recognized and both paths are set.
func (p *Params) Validate() error {
	if _, err := chart.ParseType(p.ChartType); err != nil {
		return err
	}
	if p.DataPath == "" {
		return fmt.Errorf("%w: dataPath", ErrMissingField)
	}
	if p.OutputPath == "" {
		return fmt.Errorf("%w: outputPath", ErrMissingField)
	}
	return nil
}

// Request validates the parameters and builds the chart request for them.
func (p *Params) Request() (chart.Request, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	t, _ := chart.ParseType(p.ChartType)
	return chart.NewRequest(t, p.XColumn, p.YColumn, p.GroupColumn)
}

// ResolvedTitle returns the configured title, or the chart type's default
// title when none is set.
func (p *Params) ResolvedTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return chart.Type(p.ChartType).DefaultTitle()
}
