// Package interfaces defines interfaces for dependency injection and testing
package interfaces

import (
	"context"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/config"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/renderer"
)

// TableLoader defines the interface for loading tabular data files
type TableLoader interface {
	// Load reads a local path or http(s) URL into a table
	Load(ctx context.Context, path string) (*dataset.Table, error)
}

// ChartRenderer defines the interface for rendering charts
type ChartRenderer interface {
	// Render draws the request from the table and saves it to the output path
	Render(ctx context.Context, req chart.Request, t *dataset.Table, outputPath string, opts renderer.Options) error
}

// PathValidator defines the interface for validating file paths
type PathValidator interface {
	// ValidateOutputPath validates that an image can be written to path
	ValidateOutputPath(path string) error

	// ValidateDataPath validates a local data file or remote data URL
	ValidateDataPath(path string) error
}

// ChartGenerator defines the interface for generating charts
type ChartGenerator interface {
	// Generate renders the chart described by params
	Generate(ctx context.Context, params config.Params) (*GenerateResult, error)
}

// GenerateResult contains the results of chart generation
type GenerateResult struct {
	ChartType  chart.Type
	RowCount   int64
	OutputPath string
}
