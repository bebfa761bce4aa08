// Package generator runs one chart render from a set of parameters. It is
// shared by the CLI and the Terraform provider.
package generator

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/config"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/interfaces"
	"github.com/ankek/terraform-provider-chartkit/internal/renderer"
	"github.com/ankek/terraform-provider-chartkit/internal/validation"
)

// LogLevelEnv names the environment variable that sets the log level.
const LogLevelEnv = "CHARTKIT_LOG_LEVEL"

// Result is the outcome of a successful render.
type Result = interfaces.GenerateResult

// Generator handles the core logic of generating charts.
type Generator struct {
	Loader    interfaces.TableLoader
	Renderer  interfaces.ChartRenderer
	Validator interfaces.PathValidator
	Logger    hclog.Logger
	// Style overrides renderer.DefaultStyle when set.
	Style *renderer.Style
}

var _ interfaces.ChartGenerator = (*Generator)(nil)

// New returns a Generator wired to the real loader, renderer and path checks.
func New(logger hclog.Logger) *Generator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Generator{
		Loader:    &dataset.Loader{Logger: logger.Named("dataset")},
		Renderer:  RendererFunc(renderer.Render),
		Validator: PathValidator{},
		Logger:    logger,
	}
}

// NewLogger returns the stderr logger used by chartkit, at the level named by
// CHARTKIT_LOG_LEVEL (warn when unset).
func NewLogger() hclog.Logger {
	level := hclog.LevelFromString(os.Getenv(LogLevelEnv))
	if level == hclog.NoLevel {
		level = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "chartkit",
		Level:  level,
		Output: os.Stderr,
	})
}

// Generate creates a chart from a data file.
//
// It performs the following steps:
//  1. Builds the chart request, checking the columns the chart type needs
//  2. Validates the data and output paths
//  3. Loads the data file into a table and checks the referenced columns exist
//  4. Renders the chart to the output path
func (g *Generator) Generate(ctx context.Context, params config.Params) (*Result, error) {
	log := g.logger()

	req, err := params.Request()
	if err != nil {
		return nil, err
	}

	if err := g.Validator.ValidateDataPath(params.DataPath); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := g.Validator.ValidateOutputPath(params.OutputPath); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}

	table, err := g.Loader.Load(ctx, params.DataPath)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded data", "path", params.DataPath, "rows", table.Len(), "columns", table.ColumnNames())

	for _, name := range req.Columns() {
		if _, err := table.Column(name); err != nil {
			return nil, err
		}
	}

	opts := renderer.Options{Title: params.ResolvedTitle()}
	if g.Style != nil {
		opts.Style = *g.Style
	}
	if err := g.Renderer.Render(ctx, req, table, params.OutputPath, opts); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	log.Info("chart written", "type", req.ChartType(), "output", params.OutputPath)

	return &Result{
		ChartType:  req.ChartType(),
		RowCount:   int64(table.Len()),
		OutputPath: params.OutputPath,
	}, nil
}

func (g *Generator) logger() hclog.Logger {
	if g.Logger == nil {
		return hclog.NewNullLogger()
	}
	return g.Logger
}

// RendererFunc adapts a render function to interfaces.ChartRenderer.
type RendererFunc func(ctx context.Context, req chart.Request, t *dataset.Table, outputPath string, opts renderer.Options) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, req chart.Request, t *dataset.Table, outputPath string, opts renderer.Options) error {
	return f(ctx, req, t, outputPath, opts)
}

// PathValidator checks paths with the validation package, accepting the image
// extensions the renderer can encode.
type PathValidator struct{}

func (PathValidator) ValidateOutputPath(path string) error {
	return validation.ValidateOutputPath(path, renderer.SupportedExtensions())
}

func (PathValidator) ValidateDataPath(path string) error {
	return validation.ValidateDataPath(path)
}
