// Package renderer draws charts from tabular data and writes them as raster
// images. Each chart type is a stateless transformation of a table into a
// gonum plot, exported at the style's resolution.
package renderer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
)

var (
	// ErrUnsupportedFormat is returned for output paths whose extension has no
	// image encoder.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrNoData is returned when the selected columns hold nothing to plot.
	ErrNoData = errors.New("no data to plot")
)

// Options contains configuration for rendering
type Options struct {
	// Title is drawn above the chart. Callers resolve the default title.
	Title string
	// Style defaults to DefaultStyle when left zero.
	Style Style
}

// Render draws req from t and writes the image to outputPath, choosing the
// encoder from the file extension.
// It respects the provided context for cancellation.
func Render(ctx context.Context, req chart.Request, t *dataset.Table, outputPath string, opts Options) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	format, err := FormatFor(outputPath)
	if err != nil {
		return err
	}

	style := opts.Style
	if style.DPI == 0 {
		style = DefaultStyle()
	}

	fig, err := build(req, t, style)
	if err != nil {
		return err
	}
	fig.main.Title.Text = opts.Title

	return export(ctx, fig, outputPath, format, style)
}

func build(req chart.Request, t *dataset.Table, s Style) (*figure, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: no request", chart.ErrUnknownChartType)
	}

	var (
		fig *figure
		err error
	)
	switch r := req.(type) {
	case chart.Boxplot:
		fig, err = boxplotChart(r, t, s)
	case chart.Scatter:
		fig, err = scatterChart(r, t, s)
	case chart.Line:
		fig, err = lineChart(r, t, s)
	case chart.Bar:
		fig, err = barChart(r, t, s)
	case chart.Histogram:
		fig, err = histogramChart(r, t, s)
	case chart.Violin:
		fig, err = violinChart(r, t, s)
	case chart.Density:
		fig, err = densityChart(r, t, s)
	case chart.Heatmap:
		fig, err = heatmapChart(r, t, s)
	case chart.Ridgeline:
		fig, err = ridgelineChart(r, t, s)
	case chart.Pie:
		fig, err = pieChart(r, t, s)
	default:
		return nil, fmt.Errorf("%w: %s", chart.ErrUnknownChartType, req.ChartType())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s chart: %w", req.ChartType(), err)
	}
	return fig, nil
}
