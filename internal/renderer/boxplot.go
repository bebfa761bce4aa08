package renderer

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/stats"
)

func boxplotChart(r chart.Boxplot, t *dataset.Table, s Style) (*figure, error) {
	ys, err := t.Numeric(r.Y)
	if err != nil {
		return nil, err
	}

	p := newPlot(s)
	p.Y.Label.Text = r.Y

	category := r.CategoryColumn()
	if category == "" {
		values := stats.Finite(ys)
		if len(values) == 0 {
			return nil, fmt.Errorf("%w: column %q has no values", ErrNoData, r.Y)
		}
		box, err := newBox(values, 0, s.bandWidth(1), s.Primary)
		if err != nil {
			return nil, err
		}
		p.Add(box)
		p.HideX()
		return &figure{main: p}, nil
	}

	cat, groups, err := splitValues(t, category, ys)
	if err != nil {
		return nil, err
	}
	if !hasValues(groups) {
		return nil, fmt.Errorf("%w: column %q has no values", ErrNoData, r.Y)
	}

	colors := s.CategoryColors(len(cat.Levels))
	width := s.bandWidth(len(cat.Levels))
	for i, values := range groups {
		if len(values) == 0 {
			continue
		}
		box, err := newBox(values, float64(i), width, colors[i])
		if err != nil {
			return nil, err
		}
		p.Add(box)
	}
	p.NominalX(cat.Levels...)
	p.X.Label.Text = category
	rotateTicks(&p.X, s)
	return &figure{main: p}, nil
}

func newBox(values []float64, loc float64, width vg.Length, fill color.Color) (*plotter.BoxPlot, error) {
	box, err := plotter.NewBoxPlot(width, loc, plotter.Values(values))
	if err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}
	outline := darkenColor(fill, 45)
	box.FillColor = fill
	box.BoxStyle.Color = outline
	box.BoxStyle.Width = vg.Points(1)
	box.MedianStyle.Color = outline
	box.MedianStyle.Width = vg.Points(1.5)
	box.WhiskerStyle.Color = outline
	box.GlyphStyle.Color = outline
	return box, nil
}
