package renderer

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/stats"
)

func densityChart(r chart.Density, t *dataset.Table, s Style) (*figure, error) {
	xs, err := t.Numeric(r.X)
	if err != nil {
		return nil, err
	}

	var (
		names  []string
		groups [][]float64
	)
	if r.Group == "" {
		names = []string{""}
		groups = [][]float64{stats.Finite(xs)}
	} else {
		cat, split, err := splitValues(t, r.Group, xs)
		if err != nil {
			return nil, err
		}
		names, groups = cat.Levels, split
	}
	if !hasValues(groups) {
		return nil, fmt.Errorf("%w: column %q has no values", ErrNoData, r.X)
	}

	p := newPlot(s)
	p.X.Label.Text = r.X
	p.Y.Label.Text = "Density"
	legendTitle(p, r.Group)

	for i, values := range groups {
		if len(values) == 0 {
			continue
		}
		curve, err := densityCurve(values, s.DensityPoints)
		if err != nil {
			return nil, err
		}
		pts := make(plotter.XYs, len(curve.X))
		for k := range curve.X {
			pts[k] = plotter.XY{X: curve.X[k], Y: curve.Y[k]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create density curve: %w", err)
		}
		line.Color = s.Primary
		if r.Group != "" {
			line.Color = s.SeriesColor(i)
		}
		line.Width = vg.Points(2)
		p.Add(line)
		if names[i] != "" {
			p.Legend.Add(names[i], line)
		}
	}
	p.Add(plotter.NewGrid())
	return &figure{main: p}, nil
}

// densityCurve evaluates the KDE of values over the data range widened by half
// the range on each side.
func densityCurve(values []float64, n int) (*stats.Curve, error) {
	bw := stats.Bandwidth(values)
	lo, hi := stats.Support(values, 0)
	pad := (hi - lo) / 2
	if pad == 0 {
		pad = 3 * bw
	}
	return stats.KDE(values, bw, lo-pad, hi+pad, n)
}
