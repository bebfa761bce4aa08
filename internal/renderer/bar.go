package renderer

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/stats"
)

func barChart(r chart.Bar, t *dataset.Table, s Style) (*figure, error) {
	ys, err := t.Numeric(r.Y)
	if err != nil {
		return nil, err
	}
	xcat, err := t.Categorical(r.X)
	if err != nil {
		return nil, err
	}
	xcat = xcat.Sorted()
	if len(xcat.Levels) == 0 {
		return nil, fmt.Errorf("%w: column %q has no values", ErrNoData, r.X)
	}

	p := newPlot(s)
	p.X.Label.Text = r.X
	p.Y.Label.Text = r.Y
	width := s.bandWidth(len(xcat.Levels))

	if r.Group == "" {
		sums := stats.SumBy(xcat.Codes, len(xcat.Levels), ys)
		bars, err := plotter.NewBarChart(plotter.Values(sums), width)
		if err != nil {
			return nil, fmt.Errorf("failed to create bars: %w", err)
		}
		bars.Color = s.Primary
		bars.LineStyle.Width = 0
		p.Add(bars)
	} else {
		gcat, err := t.Categorical(r.Group)
		if err != nil {
			return nil, err
		}
		gcat = gcat.Sorted()
		pivot := stats.Pivot(xcat.Codes, len(xcat.Levels), gcat.Codes, len(gcat.Levels), ys)

		legendTitle(p, r.Group)
		n := len(gcat.Levels)
		barWidth := width / vg.Length(n)
		drawn := 0
		for j, level := range gcat.Levels {
			sums := pivot.Column(j)
			for k, run := range presentRuns(pivot, j) {
				bars, err := plotter.NewBarChart(plotter.Values(sums[run[0]:run[1]]), barWidth)
				if err != nil {
					return nil, fmt.Errorf("failed to create bars for %s: %w", level, err)
				}
				bars.XMin = float64(run[0])
				bars.Color = s.SeriesColor(j)
				bars.LineStyle.Width = 0
				bars.Offset = barWidth * vg.Length(float64(j)-float64(n-1)/2)
				p.Add(bars)
				if k == 0 {
					p.Legend.Add(level, bars)
				}
				drawn++
			}
		}
		if drawn == 0 {
			return nil, fmt.Errorf("%w: no %q values for any %q", ErrNoData, r.Y, r.Group)
		}
	}

	p.NominalX(xcat.Levels...)
	rotateTicks(&p.X, s)
	return &figure{main: p}, nil
}

// presentRuns returns the [start, end) row ranges of column c that hold at
// least one value, so absent cells get no bar.
func presentRuns(p *stats.PivotTable, c int) [][2]int {
	var runs [][2]int
	start := -1
	for r := 0; r <= p.Rows; r++ {
		present := r < p.Rows && p.Present[r][c]
		switch {
		case present && start < 0:
			start = r
		case !present && start >= 0:
			runs = append(runs, [2]int{start, r})
			start = -1
		}
	}
	return runs
}

func histogramChart(r chart.Histogram, t *dataset.Table, s Style) (*figure, error) {
	xs, err := t.Numeric(r.X)
	if err != nil {
		return nil, err
	}
	bins, err := stats.Histogram(xs, s.HistogramBins)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q: %v", ErrNoData, r.X, err)
	}

	h := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(bins)),
		Width:     bins[0].Max - bins[0].Min,
		FillColor: withAlpha(s.Primary, 0.7),
	}
	h.LineStyle.Color = s.HistogramEdge
	h.LineStyle.Width = vg.Points(1)
	for i, b := range bins {
		h.Bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
	}

	p := newPlot(s)
	p.X.Label.Text = r.X
	p.Y.Label.Text = "Frequency"
	p.Add(h)
	return &figure{main: p}, nil
}
