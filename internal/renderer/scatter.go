package renderer

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
)

// series is one named subset of rows; rows is nil for the whole table.
type series struct {
	name string
	rows []int
}

// seriesFor splits the table by the levels of group, or returns a single
// unnamed series when group is empty.
func seriesFor(t *dataset.Table, group string) ([]series, error) {
	if group == "" {
		return []series{{}}, nil
	}
	cat, err := t.Categorical(group)
	if err != nil {
		return nil, err
	}
	rows := cat.Rows()
	out := make([]series, len(cat.Levels))
	for i, level := range cat.Levels {
		out[i] = series{name: level, rows: rows[i]}
	}
	return out, nil
}

// xyColumns returns the plotted x and y values. A categorical x column is
// mapped to the first-seen position of each row's level and its levels are
// returned so the caller can label the axis.
func xyColumns(t *dataset.Table, x, y string) (xs, ys []float64, levels []string, err error) {
	kind, err := t.Kind(x)
	if err != nil {
		return nil, nil, nil, err
	}
	if kind == dataset.ColumnCategorical {
		cat, err := t.Categorical(x)
		if err != nil {
			return nil, nil, nil, err
		}
		xs = make([]float64, len(cat.Codes))
		for i, code := range cat.Codes {
			if code < 0 {
				xs[i] = math.NaN()
			} else {
				xs[i] = float64(code)
			}
		}
		levels = cat.Levels
	} else if xs, err = t.Numeric(x); err != nil {
		return nil, nil, nil, err
	}

	ys, err = t.Numeric(y)
	if err != nil {
		return nil, nil, nil, err
	}
	return xs, ys, levels, nil
}

// labelX puts the categorical levels on the x axis, if any.
func labelX(p *plot.Plot, levels []string, s Style) {
	if levels == nil {
		return
	}
	p.NominalX(levels...)
	rotateTicks(&p.X, s)
}

func scatterChart(r chart.Scatter, t *dataset.Table, s Style) (*figure, error) {
	xs, ys, levels, err := xyColumns(t, r.X, r.Y)
	if err != nil {
		return nil, err
	}
	groups, err := seriesFor(t, r.Group)
	if err != nil {
		return nil, err
	}

	p := newPlot(s)
	p.X.Label.Text = r.X
	p.Y.Label.Text = r.Y
	legendTitle(p, r.Group)

	drawn := 0
	for i, g := range groups {
		pts := pointsAt(xs, ys, g.rows)
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter: %w", err)
		}
		c := s.Primary
		if r.Group != "" {
			c = s.SeriesColor(i)
		}
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  withAlpha(c, 0.7),
			Radius: vg.Points(3.5),
			Shape:  draw.CircleGlyph{},
		}
		p.Add(sc)
		if g.name != "" {
			p.Legend.Add(g.name, sc)
		}
		drawn++
	}
	if drawn == 0 {
		return nil, fmt.Errorf("%w: no rows with both %q and %q", ErrNoData, r.X, r.Y)
	}
	p.Add(plotter.NewGrid())
	labelX(p, levels, s)
	return &figure{main: p}, nil
}

func lineChart(r chart.Line, t *dataset.Table, s Style) (*figure, error) {
	xs, ys, levels, err := xyColumns(t, r.X, r.Y)
	if err != nil {
		return nil, err
	}
	groups, err := seriesFor(t, r.Group)
	if err != nil {
		return nil, err
	}

	p := newPlot(s)
	p.X.Label.Text = r.X
	p.Y.Label.Text = r.Y
	legendTitle(p, r.Group)

	drawn := 0
	for i, g := range groups {
		pts := pointsAt(xs, ys, g.rows)
		if len(pts) == 0 {
			continue
		}
		c := s.Primary
		if r.Group != "" {
			c = s.SeriesColor(i)
		}
		thumbs, err := addLine(p, pts, c)
		if err != nil {
			return nil, err
		}
		if g.name != "" {
			p.Legend.Add(g.name, thumbs...)
		}
		drawn++
	}
	if drawn == 0 {
		return nil, fmt.Errorf("%w: no rows with both %q and %q", ErrNoData, r.X, r.Y)
	}
	p.Add(plotter.NewGrid())
	labelX(p, levels, s)
	return &figure{main: p}, nil
}

// addLine connects pts in order and marks every point.
func addLine(p *plot.Plot, pts plotter.XYs, c color.Color) ([]plot.Thumbnailer, error) {
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %w", err)
	}
	line.Color = c
	line.Width = vg.Points(2)
	points.GlyphStyle = draw.GlyphStyle{
		Color:  c,
		Radius: vg.Points(3),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(line, points)
	return []plot.Thumbnailer{line, points}, nil
}
