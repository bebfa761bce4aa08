package renderer

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/stats"
)

// violinCut is how many bandwidths each violin extends past its extreme values.
const violinCut = 2

// violin is one mirrored density outline with an inner box.
type violin struct {
	pos   float64
	curve *stats.Curve
	fill  color.Color

	q1, median, q3 float64
	lo, hi         float64 // whisker ends
}

// violins draws a row of violins at integer category positions. Widths are
// scaled by area: the densest point across all violins spans the full slot.
type violins struct {
	items      []violin
	slots      int
	width      float64 // fraction of a slot
	horizontal bool
	outline    draw.LineStyle
	maxDensity float64
}

func newViolins(groups [][]float64, colors []color.Color, s Style, horizontal bool) (*violins, error) {
	v := &violins{
		slots:      len(groups),
		width:      0.8,
		horizontal: horizontal,
		outline:    draw.LineStyle{Color: mustHex("#3f3f3f"), Width: vg.Points(1)},
	}
	for i, values := range groups {
		if len(values) == 0 {
			continue
		}
		bw := stats.Bandwidth(values)
		lo, hi := stats.Support(values, violinCut*bw)
		curve, err := stats.KDE(values, bw, lo, hi, s.ViolinPoints)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate density: %w", err)
		}
		q1, med, q3 := stats.Quartiles(values)
		wlo, whi := whiskers(values, q1, q3)

		pos := float64(i)
		if horizontal {
			pos = float64(len(groups) - 1 - i)
		}
		v.items = append(v.items, violin{
			pos: pos, curve: curve, fill: colors[i],
			q1: q1, median: med, q3: q3, lo: wlo, hi: whi,
		})
		v.maxDensity = math.Max(v.maxDensity, curve.Max())
	}
	if len(v.items) == 0 {
		return nil, ErrNoData
	}
	return v, nil
}

// whiskers returns the most extreme values within 1.5 IQR of the box.
func whiskers(values []float64, q1, q3 float64) (lo, hi float64) {
	iqr := q3 - q1
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v >= q1-1.5*iqr {
			lo = math.Min(lo, v)
		}
		if v <= q3+1.5*iqr {
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// Plot implements the plot.Plotter interface.
func (v *violins) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	point := func(pos, value float64) vg.Point {
		if v.horizontal {
			return vg.Point{X: trX(value), Y: trY(pos)}
		}
		return vg.Point{X: trX(pos), Y: trY(value)}
	}

	for _, item := range v.items {
		n := len(item.curve.X)
		outline := make([]vg.Point, 0, 2*n+1)
		for k := 0; k < n; k++ {
			half := v.halfWidth(item.curve.Y[k])
			outline = append(outline, point(item.pos+half, item.curve.X[k]))
		}
		for k := n - 1; k >= 0; k-- {
			half := v.halfWidth(item.curve.Y[k])
			outline = append(outline, point(item.pos-half, item.curve.X[k]))
		}
		outline = append(outline, outline[0])

		c.FillPolygon(item.fill, c.ClipPolygonXY(outline))
		c.StrokeLines(v.outline, c.ClipLinesXY(outline)...)

		lo, hi := point(item.pos, item.lo), point(item.pos, item.hi)
		c.StrokeLine2(v.whisker(), lo.X, lo.Y, hi.X, hi.Y)
		q1, q3 := point(item.pos, item.q1), point(item.pos, item.q3)
		c.StrokeLine2(v.box(), q1.X, q1.Y, q3.X, q3.Y)
		c.DrawGlyph(draw.GlyphStyle{Color: color.White, Radius: vg.Points(2), Shape: draw.CircleGlyph{}},
			point(item.pos, item.median))
	}
}

func (v *violins) whisker() draw.LineStyle {
	return draw.LineStyle{Color: v.outline.Color, Width: vg.Points(1.5)}
}

func (v *violins) box() draw.LineStyle {
	return draw.LineStyle{Color: v.outline.Color, Width: vg.Points(5)}
}

func (v *violins) halfWidth(density float64) float64 {
	if v.maxDensity == 0 {
		return 0
	}
	return density / v.maxDensity * v.width / 2
}

// DataRange implements the plot.DataRanger interface.
func (v *violins) DataRange() (xmin, xmax, ymin, ymax float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, item := range v.items {
		lo = math.Min(lo, item.curve.X[0])
		hi = math.Max(hi, item.curve.X[len(item.curve.X)-1])
	}
	cmin, cmax := -0.5, float64(v.slots)-0.5
	if v.horizontal {
		return lo, hi, cmin, cmax
	}
	return cmin, cmax, lo, hi
}

// Thumbnail implements the plot.Thumbnailer interface.
func (v *violins) Thumbnail(c *draw.Canvas) {
	if len(v.items) == 0 {
		return
	}
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(v.items[0].fill, c.ClipPolygonY(pts))
}

func violinChart(r chart.Violin, t *dataset.Table, s Style) (*figure, error) {
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
		v, err := newViolins([][]float64{values}, []color.Color{s.Primary}, s, false)
		if err != nil {
			return nil, err
		}
		p.Add(v)
		p.HideX()
		return &figure{main: p}, nil
	}

	cat, groups, err := splitValues(t, category, ys)
	if err != nil {
		return nil, err
	}
	v, err := newViolins(groups, s.CategoryColors(len(groups)), s, false)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q has no values", err, r.Y)
	}
	p.Add(v)
	p.NominalX(cat.Levels...)
	p.X.Label.Text = category
	rotateTicks(&p.X, s)
	return &figure{main: p}, nil
}

// ridgelineChart draws horizontal violins of Y, one row per group level, or one
// row per equal-width interval of X when no group is set.
func ridgelineChart(r chart.Ridgeline, t *dataset.Table, s Style) (*figure, error) {
	ys, err := t.Numeric(r.Y)
	if err != nil {
		return nil, err
	}

	var (
		labels []string
		groups [][]float64
		axis   string
	)
	if r.Group != "" {
		labels, groups, err = ridgesByGroup(t, r.Group, ys)
		axis = r.Group
	} else {
		labels, groups, err = ridgesByBins(t, r.X, ys, s.RidgelineBins)
		axis = r.X
	}
	if err != nil {
		return nil, err
	}

	v, err := newViolins(groups, s.CategoryColors(len(groups)), s, true)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q has no values", err, r.Y)
	}

	p := newPlot(s)
	p.Add(v)
	p.X.Label.Text = r.Y
	p.Y.Label.Text = axis
	p.NominalY(reversed(labels)...)
	return &figure{main: p}, nil
}

func ridgesByGroup(t *dataset.Table, group string, ys []float64) ([]string, [][]float64, error) {
	cat, groups, err := splitValues(t, group, ys)
	if err != nil {
		return nil, nil, err
	}
	return cat.Levels, groups, nil
}

func ridgesByBins(t *dataset.Table, x string, ys []float64, bins int) ([]string, [][]float64, error) {
	xs, err := t.Numeric(x)
	if err != nil {
		return nil, nil, err
	}
	binned, err := stats.Cut(xs, bins)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: column %q: %v", ErrNoData, x, err)
	}
	return binned.Labels, splitByCodes(binned.Codes, len(binned.Labels), ys), nil
}
