package renderer

import (
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
)

// newPlot returns an empty plot with the style's fonts, background and a bold
// title.
func newPlot(s Style) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = s.Background

	for _, sty := range []*text.Style{
		&p.Title.TextStyle,
		&p.X.Label.TextStyle,
		&p.Y.Label.TextStyle,
		&p.X.Tick.Label,
		&p.Y.Tick.Label,
		&p.Legend.TextStyle,
	} {
		sty.Font.Typeface = s.Typeface
		sty.Font.Variant = s.Variant
	}
	p.Title.TextStyle.Font.Size = s.TitleSize
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(10)
	p.Legend.Top = true
	return p
}

// rotateTicks tilts the tick labels of a categorical axis so long labels do not
// overlap.
func rotateTicks(a *plot.Axis, s Style) {
	a.Tick.Label.Rotation = s.TickRotation
	a.Tick.Label.XAlign = text.XRight
	a.Tick.Label.YAlign = text.YCenter
}

// legendTitle adds a heading entry to the legend.
func legendTitle(p *plot.Plot, title string) {
	if title != "" {
		p.Legend.Add(title)
	}
}

// splitValues groups values by the levels of column name, keeping finite
// values only. Rows whose level is null are dropped.
func splitValues(t *dataset.Table, name string, values []float64) (*dataset.Categorical, [][]float64, error) {
	cat, err := t.Categorical(name)
	if err != nil {
		return nil, nil, err
	}
	return cat, splitByCodes(cat.Codes, len(cat.Levels), values), nil
}

func splitByCodes(codes []int, levels int, values []float64) [][]float64 {
	groups := make([][]float64, levels)
	for i, code := range codes {
		if code < 0 || math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			continue
		}
		groups[code] = append(groups[code], values[i])
	}
	return groups
}

// pointsAt collects the (x, y) pairs at the given rows, skipping rows where
// either value is missing. A nil rows slice selects every row.
func pointsAt(xs, ys []float64, rows []int) plotter.XYs {
	if rows == nil {
		rows = make([]int, len(xs))
		for i := range rows {
			rows[i] = i
		}
	}
	pts := make(plotter.XYs, 0, len(rows))
	for _, i := range rows {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

func hasValues(groups [][]float64) bool {
	for _, g := range groups {
		if len(g) > 0 {
			return true
		}
	}
	return false
}

// reversed returns a reversed copy of s.
func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
