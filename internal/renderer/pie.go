package renderer

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/stats"
)

// Slice is one wedge of a pie chart.
type Slice struct {
	Label   string
	Count   int
	Percent float64
}

// PieSlices counts the distinct values of column x, largest first. Ties keep
// the order in which values first appear; null cells are not counted.
func PieSlices(t *dataset.Table, x string) ([]Slice, error) {
	cat, err := t.Categorical(x)
	if err != nil {
		return nil, err
	}
	counts := stats.ValueCounts(cat.Codes, len(cat.Levels))
	pct := stats.Proportions(counts)

	slices := make([]Slice, len(counts))
	for i, c := range counts {
		slices[i] = Slice{Label: cat.Levels[c.Level], Count: c.N, Percent: pct[i]}
	}
	return slices, nil
}

// PercentLabel formats the slice share with one decimal, e.g. "66.7%".
func (sl Slice) PercentLabel() string {
	return fmt.Sprintf("%.1f%%", sl.Percent)
}

// pie draws wedges counterclockwise from startAngle inside a circle that keeps
// an equal aspect ratio regardless of the canvas shape.
type pie struct {
	slices     []Slice
	colors     []color.Color
	startAngle float64
	edge       draw.LineStyle
	labelStyle text.Style
}

// Plot implements the plot.Plotter interface.
func (pc *pie) Plot(c draw.Canvas, _ *plot.Plot) {
	center := c.Center()
	radius := 0.8 * vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y))) / 2
	at := func(angle float64, r vg.Length) vg.Point {
		return vg.Point{
			X: center.X + r*vg.Length(math.Cos(angle)),
			Y: center.Y + r*vg.Length(math.Sin(angle)),
		}
	}

	angle := pc.startAngle
	for i, sl := range pc.slices {
		sweep := sl.Percent / 100 * 2 * math.Pi
		steps := int(math.Ceil(sweep/(math.Pi/180))) + 1

		wedge := []vg.Point{center}
		for k := 0; k <= steps; k++ {
			wedge = append(wedge, at(angle+sweep*float64(k)/float64(steps), radius))
		}
		wedge = append(wedge, center)
		c.FillPolygon(pc.colors[i%len(pc.colors)], wedge)
		c.StrokeLines(pc.edge, wedge)

		mid := angle + sweep/2
		label := pc.labelStyle
		label.XAlign = text.XLeft
		if math.Cos(mid) < 0 {
			label.XAlign = text.XRight
		}
		c.FillText(label, at(mid, radius*1.1), sl.Label)

		pctStyle := pc.labelStyle
		pctStyle.XAlign = text.XCenter
		c.FillText(pctStyle, at(mid, radius*0.6), sl.PercentLabel())

		angle += sweep
	}
}

// DataRange implements the plot.DataRanger interface.
func (pc *pie) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

func pieChart(r chart.Pie, t *dataset.Table, s Style) (*figure, error) {
	slices, err := PieSlices(t, r.X)
	if err != nil {
		return nil, err
	}
	if len(slices) == 0 {
		return nil, fmt.Errorf("%w: column %q has no values", ErrNoData, r.X)
	}

	p := newPlot(s)
	label := p.X.Tick.Label
	label.Font.Size = vg.Points(11)
	label.Rotation = 0
	label.YAlign = text.YCenter

	p.Add(&pie{
		slices:     slices,
		colors:     s.GradientColors(len(slices)),
		startAngle: math.Pi / 2,
		edge:       draw.LineStyle{Color: color.White, Width: vg.Points(1)},
		labelStyle: label,
	})
	p.HideAxes()
	return &figure{main: p}, nil
}
