package renderer

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/stats"
)

// corrGrid exposes a square matrix as a heat map grid with row 0 at the top.
type corrGrid struct {
	m [][]float64
}

func (g corrGrid) Dims() (c, r int)   { return len(g.m), len(g.m) }
func (g corrGrid) Z(c, r int) float64 { return g.m[len(g.m)-1-r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// CorrelationMatrix returns the names of the numeric columns of t and their
// pairwise Pearson correlations.
func CorrelationMatrix(t *dataset.Table) ([]string, [][]float64, error) {
	names := t.NumericColumns()
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("%w: no numeric columns", ErrNoData)
	}
	cols := make([][]float64, len(names))
	for i, name := range names {
		values, err := t.Numeric(name)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = values
	}
	return names, stats.CorrelationMatrix(cols), nil
}

func heatmapChart(_ chart.Heatmap, t *dataset.Table, s Style) (*figure, error) {
	names, m, err := CorrelationMatrix(t)
	if err != nil {
		return nil, err
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)

	grid := corrGrid{m: m}
	hm := plotter.NewHeatMap(grid, cmap.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = s.Background

	p := newPlot(s)
	p.Add(hm)

	labels, err := annotations(grid, cmap)
	if err != nil {
		return nil, err
	}
	if labels != nil {
		p.Add(labels)
	}

	p.NominalX(names...)
	p.NominalY(reversed(names)...)
	rotateTicks(&p.X, s)

	bar := newPlot(s)
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})
	bar.HideX()
	bar.Y.Padding = 0

	return &figure{main: p, colorBar: bar}, nil
}

// annotations writes every defined coefficient with two decimals in the middle
// of its cell, in a color that stays legible on the cell's fill.
func annotations(g corrGrid, cmap palette.ColorMap) (*plotter.Labels, error) {
	cols, rows := g.Dims()
	var data plotter.XYLabels
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := g.Z(c, r)
			if math.IsNaN(z) {
				continue
			}
			data.XYs = append(data.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			data.Labels = append(data.Labels, fmt.Sprintf("%.2f", z))
		}
	}
	if len(data.XYs) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, fmt.Errorf("failed to create annotations: %w", err)
	}
	for i, xy := range data.XYs {
		sty := &labels.TextStyle[i]
		sty.XAlign = text.XCenter
		sty.YAlign = text.YCenter
		z := g.Z(int(xy.X), int(xy.Y))
		if fill, err := cmap.At(z); err == nil {
			sty.Color = textColorOn(fill)
		}
	}
	return labels, nil
}
