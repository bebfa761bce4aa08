package renderer

import (
	"image/color"
	"math"

	ggpalette "github.com/aclements/go-gg/palette"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
)

// Style is the fixed look shared by every chart type. The zero value is not
// usable; start from DefaultStyle.
type Style struct {
	// Primary fills single-series charts.
	Primary color.Color
	// HistogramEdge outlines histogram bars.
	HistogramEdge color.Color
	// Categorical colors boxes and violins, sampled evenly per category.
	Categorical ggpalette.Continuous
	// Series colors grouped lines, points, bars and curves in order.
	Series     []color.Color
	Background color.Color

	Typeface  font.Typeface
	Variant   font.Variant
	TitleSize vg.Length

	Width, Height vg.Length
	DPI           int

	// TickRotation is applied to the labels of categorical axes, in radians.
	TickRotation  float64
	HistogramBins int
	// RidgelineBins is the number of x intervals used by an ungrouped ridgeline.
	RidgelineBins int
	DensityPoints int
	ViolinPoints  int
	ColorBarWidth vg.Length
}

// viridis stops, evenly spaced on [0, 1].
var viridis = ggpalette.RGBGradient{Colors: []color.RGBA{
	mustHex("#440154"),
	mustHex("#482878"),
	mustHex("#3e4989"),
	mustHex("#31688e"),
	mustHex("#26828e"),
	mustHex("#1f9e89"),
	mustHex("#35b779"),
	mustHex("#6ece58"),
	mustHex("#b5de2b"),
	mustHex("#fde725"),
}}

var tab10 = []color.Color{
	mustHex("#1f77b4"),
	mustHex("#ff7f0e"),
	mustHex("#2ca02c"),
	mustHex("#d62728"),
	mustHex("#9467bd"),
	mustHex("#8c564b"),
	mustHex("#e377c2"),
	mustHex("#7f7f7f"),
	mustHex("#bcbd22"),
	mustHex("#17becf"),
}

// DefaultStyle returns the standard chart style: a 10 × 6 inch figure at
// 300 DPI with a bold 16pt title.
func DefaultStyle() Style {
	return Style{
		Primary:       mustHex("#667eea"),
		HistogramEdge: mustHex("#f093fb"),
		Categorical:   viridis,
		Series:        tab10,
		Background:    color.White,
		Typeface:      "Liberation",
		Variant:       "Sans",
		TitleSize:     vg.Points(16),
		Width:         10 * vg.Inch,
		Height:        6 * vg.Inch,
		DPI:           300,
		TickRotation:  math.Pi / 4,
		HistogramBins: 30,
		RidgelineBins: 5,
		DensityPoints: 1000,
		ViolinPoints:  100,
		ColorBarWidth: 1.2 * vg.Inch,
	}
}

// SeriesColor returns the color of the i-th series, cycling.
func (s Style) SeriesColor(i int) color.Color {
	return s.Series[i%len(s.Series)]
}

// CategoryColors samples n colors from the categorical palette, leaving out
// both ends of the gradient.
func (s Style) CategoryColors(n int) []color.Color {
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = s.Categorical.Map(float64(i+1) / float64(n+1))
	}
	return colors
}

// GradientColors samples n colors from the categorical palette end to end.
func (s Style) GradientColors(n int) []color.Color {
	colors := make([]color.Color, n)
	for i := range colors {
		x := 0.0
		if n > 1 {
			x = float64(i) / float64(n-1)
		}
		colors[i] = s.Categorical.Map(x)
	}
	return colors
}

// bandWidth is the drawn width of one of n evenly spaced category slots.
func (s Style) bandWidth(n int) vg.Length {
	if n < 1 {
		n = 1
	}
	w := s.Width * 0.75 / vg.Length(n) * 0.8
	if w > 1.5*vg.Inch {
		w = 1.5 * vg.Inch
	}
	return w
}
