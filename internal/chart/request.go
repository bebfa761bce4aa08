package chart

import "fmt"

// Request is one chart type together with the columns it plots. The concrete
// variants are Boxplot, Scatter, Line, Bar, Histogram, Violin, Density, Heatmap,
// Ridgeline and Pie.
type Request interface {
	ChartType() Type
	// Columns returns every column name the request references.
	Columns() []string
}

// FieldError reports a parameter that the chart type requires but was not set.
type FieldError struct {
	ChartType Type
	Field     string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s chart requires %s", e.ChartType, e.Field)
}

// Boxplot draws one box of Y, or one box per category when Group is set.
type Boxplot struct {
	X, Y, Group string
}

// Scatter draws Y against X, one series per Group value.
type Scatter struct {
	X, Y, Group string
}

// Line connects Y against X in row order, one line per Group value.
type Line struct {
	X, Y, Group string
}

// Bar sums Y by X, clustered by Group when set.
type Bar struct {
	X, Y, Group string
}

// Histogram counts X in fixed-width bins.
type Histogram struct {
	X string
}

// Violin draws the density of Y, one violin per category when Group is set.
type Violin struct {
	X, Y, Group string
}

// Density draws a kernel density curve of X, one curve per Group value.
type Density struct {
	X, Group string
}

// Heatmap draws the correlation matrix of every numeric column.
type Heatmap struct{}

// Ridgeline draws horizontal violins of Y, either across Group or across
// equal-width bins of X.
type Ridgeline struct {
	X, Y, Group string
}

// Pie draws the share of each distinct X value.
type Pie struct {
	X string
}

func (Boxplot) ChartType() Type   { return TypeBoxplot }
func (Scatter) ChartType() Type   { return TypeScatter }
func (Line) ChartType() Type      { return TypeLine }
func (Bar) ChartType() Type       { return TypeBar }
func (Histogram) ChartType() Type { return TypeHistogram }
func (Violin) ChartType() Type    { return TypeViolin }
func (Density) ChartType() Type   { return TypeDensity }
func (Heatmap) ChartType() Type   { return TypeHeatmap }
func (Ridgeline) ChartType() Type { return TypeRidgeline }
func (Pie) ChartType() Type       { return TypePie }

func (r Boxplot) Columns() []string   { return nonEmpty(r.X, r.Y, r.Group) }
func (r Scatter) Columns() []string   { return nonEmpty(r.X, r.Y, r.Group) }
func (r Line) Columns() []string      { return nonEmpty(r.X, r.Y, r.Group) }
func (r Bar) Columns() []string       { return nonEmpty(r.X, r.Y, r.Group) }
func (r Histogram) Columns() []string { return nonEmpty(r.X) }
func (r Violin) Columns() []string    { return nonEmpty(r.X, r.Y, r.Group) }
func (r Density) Columns() []string   { return nonEmpty(r.X, r.Group) }
func (Heatmap) Columns() []string     { return nil }
func (r Ridgeline) Columns() []string { return nonEmpty(r.X, r.Y, r.Group) }
func (r Pie) Columns() []string       { return nonEmpty(r.X) }

// CategoryColumn returns the column whose values split a boxplot into boxes:
// X when set, else Group. It is empty when the boxplot is ungrouped.
func (r Boxplot) CategoryColumn() string { return categoryColumn(r.X, r.Group) }

// CategoryColumn returns the column whose values split the violins, chosen the
// same way as for Boxplot.
func (r Violin) CategoryColumn() string { return categoryColumn(r.X, r.Group) }

func categoryColumn(x, group string) string {
	if group == "" {
		return ""
	}
	if x != "" {
		return x
	}
	return group
}

// NewRequest builds the request variant for t, checking the columns t requires.
func NewRequest(t Type, x, y, group string) (Request, error) {
	need := func(field, value string) error {
		if value == "" {
			return &FieldError{ChartType: t, Field: field}
		}
		return nil
	}

	switch t {
	case TypeBoxplot:
		if err := need("yColumn", y); err != nil {
			return nil, err
		}
		return Boxplot{X: x, Y: y, Group: group}, nil
	case TypeScatter, TypeLine, TypeBar, TypeRidgeline:
		if err := need("xColumn", x); err != nil {
			return nil, err
		}
		if err := need("yColumn", y); err != nil {
			return nil, err
		}
		switch t {
		case TypeScatter:
			return Scatter{X: x, Y: y, Group: group}, nil
		case TypeLine:
			return Line{X: x, Y: y, Group: group}, nil
		case TypeBar:
			return Bar{X: x, Y: y, Group: group}, nil
		default:
			return Ridgeline{X: x, Y: y, Group: group}, nil
		}
	case TypeHistogram:
		if err := need("xColumn", x); err != nil {
			return nil, err
		}
		return Histogram{X: x}, nil
	case TypeViolin:
		if err := need("yColumn", y); err != nil {
			return nil, err
		}
		return Violin{X: x, Y: y, Group: group}, nil
	case TypeDensity:
		if err := need("xColumn", x); err != nil {
			return nil, err
		}
		return Density{X: x, Group: group}, nil
	case TypeHeatmap:
		return Heatmap{}, nil
	case TypePie:
		if err := need("xColumn", x); err != nil {
			return nil, err
		}
		return Pie{X: x}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownChartType, t)
}

func nonEmpty(names ...string) []string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
