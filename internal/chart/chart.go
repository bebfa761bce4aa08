// Package chart defines the closed set of chart types chartkit can render and the
// per-type requests that carry exactly the columns each type needs.
package chart

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChartType is returned when a chart type tag is not one of the ten
// recognized types.
var ErrUnknownChartType = errors.New("unknown chart type")

// Type is a chart type tag.
type Type string

const (
	TypeBoxplot   Type = "boxplot"
	TypeScatter   Type = "scatter"
	TypeLine      Type = "line"
	TypeBar       Type = "bar"
	TypeHistogram Type = "histogram"
	TypeViolin    Type = "violin"
	TypeDensity   Type = "density"
	TypeHeatmap   Type = "heatmap"
	TypeRidgeline Type = "ridgeline"
	TypePie       Type = "pie"
)

// Types lists every chart type in display order.
var Types = []Type{
	TypeBoxplot,
	TypeScatter,
	TypeLine,
	TypeBar,
	TypeHistogram,
	TypeViolin,
	TypeDensity,
	TypeHeatmap,
	TypeRidgeline,
	TypePie,
}

// ParseType matches tag exactly (case-sensitive) against the known chart types.
func ParseType(tag string) (Type, error) {
	for _, t := range Types {
		if string(t) == tag {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownChartType, tag)
}

// TypeNames returns the chart type tags as strings.
func TypeNames() []string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return names
}

// DefaultTitle returns the title used when none is configured,
// e.g. "Boxplot Chart".
func (t Type) DefaultTitle() string {
	s := string(t)
	if s == "" {
		return "Chart"
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:]) + " Chart"
}
