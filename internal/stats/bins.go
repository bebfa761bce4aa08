package stats

import (
	"fmt"
	"math"
	"strconv"
)

// Bin is one histogram bin covering [Min, Max).
type Bin struct {
	Min, Max float64
	Count    int
}

// Histogram splits the finite values into n equal-width bins spanning
// [min, max]; the last bin also holds max. A constant sample is centered in
// [v-0.5, v+0.5].
func Histogram(values []float64, n int) ([]Bin, error) {
	vs := Finite(values)
	if len(vs) == 0 {
		return nil, ErrNoValues
	}
	if n < 1 {
		return nil, fmt.Errorf("bin count must be positive, got %d", n)
	}

	lo, hi := bounds(vs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(n)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Min = lo + float64(i)*width
		bins[i].Max = lo + float64(i+1)*width
	}
	bins[n-1].Max = hi

	for _, v := range vs {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}
	return bins, nil
}

// Binned assigns every value to one of a fixed set of interval labels.
type Binned struct {
	// Labels are interval labels like "(1.2, 3.4]" in ascending order.
	Labels []string
	// Edges has len(Labels)+1 entries.
	Edges []float64
	// Codes holds one label index per input value, or -1 for NaN.
	Codes []int
}

// Cut discretizes values into n equal-width, right-closed intervals. The lowest
// edge is moved down by 0.1% of the range so the minimum falls inside the first
// interval.
func Cut(values []float64, n int) (*Binned, error) {
	vs := Finite(values)
	if len(vs) == 0 {
		return nil, ErrNoValues
	}
	if n < 1 {
		return nil, fmt.Errorf("bin count must be positive, got %d", n)
	}

	lo, hi := bounds(vs)
	if lo == hi {
		adj := 0.001 * math.Abs(lo)
		if lo == 0 {
			adj = 0.001
		}
		lo, hi = lo-adj, hi+adj
	}

	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	edges[n] = hi
	edges[0] -= (hi - lo) * 0.001

	b := &Binned{Edges: edges, Labels: make([]string, n), Codes: make([]int, len(values))}
	for i := 0; i < n; i++ {
		b.Labels[i] = fmt.Sprintf("(%s, %s]", formatEdge(edges[i]), formatEdge(edges[i+1]))
	}
	for i, v := range values {
		b.Codes[i] = -1
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		for j := 0; j < n; j++ {
			if v > edges[j] && v <= edges[j+1] {
				b.Codes[i] = j
				break
			}
		}
	}
	return b, nil
}

// formatEdge rounds to three decimals, or to three significant digits for
// values below one in magnitude.
func formatEdge(x float64) string {
	digits := 3
	if whole, frac := math.Modf(x); whole == 0 && frac != 0 {
		digits = int(-math.Floor(math.Log10(math.Abs(frac)))) - 1 + 3
	}
	pow := math.Pow(10, float64(digits))
	return strconv.FormatFloat(math.Round(x*pow)/pow, 'f', -1, 64)
}
