package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix returns the Pearson correlation of every pair of columns,
// using only the rows where both values are present (not NaN). The matrix is
// symmetric. Pairs with fewer than two shared rows or zero variance are NaN.
func CorrelationMatrix(columns [][]float64) [][]float64 {
	n := len(columns)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pairwise(columns[i], columns[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m[i][j], m[j][i] = r, r
		}
	}
	return m
}

func pairwise(a, b []float64) float64 {
	var xs, ys []float64
	for k := range a {
		if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
			continue
		}
		xs = append(xs, a[k])
		ys = append(ys, b[k])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	return math.Max(-1, math.Min(1, r))
}
