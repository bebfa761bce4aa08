// Package stats holds the small amount of data summarization the chart types
// need before plotting: sums, pivots, counts, binning, correlation and kernel
// density estimates.
package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrNoValues is returned when a summary needs at least one non-NaN value.
var ErrNoValues = errors.New("no values")

// SumBy sums values per level. codes[i] is the level of values[i]; negative
// codes and NaN values are skipped. Levels that receive nothing sum to zero.
func SumBy(codes []int, levels int, values []float64) []float64 {
	sums := make([]float64, levels)
	for i, code := range codes {
		if code < 0 || math.IsNaN(values[i]) {
			continue
		}
		sums[code] += values[i]
	}
	return sums
}

// PivotTable is a dense rows × cols matrix of sums.
type PivotTable struct {
	Rows, Cols int
	// Sum is indexed [row][col].
	Sum [][]float64
	// Present marks cells that received at least one value.
	Present [][]bool
}

// Pivot sums values[i] into the cell (rowCodes[i], colCodes[i]). Rows with a
// negative code on either axis and NaN values are skipped.
func Pivot(rowCodes []int, rows int, colCodes []int, cols int, values []float64) *PivotTable {
	p := &PivotTable{Rows: rows, Cols: cols, Sum: make([][]float64, rows), Present: make([][]bool, rows)}
	for r := range p.Sum {
		p.Sum[r] = make([]float64, cols)
		p.Present[r] = make([]bool, cols)
	}
	for i := range values {
		r, c := rowCodes[i], colCodes[i]
		if r < 0 || c < 0 || math.IsNaN(values[i]) {
			continue
		}
		p.Sum[r][c] += values[i]
		p.Present[r][c] = true
	}
	return p
}

// Column returns the sums of one pivot column across all rows.
func (p *PivotTable) Column(c int) []float64 {
	out := make([]float64, p.Rows)
	for r := range out {
		out[r] = p.Sum[r][c]
	}
	return out
}

// Count is the number of occurrences of one level.
type Count struct {
	Level int
	N     int
}

// ValueCounts counts each level and orders the result by descending count.
// Ties keep level order.
func ValueCounts(codes []int, levels int) []Count {
	counts := make([]Count, levels)
	for i := range counts {
		counts[i].Level = i
	}
	for _, code := range codes {
		if code >= 0 {
			counts[code].N++
		}
	}
	sort.SliceStable(counts, func(a, b int) bool { return counts[a].N > counts[b].N })

	out := counts[:0]
	for _, c := range counts {
		if c.N > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Proportions returns each count as a percentage of the total.
func Proportions(counts []Count) []float64 {
	total := 0
	for _, c := range counts {
		total += c.N
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = 100 * float64(c.N) / float64(total)
	}
	return out
}

// Finite returns the values that are neither NaN nor infinite.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
