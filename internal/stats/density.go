package stats

import (
	"math"
	"sort"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// Curve is a density estimate sampled on an evenly spaced grid.
type Curve struct {
	X, Y      []float64
	Bandwidth float64
}

// Max returns the largest density in the curve.
func (c *Curve) Max() float64 {
	m := 0.0
	for _, y := range c.Y {
		m = math.Max(m, y)
	}
	return m
}

// Bandwidth returns the Gaussian kernel bandwidth for the finite values using
// Scott's rule. Samples without spread fall back to a bandwidth derived from
// their magnitude so a single observation still yields a narrow peak.
func Bandwidth(values []float64) float64 {
	vs := Finite(values)
	if len(vs) == 0 {
		return math.NaN()
	}
	bw := mstats.BandwidthScott(mstats.Sample{Xs: vs})
	if bw > 0 && !math.IsInf(bw, 0) {
		return bw
	}
	if m := math.Abs(vs[0]); m > 0 {
		return 0.1 * m
	}
	return 0.1
}

// KDE estimates the density of the finite values with a Gaussian kernel and
// samples it at n points on [lo, hi].
func KDE(values []float64, bandwidth, lo, hi float64, n int) (*Curve, error) {
	vs := Finite(values)
	if len(vs) == 0 {
		return nil, ErrNoValues
	}
	if math.IsNaN(bandwidth) || bandwidth <= 0 {
		bandwidth = Bandwidth(vs)
	}

	kde := mstats.KDE{
		Sample:    mstats.Sample{Xs: vs},
		Kernel:    mstats.GaussianKernel,
		Bandwidth: bandwidth,
	}
	xs := vec.Linspace(lo, hi, n)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = kde.PDF(x)
	}
	return &Curve{X: xs, Y: ys, Bandwidth: bandwidth}, nil
}

// Support returns the data range of the finite values widened by pad on both sides.
func Support(values []float64, pad float64) (lo, hi float64) {
	lo, hi = bounds(Finite(values))
	return lo - pad, hi + pad
}

// Quartiles returns the 25th, 50th and 75th percentiles of the finite values
// using linear interpolation between order statistics.
func Quartiles(values []float64) (q1, median, q3 float64) {
	vs := Finite(values)
	if len(vs) == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	s := mstats.Sample{Xs: sorted, Sorted: true}
	return s.Quantile(0.25), s.Quantile(0.5), s.Quantile(0.75)
}
