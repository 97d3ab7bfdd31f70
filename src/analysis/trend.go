package analysis

import (
	"math"

	"sales-forecast/src/analysis/core"
	"sales-forecast/src/models"

	"github.com/chewxy/stl"
	"gonum.org/v1/gonum/stat"
)

const (
	// two-sided 5% critical value of the standard normal
	trendCriticalZ = 1.959963984540054

	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendNone       = "none"
)

// -----------------------------------------------------------------------------

// DetectTrend classifies a daily series with a Mann-Kendall test. When the
// series covers at least two seasonal periods the test runs on the STL trend
// component so that weekday effects do not mask the direction. The linear
// regression slope must agree with the test for a trend to be reported.
func DetectTrend(series models.MDailySeries, periodicity int) models.MTrend {
	result := models.MTrend{Line: series.Line, Metric: series.Metric, Direction: TrendNone}

	values := series.Values()
	n := len(values)
	if n < 3 {
		return result
	}
	if _, std := stat.PopMeanStdDev(values, nil); std == 0 {
		return result
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)
	result.Slope = slope

	tested := values
	if periodicity >= 2 && n >= 2*periodicity {
		// Decompose works in place
		work := make([]float64, n)
		copy(work, values)
		res := stl.Decompose(work, periodicity, n-1, stl.Additive(), stl.WithRobustIter(2), stl.WithIter(2))
		if len(res.Trend) == n && core.AllFinite(res.Trend) {
			tested = res.Trend
		}
	}

	z := core.MannKendallZ(tested)
	result.Z = z

	if math.Abs(z) <= trendCriticalZ {
		return result
	}
	switch {
	case z > 0 && slope > 0:
		result.Direction = TrendIncreasing
	case z < 0 && slope < 0:
		result.Direction = TrendDecreasing
	}
	return result
}
