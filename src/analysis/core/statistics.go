package core

import "math"

// -----------------------------------------------------------------------------

func sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------

// MannKendallZ returns the Mann-Kendall trend statistic of a series, corrected
// for ties. Positive values mean later observations tend to be larger.
func MannKendallZ(data []float64) float64 {
	n := len(data)
	if n < 3 {
		return 0
	}

	s := 0.0
	for k := 0; k < n-1; k++ {
		for j := k + 1; j < n; j++ {
			s += sign(data[j] - data[k])
		}
	}

	ties := make(map[float64]int)
	for _, v := range data {
		ties[v]++
	}

	varS := float64(n*(n-1)*(2*n+5)) / 18
	if len(ties) != n {
		correction := 0
		for _, t := range ties {
			correction += t * (t - 1) * (2*t + 5)
		}
		varS = float64(n*(n-1)*(2*n+5)-correction) / 18
	}
	if varS <= 0 {
		return 0
	}

	switch {
	case s > 0:
		return (s - 1) / math.Sqrt(varS)
	case s < 0:
		return (s + 1) / math.Sqrt(varS)
	}
	return 0
}

// -----------------------------------------------------------------------------

// AllFinite reports whether no value is NaN or infinite.
func AllFinite(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
