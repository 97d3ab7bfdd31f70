package core

// -----------------------------------------------------------------------------

// Difference applies first-order differencing d times. It returns the
// differenced series and, for every level k < d, the last value of the
// level-k series, which Integrate needs to undo the transform.
func Difference(data []float64, d int) ([]float64, []float64) {
	level := make([]float64, len(data))
	copy(level, data)

	tails := make([]float64, 0, d)
	for k := 0; k < d; k++ {
		if len(level) == 0 {
			break
		}
		tails = append(tails, level[len(level)-1])

		next := make([]float64, len(level)-1)
		for i := 1; i < len(level); i++ {
			next[i-1] = level[i] - level[i-1]
		}
		level = next
	}

	return level, tails
}

// -----------------------------------------------------------------------------

// Integrate maps values continuing a differenced series back to the original
// scale, using the tails returned by Difference.
func Integrate(diffs []float64, tails []float64) []float64 {
	out := make([]float64, len(diffs))
	copy(out, diffs)

	for k := len(tails) - 1; k >= 0; k-- {
		cum := tails[k]
		for i := range out {
			cum += out[i]
			out[i] = cum
		}
	}

	return out
}
