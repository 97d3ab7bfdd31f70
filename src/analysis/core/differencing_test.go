package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifference(t *testing.T) {
	diffs, tails := Difference([]float64{1, 4, 9, 16, 25}, 1)
	assert.Equal(t, []float64{3, 5, 7, 9}, diffs)
	assert.Equal(t, []float64{25}, tails)

	diffs, tails = Difference([]float64{1, 4, 9, 16, 25}, 2)
	assert.Equal(t, []float64{2, 2, 2}, diffs)
	assert.Equal(t, []float64{25, 9}, tails)

	data := []float64{1, 2, 3}
	diffs, tails = Difference(data, 0)
	assert.Equal(t, data, diffs)
	assert.Empty(t, tails)
}

func TestIntegrateContinuesSeries(t *testing.T) {
	// Squares continue with second differences of 2
	_, tails := Difference([]float64{1, 4, 9, 16, 25}, 2)
	assert.Equal(t, []float64{36, 49, 64}, Integrate([]float64{2, 2, 2}, tails))

	_, tails = Difference([]float64{10, 12, 11}, 1)
	assert.Equal(t, []float64{14, 13}, Integrate([]float64{3, -1}, tails))

	assert.Equal(t, []float64{1, 2}, Integrate([]float64{1, 2}, nil))
}
