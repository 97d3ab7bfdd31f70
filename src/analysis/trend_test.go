package analysis

import (
	"math"
	"testing"
	"time"

	"sales-forecast/src/models"

	"github.com/stretchr/testify/assert"
)

func seriesOf(values []float64) models.MDailySeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.MSeriesPoint, len(values))
	for i, v := range values {
		points[i] = models.MSeriesPoint{Date: start.AddDate(0, 0, i).Format(DateLayout), Value: v}
	}
	return models.MDailySeries{Line: "bebidas", Metric: models.MetricQuantity, Points: points}
}

func TestDetectTrendIncreasingWithWeeklyPattern(t *testing.T) {
	values := make([]float64, 35)
	for i := range values {
		values[i] = 20 + 0.8*float64(i) + 4*math.Sin(2*math.Pi*float64(i)/7)
	}

	trend := DetectTrend(seriesOf(values), 7)
	assert.Equal(t, TrendIncreasing, trend.Direction)
	assert.Greater(t, trend.Slope, 0.0)
	assert.Greater(t, trend.Z, 1.96)
	assert.Equal(t, "bebidas", trend.Line)
}

func TestDetectTrendDecreasingShortSeries(t *testing.T) {
	values := []float64{30, 28, 27, 25, 22, 21, 19, 16, 15, 12}

	trend := DetectTrend(seriesOf(values), 7)
	assert.Equal(t, TrendDecreasing, trend.Direction)
	assert.Less(t, trend.Slope, 0.0)
}

func TestDetectTrendNone(t *testing.T) {
	assert.Equal(t, TrendNone, DetectTrend(seriesOf([]float64{5, 5, 5, 5, 5}), 7).Direction)
	assert.Equal(t, TrendNone, DetectTrend(seriesOf([]float64{1, 2}), 7).Direction)
	assert.Equal(t, TrendNone, DetectTrend(seriesOf([]float64{3, 9, 2, 8, 3, 9, 2, 8}), 7).Direction)
}
