package analysis

import (
	"fmt"
	"sort"
	"time"

	"sales-forecast/src/models"
)

// DateLayout is the calendar-date key of daily series.
const DateLayout = "2006-01-02"

// -----------------------------------------------------------------------------

// BuildDailySeries sums the metric per calendar date of the record timestamps.
// Dates without records are left out rather than zero-filled.
func BuildDailySeries(line string, records []models.MTransaction, metric models.Metric) (models.MDailySeries, error) {
	value, err := metricValue(metric)
	if err != nil {
		return models.MDailySeries{}, err
	}

	days := make(map[string]float64)
	for _, rec := range records {
		days[rec.Timestamp.Format(DateLayout)] += value(rec)
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]models.MSeriesPoint, len(dates))
	for i, d := range dates {
		points[i] = models.MSeriesPoint{Date: d, Value: days[d]}
	}

	return models.MDailySeries{Line: line, Metric: metric, Points: points}, nil
}

// -----------------------------------------------------------------------------

func metricValue(metric models.Metric) (func(models.MTransaction) float64, error) {
	switch metric {
	case models.MetricQuantity:
		return func(t models.MTransaction) float64 { return float64(t.Quantity) }, nil
	case models.MetricRevenue:
		return func(t models.MTransaction) float64 { return t.Amount }, nil
	}
	return nil, fmt.Errorf("unknown metric %q", metric)
}

// -----------------------------------------------------------------------------

// FutureDates labels the h periods following lastDate as consecutive calendar days.
func FutureDates(lastDate string, h int) ([]string, error) {
	last, err := time.Parse(DateLayout, lastDate)
	if err != nil {
		return nil, err
	}
	dates := make([]string, h)
	for i := range dates {
		dates[i] = last.AddDate(0, 0, i+1).Format(DateLayout)
	}
	return dates, nil
}
