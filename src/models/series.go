package models

import "fmt"

// Metric selects which transaction field a daily series sums.
type Metric string

const (
	MetricQuantity Metric = "quantity"
	MetricRevenue  Metric = "revenue"
)

// -----------------------------------------------------------------------------

// ParseMetric validates a metric name coming from configuration.
func ParseMetric(name string) (Metric, error) {
	switch Metric(name) {
	case MetricQuantity, MetricRevenue:
		return Metric(name), nil
	}
	return "", fmt.Errorf("unknown metric %q (expected %q or %q)", name, MetricQuantity, MetricRevenue)
}

// -----------------------------------------------------------------------------

// MSeriesPoint is the value of a metric on one calendar date.
type MSeriesPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// MDailySeries is ordered by date, strictly increasing. Days without sales are absent.
type MDailySeries struct {
	Line   string         `json:"line"`
	Metric Metric         `json:"metric"`
	Points []MSeriesPoint `json:"points"`
}

// Values returns a private copy of the series values in date order.
func (s MDailySeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// LastDate returns the last observed date, or "" for an empty series.
func (s MDailySeries) LastDate() string {
	if len(s.Points) == 0 {
		return ""
	}
	return s.Points[len(s.Points)-1].Date
}
