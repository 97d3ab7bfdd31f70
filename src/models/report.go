package models

import (
	"time"

	"github.com/hashicorp/go-multierror"
)

// MLineReport gathers every artifact computed for one product line.
type MLineReport struct {
	Line              string              `json:"line"`
	Records           int                 `json:"records"`
	BusinessRecords   int                 `json:"business_records"`
	ProductAggregates []MProductAggregate `json:"product_aggregates"`
	HourlyAggregates  []MHourlyAggregate  `json:"hourly_aggregates"`
	DailySeries       []MDailySeries      `json:"daily_series"`
	Trends            []MTrend            `json:"trends,omitempty"`
	Forecasts         []MForecastResult   `json:"forecasts"`
}

// Series returns the daily series of the given metric, if it was built.
func (r *MLineReport) Series(metric Metric) (MDailySeries, bool) {
	for _, s := range r.DailySeries {
		if s.Metric == metric {
			return s, true
		}
	}
	return MDailySeries{}, false
}

// Forecast returns the forecast of the given metric, if one was attempted.
func (r *MLineReport) Forecast(metric Metric) (MForecastResult, bool) {
	for _, f := range r.Forecasts {
		if f.Metric == metric {
			return f, true
		}
	}
	return MForecastResult{}, false
}

// -----------------------------------------------------------------------------

// MProcessingMetrics describes the cost of a pipeline run.
type MProcessingMetrics struct {
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	LinesProcessed        int     `json:"lines_processed"`
	RecordsProcessed      int     `json:"records_processed"`
	ForecastsSucceeded    int     `json:"forecasts_succeeded"`
	ForecastsFailed       int     `json:"forecasts_failed"`
}

// MReport is the output of one pipeline run, lines in configuration order.
type MReport struct {
	Lines             []MLineReport      `json:"lines"`
	GeneratedAt       time.Time          `json:"generated_at"`
	ProcessingMetrics MProcessingMetrics `json:"processing_metrics"`
}

// Line looks up a line report by name.
func (r *MReport) Line(name string) (*MLineReport, bool) {
	for i := range r.Lines {
		if r.Lines[i].Line == name {
			return &r.Lines[i], true
		}
	}
	return nil, false
}

// ForecastErrors aggregates the isolated per-series failures of the run.
// It returns nil when every forecast succeeded.
func (r *MReport) ForecastErrors() error {
	var result *multierror.Error
	for _, line := range r.Lines {
		for _, f := range line.Forecasts {
			if f.Err != nil {
				result = multierror.Append(result, f.Err)
			}
		}
	}
	return result.ErrorOrNil()
}

// -----------------------------------------------------------------------------

// Message types pushed over the websocket.
const (
	MessageInitial = "INITIAL"
	MessageUpdate  = "UPDATE"
)

// CommandSubscribe is the only command websocket clients may send.
const CommandSubscribe = "subscribe"

// MReportMessage is what websocket clients receive. Report is nil until the
// first run completes.
type MReportMessage struct {
	Type      string   `json:"type"`
	Timestamp int64    `json:"timestamp"`
	Report    *MReport `json:"report"`
}

// MSubscribeCommand restricts the pushed report to some lines. No lines means all.
type MSubscribeCommand struct {
	Command string   `json:"command"`
	Lines   []string `json:"lines"`
}
