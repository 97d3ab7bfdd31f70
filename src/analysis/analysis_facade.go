package analysis

import (
	"fmt"
	"time"

	"sales-forecast/src/logger"
	"sales-forecast/src/models"
)

// AnalysisFacade runs the descriptive part of the pipeline for one product
// line: normalization, grouping, business-hours filtering and daily series.
type AnalysisFacade struct {
	Config   *models.MConfig
	Window   HoursWindow
	Location *time.Location
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(cfg *models.MConfig, log *logger.Logger) (*AnalysisFacade, error) {
	window, err := NewHoursWindow(cfg.BusinessHours)
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if cfg.Timezone != "" {
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
		}
	}

	return &AnalysisFacade{
		Config:   cfg,
		Window:   window,
		Location: loc,
		Logger:   log,
	}, nil
}

// -----------------------------------------------------------------------------

// AnalyzeLine builds every descriptive artifact of a line. Forecasts are left
// for the caller. A malformed row fails the whole line.
func (a *AnalysisFacade) AnalyzeLine(line models.MLineConfig, rows []models.MRawRow) (*models.MLineReport, error) {
	metrics := make([]models.Metric, 0, len(line.ForecastMetrics))
	for _, name := range line.ForecastMetrics {
		m, err := models.ParseMetric(name)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", line.Name, err)
		}
		metrics = append(metrics, m)
	}

	// 1. Normalize
	records, err := NormalizeRows(rows, a.Location)
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", line.Name, err)
	}

	// 2. Per-product totals over every record
	report := &models.MLineReport{
		Line:              line.Name,
		Records:           len(records),
		ProductAggregates: SortedProductAggregates(AggregateByProduct(records)),
	}

	// 3. Restrict to business hours
	business, err := FilterBusinessHours(records, a.Window)
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", line.Name, err)
	}
	report.BusinessRecords = len(business)
	report.HourlyAggregates = AggregateByHour(business, a.Window)

	// 4. Daily series and trends
	for _, metric := range metrics {
		series, err := BuildDailySeries(line.Name, business, metric)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", line.Name, err)
		}
		report.DailySeries = append(report.DailySeries, series)

		if a.Config.Trend.Enabled {
			report.Trends = append(report.Trends, DetectTrend(series, a.Config.Trend.Periodicity))
		}
	}

	a.Logger.Debug("Line %s: %d records, %d in business hours, %d products, %d days",
		line.Name, report.Records, report.BusinessRecords, len(report.ProductAggregates), daysOf(report))

	return report, nil
}

// -----------------------------------------------------------------------------

func daysOf(report *models.MLineReport) int {
	if len(report.DailySeries) == 0 {
		return 0
	}
	return len(report.DailySeries[0].Points)
}
