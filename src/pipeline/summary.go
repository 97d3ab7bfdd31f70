package pipeline

import (
	"sales-forecast/src/logger"
	"sales-forecast/src/models"
)

// LogSummary writes the per-product table, the business-hours profile and
// the forecasts of every line.
func LogSummary(report *models.MReport, log *logger.Logger) {
	for _, line := range report.Lines {
		log.Info("=== %s: %d records, %d in business hours ===", line.Line, line.Records, line.BusinessRecords)

		log.Info("Sales by product:")
		for _, agg := range line.ProductAggregates {
			log.Info("  %-30s qty=%-6d total=%.2f", agg.ProductID, agg.QuantityTotal, agg.RevenueTotal)
		}

		log.Info("Sales by hour (business hours):")
		for _, h := range line.HourlyAggregates {
			log.Info("  %02dh  %d", h.Hour, h.QuantityTotal)
		}

		for _, trend := range line.Trends {
			log.Info("Trend %s: %s (slope %.3f, z %.2f)", trend.Metric, trend.Direction, trend.Slope, trend.Z)
		}

		for _, f := range line.Forecasts {
			if f.Err != nil {
				log.Warning("Forecast %s unavailable: %v", f.Metric, f.Err)
				continue
			}
			log.Info("Forecast %s for the next %d days:", f.Metric, f.Horizon)
			for _, pt := range f.Points {
				log.Info("  %s %s %.2f", pt.Date, dayMark(pt.BusinessDay), pt.Value)
			}
		}
	}
}

// -----------------------------------------------------------------------------

func dayMark(business bool) string {
	if business {
		return "   "
	}
	return "(*)"
}
