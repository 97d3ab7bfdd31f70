package server

import (
	"sales-forecast/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

// filterLines returns a shallow copy of the report holding only the named
// lines. No names keeps every line.
func filterLines(report *models.MReport, names []string) *models.MReport {
	if report == nil || len(names) == 0 {
		return report
	}

	filtered := &models.MReport{
		GeneratedAt:       report.GeneratedAt,
		ProcessingMetrics: report.ProcessingMetrics,
		Lines:             []models.MLineReport{},
	}
	for _, line := range report.Lines {
		if contains(names, line.Line) {
			filtered.Lines = append(filtered.Lines, line)
		}
	}
	return filtered
}

// -----------------------------------------------------------------------------

// configView is the public part of the configuration. Storage credentials
// are left out.
func configView(cfg *models.MConfig) gin.H {
	lines := make([]gin.H, 0, len(cfg.Lines))
	for _, line := range cfg.Lines {
		lines = append(lines, gin.H{
			"name":             line.Name,
			"forecast_metrics": line.ForecastMetrics,
		})
	}

	return gin.H{
		"name":     cfg.Name,
		"timezone": cfg.Timezone,
		"business_hours": gin.H{
			"start_hour": cfg.BusinessHours.StartHour,
			"end_hour":   cfg.BusinessHours.EndHour,
		},
		"forecast": gin.H{
			"order":   cfg.Forecast.Order,
			"horizon": cfg.Forecast.Horizon,
		},
		"calendar": cfg.Calendar.MIC,
		"storage":  cfg.Storage.DBType,
		"lines":    lines,
	}
}

// -----------------------------------------------------------------------------

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
