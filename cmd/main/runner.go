package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"sales-forecast/src/helpers"
	"sales-forecast/src/interfaces"
	"sales-forecast/src/logger"
	"sales-forecast/src/models"
	"sales-forecast/src/pipeline"
	"sales-forecast/src/utils"
)

// runner executes the pipeline and emits its report: log summary, result
// database and JSON file.
type runner struct {
	pipe       *pipeline.Pipeline
	store      interfaces.IReportStore
	outputPath string
	logger     *logger.Logger
	errors     *helpers.ErrorHandler
	mu         sync.Mutex
}

// -----------------------------------------------------------------------------

func newRunner(pipe *pipeline.Pipeline, store interfaces.IReportStore, outputPath string, log *logger.Logger) *runner {
	return &runner{
		pipe:       pipe,
		store:      store,
		outputPath: outputPath,
		logger:     log,
		errors:     helpers.NewErrorHandler(log.Named("ErrorHandler")),
	}
}

// -----------------------------------------------------------------------------

// Run computes a fresh report. Failed forecasts are logged but do not fail
// the run; emission failures are logged as well.
func (r *runner) Run(ctx context.Context) (*models.MReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, err := r.pipe.Run(ctx)
	if err != nil {
		return nil, err
	}

	pipeline.LogSummary(report, r.logger.Named("Report"))
	if err := report.ForecastErrors(); err != nil {
		r.logger.Warning("%d of %d forecasts failed: %v",
			report.ProcessingMetrics.ForecastsFailed,
			report.ProcessingMetrics.ForecastsFailed+report.ProcessingMetrics.ForecastsSucceeded,
			err)
	}

	if r.store != nil {
		err := r.errors.ExecuteWithRetry("save report to database", func() error {
			return r.store.SaveReport(report)
		}, utils.DefaultStoreRetries)
		r.errors.Handle(err, "result storage")
	}

	if r.outputPath != "" {
		if err := writeReport(r.outputPath, report); err != nil {
			r.errors.Handle(err, "report output")
		} else {
			r.logger.Info("Report written to %s", r.outputPath)
		}
	}

	return report, nil
}

// -----------------------------------------------------------------------------

func writeReport(path string, report *models.MReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to '%s': %w", path, err)
	}
	return nil
}
