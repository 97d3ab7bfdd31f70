package main

import (
	"context"

	"sales-forecast/src/config"
	"sales-forecast/src/interfaces"
	"sales-forecast/src/logger"
	"sales-forecast/src/models"
	"sales-forecast/src/server"
)

// -----------------------------------------------------------------------------

// serveReports publishes the report over REST and websocket until ctx ends.
// POST /api/run recomputes it through the same runner.
func serveReports(ctx context.Context, conf *config.Config, run *runner, report *models.MReport, appLogger *logger.Logger) {
	srv := server.NewReportServer(conf.MConfig, run.Run, logger.NewLogger(conf.MConfig, "ReportServer"))
	var exchanger interfaces.IDataExchanger = srv
	exchanger.UpdateReport(report)

	failed := make(chan error, 1)
	go func() {
		failed <- exchanger.Start()
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("Shutting down...")
	case err := <-failed:
		if err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}

	if err := exchanger.Stop(); err != nil {
		appLogger.Error("Server shutdown: %v", err)
	}
}
