package main

import (
	"sales-forecast/src/config"
	datasource "sales-forecast/src/data_source"
	"sales-forecast/src/data_source/csvfile"
	"sales-forecast/src/forecast"
	"sales-forecast/src/interfaces"
	"sales-forecast/src/logger"
	"sales-forecast/src/models"
	"sales-forecast/src/pipeline"
	"sales-forecast/src/storage"
	"sales-forecast/src/utils"
)

// -----------------------------------------------------------------------------

// setupStore initializes the result database, or returns nil when disabled
func setupStore(config *models.MConfig, appLogger *logger.Logger) (interfaces.IReportStore, error) {
	var storeLogger *logger.Logger
	switch config.Storage.DBType {
	case "postgres":
		storeLogger = logger.NewLogger(config, "PostgresReportStore")
	default:
		storeLogger = logger.NewLogger(config, "SQLiteReportStore")
	}

	store, err := storage.NewReportStore(config, storeLogger)
	if err != nil {
		return nil, err
	}
	if store == nil {
		appLogger.Info("Result storage disabled")
		return nil, nil
	}

	if err := store.Initialize(); err != nil {
		return nil, err
	}
	return store, nil
}

// -----------------------------------------------------------------------------

// setupSources registers one CSV source per product line
func setupSources(config *models.MConfig, appLogger *logger.Logger) *datasource.SourceManager {
	sources := make([]interfaces.IRecordSource, 0, len(config.Lines))
	for _, line := range config.Lines {
		sources = append(sources, csvfile.NewCSVSource(line, logger.NewLogger(config, "CSVSource-"+line.Name)))
		appLogger.Info("Added source: %s (%s), forecasting %v", line.Name, line.Path, line.ForecastMetrics)
	}
	return datasource.NewSourceManager(sources, logger.NewLogger(config, "SourceManager"))
}

// -----------------------------------------------------------------------------

// setupPipeline wires the forecaster and the business calendar into the pipeline
func setupPipeline(conf *config.Config, sources *datasource.SourceManager, appLogger *logger.Logger) (*pipeline.Pipeline, error) {
	calendar := utils.NewBusinessCalendar(conf.Calendar.MIC, conf.Location(), logger.NewLogger(conf.MConfig, "BusinessCalendar"))
	forecaster := forecast.NewForecaster(conf.Forecast, conf.FitTimeout(), calendar, logger.NewLogger(conf.MConfig, "Forecaster"))

	appLogger.Info("Forecasting ARIMA(%d,%d,%d), horizon %d days",
		conf.Forecast.Order.P, conf.Forecast.Order.D, conf.Forecast.Order.Q, conf.Forecast.Horizon)

	return pipeline.NewPipeline(conf.MConfig, sources, forecaster, logger.NewLogger(conf.MConfig, "Pipeline"))
}

// -----------------------------------------------------------------------------

func closeStore(store interfaces.IReportStore, appLogger *logger.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		appLogger.Error("Failed to close db: %v", err)
	}
}
