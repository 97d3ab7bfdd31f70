package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sales-forecast/src/config"
	"sales-forecast/src/logger"
)

// -----------------------------------------------------------------------------

func main() {

	// 1. Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	outputPath := flag.String("output", "", "write the report as JSON to this file")
	flag.Parse()

	// 2. Load config
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name)

	// 4. Setup Components
	store, err := setupStore(conf.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}

	sources := setupSources(conf.MConfig, appLogger)
	pipe, err := setupPipeline(conf, sources, appLogger)
	if err != nil {
		closeStore(store, appLogger)
		appLogger.Critical("Failed to build pipeline: %v", err)
	}

	run := newRunner(pipe, store, *outputPath, appLogger)

	// Lifecycle Management
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. First run; a malformed input file ends the program
	report, err := run.Run(ctx)
	if err != nil {
		closeStore(store, appLogger)
		appLogger.Critical("Run failed: %v", err)
	}

	// 6. Optional reporting server, until interrupted
	if conf.Serve {
		serveReports(ctx, conf, run, report, appLogger)
	}

	closeStore(store, appLogger)
	appLogger.Info("Shutdown complete.")
}
