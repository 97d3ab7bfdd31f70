package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sales-forecast/src/analysis"
	datasource "sales-forecast/src/data_source"
	"sales-forecast/src/forecast"
	"sales-forecast/src/logger"
	"sales-forecast/src/models"

	"golang.org/x/sync/errgroup"
)

// Pipeline turns the raw records of every configured product line into a
// report: aggregates, business-hours profile, daily series and forecasts.
type Pipeline struct {
	Config     *models.MConfig
	Sources    *datasource.SourceManager
	Analyzer   *analysis.AnalysisFacade
	Forecaster *forecast.Forecaster
	Logger     *logger.Logger

	mu sync.Mutex
}

// -----------------------------------------------------------------------------

func NewPipeline(cfg *models.MConfig, sources *datasource.SourceManager, forecaster *forecast.Forecaster, log *logger.Logger) (*Pipeline, error) {
	analyzer, err := analysis.NewAnalysisFacade(cfg, log.Named("Analysis"))
	if err != nil {
		return nil, err
	}

	for _, line := range cfg.Lines {
		if _, err := sources.GetSource(line.Name); err != nil {
			return nil, fmt.Errorf("line %s has no record source: %w", line.Name, err)
		}
	}

	return &Pipeline{
		Config:     cfg,
		Sources:    sources,
		Analyzer:   analyzer,
		Forecaster: forecaster,
		Logger:     log,
	}, nil
}

// -----------------------------------------------------------------------------

// Run processes every line as an independent task. A line that fails to load
// or normalize aborts the run; a series that cannot be forecast only marks
// its own result. Concurrent calls are serialized.
func (p *Pipeline) Run(ctx context.Context) (*models.MReport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	lines := make([]models.MLineReport, len(p.Config.Lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())

	for i, line := range p.Config.Lines {
		g.Go(func() error {
			report, err := p.runLine(gctx, line)
			if err != nil {
				return err
			}
			lines[i] = *report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &models.MReport{
		Lines:       lines,
		GeneratedAt: time.Now().UTC(),
	}
	report.ProcessingMetrics = metricsOf(report, time.Since(start))

	p.Logger.Info("Processed %d lines, %d records in %.3fs (%d forecasts ok, %d failed)",
		report.ProcessingMetrics.LinesProcessed,
		report.ProcessingMetrics.RecordsProcessed,
		report.ProcessingMetrics.ProcessingTimeSeconds,
		report.ProcessingMetrics.ForecastsSucceeded,
		report.ProcessingMetrics.ForecastsFailed)

	return report, nil
}

// -----------------------------------------------------------------------------

func (p *Pipeline) runLine(ctx context.Context, line models.MLineConfig) (*models.MLineReport, error) {
	rows, err := p.Sources.Load(ctx, line.Name)
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", line.Name, err)
	}

	report, err := p.Analyzer.AnalyzeLine(line, rows)
	if err != nil {
		return nil, err
	}

	report.Forecasts, err = p.forecastAll(ctx, report.DailySeries)
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", line.Name, err)
	}
	return report, nil
}

// -----------------------------------------------------------------------------

// forecastAll fits every series concurrently. Failures stay in their result;
// only cancellation of the run is returned.
func (p *Pipeline) forecastAll(ctx context.Context, series []models.MDailySeries) ([]models.MForecastResult, error) {
	results := make([]models.MForecastResult, len(series))

	var g errgroup.Group
	for i, s := range series {
		g.Go(func() error {
			results[i], _ = p.Forecaster.Forecast(ctx, s)
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// -----------------------------------------------------------------------------

func (p *Pipeline) workers() int {
	if p.Config.Workers > 0 {
		return p.Config.Workers
	}
	return max(len(p.Config.Lines), 1)
}

// -----------------------------------------------------------------------------

func metricsOf(report *models.MReport, elapsed time.Duration) models.MProcessingMetrics {
	m := models.MProcessingMetrics{
		ProcessingTimeSeconds: elapsed.Seconds(),
		LinesProcessed:        len(report.Lines),
	}
	for _, line := range report.Lines {
		m.RecordsProcessed += line.Records
		for _, f := range line.Forecasts {
			if f.Err != nil {
				m.ForecastsFailed++
			} else {
				m.ForecastsSucceeded++
			}
		}
	}
	return m
}
