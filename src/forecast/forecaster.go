package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sales-forecast/src/analysis"
	"sales-forecast/src/analysis/core"
	"sales-forecast/src/helpers"
	"sales-forecast/src/interfaces"
	"sales-forecast/src/logger"
	"sales-forecast/src/models"
)

// Forecaster fits one model per daily series and projects it Horizon periods
// ahead. It holds no state between calls, so a single instance may serve
// concurrent series.
type Forecaster struct {
	Estimator  Estimator
	Order      models.MModelOrder
	Horizon    int
	FitTimeout time.Duration
	Calendar   interfaces.IBusinessCalendar
	Logger     *logger.Logger
}

// -----------------------------------------------------------------------------

func NewForecaster(cfg models.MForecastConfig, fitTimeout time.Duration, cal interfaces.IBusinessCalendar, log *logger.Logger) *Forecaster {
	return &Forecaster{
		Estimator:  LeastSquaresEstimator{},
		Order:      cfg.Order,
		Horizon:    cfg.Horizon,
		FitTimeout: fitTimeout,
		Calendar:   cal,
		Logger:     log,
	}
}

// -----------------------------------------------------------------------------

type fitOutcome struct {
	model FittedModel
	err   error
}

// Forecast returns the point forecasts for the periods following the last
// observed date. On failure the returned result carries the error as well.
func (f *Forecaster) Forecast(ctx context.Context, series models.MDailySeries) (models.MForecastResult, error) {
	result := models.MForecastResult{
		Line:         series.Line,
		Metric:       series.Metric,
		Horizon:      f.Horizon,
		Order:        f.Order,
		Values:       []float64{},
		Points:       []models.MForecastPoint{},
		Observations: len(series.Points),
	}

	model, err := f.fit(ctx, series.Values())
	if err != nil {
		return f.fail(result, err)
	}

	values := model.Forecast(f.Horizon)
	if !core.AllFinite(values) {
		return f.fail(result, helpers.NewNonConvergentError("forecast diverged", nil))
	}

	dates, err := analysis.FutureDates(series.LastDate(), f.Horizon)
	if err != nil {
		return f.fail(result, fmt.Errorf("failed to label forecast dates: %w", err))
	}

	result.Values = values
	result.Coefficients = model.Coefficients()
	result.Sigma2 = model.Sigma2()
	for i, v := range values {
		point := models.MForecastPoint{Step: i + 1, Date: dates[i], Value: v, BusinessDay: true}
		if f.Calendar != nil {
			if day, err := time.Parse(analysis.DateLayout, dates[i]); err == nil {
				point.BusinessDay = f.Calendar.IsBusinessDay(day)
			}
		}
		result.Points = append(result.Points, point)
	}

	if f.Logger != nil {
		f.Logger.Debug("Forecast %s/%s: %d observations, coefficients %v", series.Line, series.Metric, len(series.Points), result.Coefficients)
	}
	return result, nil
}

// -----------------------------------------------------------------------------

// fit runs the estimator on a private copy of the values under the wall-clock
// bound. A fit that outlives the bound is reported as non-convergent.
func (f *Forecaster) fit(ctx context.Context, values []float64) (FittedModel, error) {
	if f.FitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.FitTimeout)
		defer cancel()
	}

	done := make(chan fitOutcome, 1)
	go func() {
		model, err := f.Estimator.Fit(values, f.Order)
		done <- fitOutcome{model: model, err: err}
	}()

	select {
	case out := <-done:
		return out.model, out.err
	case <-ctx.Done():
		return nil, helpers.NewNonConvergentError("model fit did not complete", ctx.Err())
	}
}

// -----------------------------------------------------------------------------

func (f *Forecaster) fail(result models.MForecastResult, err error) (models.MForecastResult, error) {
	err = fmt.Errorf("forecast %s/%s: %w", result.Line, result.Metric, err)
	result.Err = err
	result.Error = err.Error()

	if f.Logger != nil {
		if errors.Is(err, helpers.ErrInsufficientData) || errors.Is(err, helpers.ErrNonConvergent) {
			f.Logger.Warning("%v", err)
		} else {
			f.Logger.Error("%v", err)
		}
	}
	return result, err
}
