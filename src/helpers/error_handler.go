package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sales-forecast/src/logger"
)

// -----------------------------------------------------------------------------
// Sentinels
// -----------------------------------------------------------------------------

var (
	ErrMalformedRecord  = errors.New("malformed record")
	ErrInsufficientData = errors.New("insufficient data")
	ErrNonConvergent    = errors.New("non-convergent estimation")
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type SalesForecastError struct {
	Message string
	Cause   error
}

func (e *SalesForecastError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SalesForecastError) Unwrap() error {
	return e.Cause
}

type ConfigurationError struct{ SalesForecastError }
type DataSourceError struct{ SalesForecastError }
type DatabaseError struct{ SalesForecastError }

// -----------------------------------------------------------------------------

// MalformedRecordError reports an input row that cannot be normalized.
type MalformedRecordError struct {
	SalesForecastError
	Row   int
	Field string
}

func NewMalformedRecordError(row int, field string, cause error) *MalformedRecordError {
	return &MalformedRecordError{
		SalesForecastError: SalesForecastError{
			Message: fmt.Sprintf("malformed record at row %d (%s)", row, field),
			Cause:   cause,
		},
		Row:   row,
		Field: field,
	}
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// -----------------------------------------------------------------------------

// InsufficientDataError reports a series too short for the model order.
type InsufficientDataError struct {
	SalesForecastError
	Observations int
	Required     int
}

func NewInsufficientDataError(observations, required int) *InsufficientDataError {
	return &InsufficientDataError{
		SalesForecastError: SalesForecastError{
			Message: fmt.Sprintf("insufficient data: %d observations, %d required", observations, required),
		},
		Observations: observations,
		Required:     required,
	}
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// -----------------------------------------------------------------------------

// NonConvergentError reports an estimation that produced no usable model.
type NonConvergentError struct{ SalesForecastError }

func NewNonConvergentError(message string, cause error) *NonConvergentError {
	return &NonConvergentError{SalesForecastError{Message: message, Cause: cause}}
}

func (e *NonConvergentError) Is(target error) bool { return target == ErrNonConvergent }

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	ErrorCount int
	BaseDelay  time.Duration
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{
		Logger:    log,
		BaseDelay: time.Second,
	}
}

// -----------------------------------------------------------------------------

// ExecuteWithRetry runs fn up to maxRetries times with exponential backoff and
// categorizes the final failure. Only used for I/O; forecasting is deterministic.
func (e *ErrorHandler) ExecuteWithRetry(operation string, fn func() error, maxRetries int) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := fn()
		if err == nil {
			if e.ErrorCount > 0 {
				e.ErrorCount--
			}
			return nil
		}
		lastErr = err

		if attempt == maxRetries-1 {
			break
		}

		e.Logger.Warning("%s failed (attempt %d/%d): %v", operation, attempt+1, maxRetries, err)
		time.Sleep(e.BaseDelay * time.Duration(1<<attempt))
	}

	e.ErrorCount++
	e.Logger.Error("%s failed after %d attempts: %v", operation, maxRetries, lastErr)

	base := SalesForecastError{Message: fmt.Sprintf("%s failed", operation), Cause: lastErr}
	lowerOp := strings.ToLower(operation)
	if strings.Contains(lowerOp, "database") || strings.Contains(lowerOp, "save") {
		return &DatabaseError{base}
	}
	return &base
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err != nil {
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
