package helpers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	malformed := fmt.Errorf("load pizza: %w", NewMalformedRecordError(4, "valor", errors.New("bad amount")))
	assert.ErrorIs(t, malformed, ErrMalformedRecord)
	assert.NotErrorIs(t, malformed, ErrNonConvergent)

	var record *MalformedRecordError
	require.ErrorAs(t, malformed, &record)
	assert.Equal(t, 4, record.Row)
	assert.Equal(t, "valor", record.Field)

	insufficient := NewInsufficientDataError(3, 11)
	assert.ErrorIs(t, insufficient, ErrInsufficientData)
	assert.Equal(t, 11, insufficient.Required)

	cause := errors.New("singular")
	nonConvergent := NewNonConvergentError("fit failed", cause)
	assert.ErrorIs(t, nonConvergent, ErrNonConvergent)
	assert.ErrorIs(t, nonConvergent, cause)
}

func TestExecuteWithRetry(t *testing.T) {
	handler := NewErrorHandler(nil)
	handler.BaseDelay = 0

	calls := 0
	err := handler.ExecuteWithRetry("save report to database", func() error {
		calls++
		if calls < 3 {
			return errors.New("locked")
		}
		return nil
	}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = handler.ExecuteWithRetry("save report to database", func() error {
		calls++
		return errors.New("disk full")
	}, 2)
	assert.Equal(t, 2, calls)

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, handler.ErrorCount)
}
