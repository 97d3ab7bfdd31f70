package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sales-forecast/src/helpers"
	"sales-forecast/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
lines:
  - name: pizza
    path: data/relatorio_pizza.csv
    forecast_metrics: [quantity]
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, models.MModelOrder{P: 5, D: 1, Q: 0}, cfg.Forecast.Order)
	assert.Equal(t, 7, cfg.Forecast.Horizon)
	assert.Equal(t, 30*time.Second, cfg.FitTimeout())
	assert.Equal(t, models.MBusinessHoursConfig{StartHour: 18, EndHour: 2}, cfg.BusinessHours)
	assert.Equal(t, "none", cfg.Storage.DBType)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, time.UTC, cfg.Location())

	line := cfg.Lines[0]
	assert.Equal(t, "produto", line.ProductColumn)
	assert.Equal(t, "valor", line.AmountColumn)
	assert.Equal(t, "data", line.TimestampColumn)
}

func TestParseReadsForecastOrder(t *testing.T) {
	cfg, err := Parse([]byte(`
forecast:
  p: 2
  d: 0
  horizon: 3
  fit_timeout: 250ms
business_hours:
  start_hour: 9
  end_hour: 17
` + minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, models.MModelOrder{P: 2, D: 0}, cfg.Forecast.Order)
	assert.Equal(t, 3, cfg.Forecast.Horizon)
	assert.Equal(t, 250*time.Millisecond, cfg.FitTimeout())
	assert.Equal(t, 9, cfg.BusinessHours.StartHour)
}

func TestParseEnvironmentOverrides(t *testing.T) {
	t.Setenv("SALES_LOG_LEVEL", "DEBUG")
	t.Setenv("SALES_DB_TYPE", "sqlite")
	t.Setenv("SALES_DB_PATH", "/tmp/sales.db")
	t.Setenv("SALES_PORT", "9100")

	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.Storage.DBType)
	assert.Equal(t, "/tmp/sales.db", cfg.Storage.DBPath)
	assert.Equal(t, 9100, cfg.Port)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no lines", "timezone: UTC\n"},
		{"bad hour", "business_hours: {start_hour: 25, end_hour: 2}\n" + minimalConfig},
		{"moving average", "forecast: {p: 5, d: 1, q: 1}\n" + minimalConfig},
		{"bad horizon", "forecast: {horizon: -1}\n" + minimalConfig},
		{"bad timeout", "forecast: {fit_timeout: soon}\n" + minimalConfig},
		{"bad timezone", "timezone: Mars/Olympus\n" + minimalConfig},
		{"bad db type", "storage: {db_type: mongo}\n" + minimalConfig},
		{"sqlite without path", "storage: {db_type: sqlite}\n" + minimalConfig},
		{"postgres without dsn", "storage: {db_type: postgres}\n" + minimalConfig},
		{"bad server port", "serve: true\nhost: 0.0.0.0\nport: 80\n" + minimalConfig},
		{"unknown metric", "lines:\n  - name: pizza\n    path: p.csv\n    forecast_metrics: [margin]\n"},
		{"duplicate line", "lines:\n  - {name: pizza, path: a.csv}\n  - {name: pizza, path: b.csv}\n"},
		{"line without path", "lines:\n  - {name: pizza}\n"},
		{"broken yaml", "lines: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)

			var cfgErr *helpers.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.MConfig, loaded.MConfig)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var cfgErr *helpers.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestDefaultConfigFileIsValid(t *testing.T) {
	data, err := os.ReadFile("../../config/default.yaml")
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, cfg.Lines, 2)
	assert.Equal(t, []string{"quantity", "revenue"}, cfg.Lines[1].ForecastMetrics)
}
