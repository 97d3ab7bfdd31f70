package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"sales-forecast/src/helpers"
	"sales-forecast/src/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied to keys left empty in the YAML file.
const (
	DefaultP               = 5
	DefaultD               = 1
	DefaultQ               = 0
	DefaultHorizon         = 7
	DefaultFitTimeout      = "30s"
	DefaultWorkers         = 4
	DefaultStartHour       = 18
	DefaultEndHour         = 2
	DefaultTrendPeriod     = 7
	DefaultProductColumn   = "produto"
	DefaultAmountColumn    = "valor"
	DefaultTimestampColumn = "data"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from a YAML file, with .env and
// environment overrides applied on top.
func NewConfig(configPath string) (*Config, error) {
	// 1. Optional .env next to the working directory
	_ = godotenv.Load()

	// 2. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, configError(fmt.Sprintf("failed to read config file '%s'", configPath), err)
	}

	return Parse(data)
}

// -----------------------------------------------------------------------------

// Parse builds a validated Config from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, configError("failed to parse config from YAML", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, configError("config validation failed", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func configError(message string, cause error) error {
	return &helpers.ConfigurationError{SalesForecastError: helpers.SalesForecastError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() {
	if v := os.Getenv("SALES_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SALES_DB_TYPE"); v != "" {
		c.Storage.DBType = v
	}
	if v := os.Getenv("SALES_DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("SALES_DB_CONNECTION_STRING"); v != "" {
		c.Storage.DBConnectionString = v
	}
	if v := os.Getenv("SALES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "sales-forecast"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.BusinessHours == (models.MBusinessHoursConfig{}) {
		c.BusinessHours = models.MBusinessHoursConfig{StartHour: DefaultStartHour, EndHour: DefaultEndHour}
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Forecast.Order == (models.MModelOrder{}) {
		c.Forecast.Order = models.MModelOrder{P: DefaultP, D: DefaultD, Q: DefaultQ}
	}
	if c.Forecast.Horizon == 0 {
		c.Forecast.Horizon = DefaultHorizon
	}
	if c.Forecast.FitTimeout == "" {
		c.Forecast.FitTimeout = DefaultFitTimeout
	}
	if c.Trend.Periodicity == 0 {
		c.Trend.Periodicity = DefaultTrendPeriod
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "none"
	}
	if c.Storage.Schema == "" {
		c.Storage.Schema = "sales_forecast"
	}
	for i := range c.Lines {
		line := &c.Lines[i]
		if line.ProductColumn == "" {
			line.ProductColumn = DefaultProductColumn
		}
		if line.AmountColumn == "" {
			line.AmountColumn = DefaultAmountColumn
		}
		if line.TimestampColumn == "" {
			line.TimestampColumn = DefaultTimestampColumn
		}
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	// Server is only checked when it will be started
	if c.Serve {
		if c.Host == "" {
			return fmt.Errorf("server host cannot be empty")
		}
		if c.Port <= 1024 || c.Port > 65535 {
			return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
		}
	}

	// Business hours
	bh := c.BusinessHours
	if bh.StartHour < 0 || bh.StartHour > 23 || bh.EndHour < 0 || bh.EndHour > 23 {
		return fmt.Errorf("business hours must be within 0-23, got %d-%d", bh.StartHour, bh.EndHour)
	}

	// Forecast
	order := c.Forecast.Order
	if order.P < 0 || order.D < 0 {
		return fmt.Errorf("model order must be non-negative, got (%d,%d,%d)", order.P, order.D, order.Q)
	}
	if order.Q != 0 {
		return fmt.Errorf("moving-average order q=%d is not supported", order.Q)
	}
	if c.Forecast.Horizon <= 0 {
		return fmt.Errorf("forecast horizon must be greater than 0")
	}
	if d, err := time.ParseDuration(c.Forecast.FitTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid fit timeout %q", c.Forecast.FitTimeout)
	}
	if c.Trend.Enabled && c.Trend.Periodicity < 2 {
		return fmt.Errorf("trend periodicity must be at least 2")
	}

	// Storage
	switch c.Storage.DBType {
	case "none":
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unknown database type %q", c.Storage.DBType)
	}

	// Product lines
	if len(c.Lines) == 0 {
		return fmt.Errorf("at least one product line must be configured")
	}
	seen := make(map[string]bool)
	for i, line := range c.Lines {
		if line.Name == "" {
			return fmt.Errorf("line %d must have a name", i)
		}
		if seen[line.Name] {
			return fmt.Errorf("line '%s' is configured twice", line.Name)
		}
		seen[line.Name] = true
		if line.Path == "" {
			return fmt.Errorf("line '%s' must have a path", line.Name)
		}
		for _, m := range line.ForecastMetrics {
			if _, err := models.ParseMetric(m); err != nil {
				return fmt.Errorf("line '%s': %w", line.Name, err)
			}
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Location returns the timezone used to read timestamps.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FitTimeout returns the wall-clock bound on a single model fit.
func (c *Config) FitTimeout() time.Duration {
	d, err := time.ParseDuration(c.Forecast.FitTimeout)
	if err != nil {
		return 0
	}
	return d
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
