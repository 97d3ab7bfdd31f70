package models

// MConfig Structure
type MConfig struct {
	Name          string               `yaml:"name"`
	Host          string               `yaml:"host"`
	Port          int                  `yaml:"port"`
	LogLevel      string               `yaml:"log_level"`
	Serve         bool                 `yaml:"serve"`
	Timezone      string               `yaml:"timezone"`
	Workers       int                  `yaml:"workers"`
	BusinessHours MBusinessHoursConfig `yaml:"business_hours"`
	Forecast      MForecastConfig      `yaml:"forecast"`
	Trend         MTrendConfig         `yaml:"trend"`
	Calendar      MCalendarConfig      `yaml:"calendar"`
	Storage       MStorageConfig       `yaml:"storage"`
	Lines         []MLineConfig        `yaml:"lines"`
}

type MBusinessHoursConfig struct {
	StartHour int `yaml:"start_hour"`
	EndHour   int `yaml:"end_hour"`
}

type MForecastConfig struct {
	Order      MModelOrder `yaml:",inline"`
	Horizon    int         `yaml:"horizon"`
	FitTimeout string      `yaml:"fit_timeout"` // time.ParseDuration format
}

type MTrendConfig struct {
	Enabled     bool `yaml:"enabled"`
	Periodicity int  `yaml:"periodicity"`
}

type MCalendarConfig struct {
	MIC string `yaml:"mic"` // ISO 10383 market code used for business days
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // none, sqlite or postgres
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	Schema             string `yaml:"schema"`
}

type MLineConfig struct {
	Name            string   `yaml:"name"`
	Path            string   `yaml:"path"`
	ProductColumn   string   `yaml:"product_column"`
	AmountColumn    string   `yaml:"amount_column"`
	TimestampColumn string   `yaml:"timestamp_column"`
	ForecastMetrics []string `yaml:"forecast_metrics"`
}
