package models

// MModelOrder is the (p,d,q) order of an ARIMA model.
type MModelOrder struct {
	P int `json:"p" yaml:"p"`
	D int `json:"d" yaml:"d"`
	Q int `json:"q" yaml:"q"`
}

// MForecastPoint is a single point forecast. Step 1 is the period right after
// the last observed date.
type MForecastPoint struct {
	Step        int     `json:"step"`
	Date        string  `json:"date"`
	Value       float64 `json:"value"`
	BusinessDay bool    `json:"business_day"`
}

// MForecastResult is the terminal artifact of a forecast run for one series.
// Error is set, and Values left empty, when the series could not be modelled.
type MForecastResult struct {
	Line         string           `json:"line"`
	Metric       Metric           `json:"metric"`
	Horizon      int              `json:"horizon"`
	Order        MModelOrder      `json:"order"`
	Values       []float64        `json:"values"`
	Points       []MForecastPoint `json:"points"`
	Coefficients []float64        `json:"coefficients,omitempty"`
	Sigma2       float64          `json:"sigma2"`
	Observations int              `json:"observations"`
	Error        string           `json:"error,omitempty"`

	Err error `json:"-"`
}

// MTrend summarizes the direction of a daily series.
type MTrend struct {
	Line      string  `json:"line"`
	Metric    Metric  `json:"metric"`
	Direction string  `json:"direction"` // increasing, decreasing or none
	Slope     float64 `json:"slope"`
	Z         float64 `json:"z"`
}
