package models

import "time"

// MRawRow is one untyped row handed over by a record source.
type MRawRow struct {
	Row       int    `json:"row"` // 1-based data row number, header excluded
	Product   string `json:"product"`
	Amount    string `json:"amount"`
	Timestamp string `json:"timestamp"`
}

// MTransaction is a normalized sale. One record is one sold unit.
type MTransaction struct {
	ProductID string    `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
	Amount    float64   `json:"amount"`
	Quantity  int       `json:"quantity"`
}
