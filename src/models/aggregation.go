package models

// MProductAggregate holds the totals of a single product.
type MProductAggregate struct {
	ProductID     string  `json:"product_id"`
	QuantityTotal int     `json:"quantity_total"`
	RevenueTotal  float64 `json:"revenue_total"`
}

// MHourlyAggregate holds the units sold during one hour of the day.
type MHourlyAggregate struct {
	Hour          int `json:"hour"`
	QuantityTotal int `json:"quantity_total"`
}
