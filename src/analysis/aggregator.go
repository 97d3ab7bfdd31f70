package analysis

import (
	"sort"

	"sales-forecast/src/models"
)

// -----------------------------------------------------------------------------

// AggregateByProduct counts records and sums amounts per exact product id.
func AggregateByProduct(records []models.MTransaction) map[string]models.MProductAggregate {
	results := make(map[string]models.MProductAggregate)
	for _, rec := range records {
		agg := results[rec.ProductID]
		agg.ProductID = rec.ProductID
		agg.QuantityTotal += rec.Quantity
		agg.RevenueTotal += rec.Amount
		results[rec.ProductID] = agg
	}
	return results
}

// -----------------------------------------------------------------------------

// SortedProductAggregates flattens the mapping ordered by product id.
func SortedProductAggregates(aggs map[string]models.MProductAggregate) []models.MProductAggregate {
	list := make([]models.MProductAggregate, 0, len(aggs))
	for _, agg := range aggs {
		list = append(list, agg)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ProductID < list[j].ProductID
	})
	return list
}

// -----------------------------------------------------------------------------

// AggregateByHour sums quantities per hour of the day. Callers pass records
// already restricted to the window; hours are ordered by window position and
// hours without sales are omitted.
func AggregateByHour(records []models.MTransaction, window HoursWindow) []models.MHourlyAggregate {
	byHour := make(map[int]int)
	for _, rec := range records {
		byHour[rec.Timestamp.Hour()] += rec.Quantity
	}

	list := make([]models.MHourlyAggregate, 0, len(byHour))
	for hour, qty := range byHour {
		list = append(list, models.MHourlyAggregate{Hour: hour, QuantityTotal: qty})
	}
	sort.Slice(list, func(i, j int) bool {
		return window.Position(list[i].Hour) < window.Position(list[j].Hour)
	})
	return list
}
