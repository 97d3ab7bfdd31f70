package analysis

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"sales-forecast/src/helpers"
	"sales-forecast/src/models"
)

// TimestampLayout is the DD/MM/YYYY HH:MM:SS format of the sales exports.
const TimestampLayout = "02/01/2006 15:04:05"

// -----------------------------------------------------------------------------

// NormalizeRecord converts a raw row into a transaction of quantity 1.
// The product label is kept verbatim: grouping is exact-string.
func NormalizeRecord(row models.MRawRow, loc *time.Location) (models.MTransaction, error) {
	if loc == nil {
		loc = time.UTC
	}

	if row.Product == "" {
		return models.MTransaction{}, helpers.NewMalformedRecordError(row.Row, "product", errors.New("empty product id"))
	}

	ts, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(row.Timestamp), loc)
	if err != nil {
		return models.MTransaction{}, helpers.NewMalformedRecordError(row.Row, "timestamp", err)
	}

	amount, err := parseAmount(row.Amount)
	if err != nil {
		return models.MTransaction{}, helpers.NewMalformedRecordError(row.Row, "amount", err)
	}

	return models.MTransaction{
		ProductID: row.Product,
		Timestamp: ts,
		Amount:    amount,
		Quantity:  1,
	}, nil
}

// -----------------------------------------------------------------------------

func parseAmount(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("amount %q is not a finite number", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("amount %q is negative", raw)
	}
	return value, nil
}

// -----------------------------------------------------------------------------

// NormalizeRows normalizes a whole batch. The first malformed row aborts it.
func NormalizeRows(rows []models.MRawRow, loc *time.Location) ([]models.MTransaction, error) {
	records := make([]models.MTransaction, 0, len(rows))
	for _, row := range rows {
		rec, err := NormalizeRecord(row, loc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
