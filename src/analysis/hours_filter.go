package analysis

import (
	"errors"
	"fmt"

	"sales-forecast/src/models"
)

// HoursWindow is an inclusive range of hours of the day. StartHour > EndHour
// means the window crosses midnight.
type HoursWindow struct {
	StartHour int
	EndHour   int
}

// -----------------------------------------------------------------------------

func NewHoursWindow(cfg models.MBusinessHoursConfig) (HoursWindow, error) {
	w := HoursWindow{StartHour: cfg.StartHour, EndHour: cfg.EndHour}
	return w, w.Validate()
}

// Validate checks both bounds are hours of the day.
func (w HoursWindow) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 || w.EndHour < 0 || w.EndHour > 23 {
		return fmt.Errorf("hours window %d-%d out of range 0-23", w.StartHour, w.EndHour)
	}
	return nil
}

// Wraps reports whether the window crosses midnight.
func (w HoursWindow) Wraps() bool {
	return w.StartHour > w.EndHour
}

// Contains is the cyclical range test.
func (w HoursWindow) Contains(hour int) bool {
	if w.Wraps() {
		return hour >= w.StartHour || hour <= w.EndHour
	}
	return hour >= w.StartHour && hour <= w.EndHour
}

// Position is the offset of hour from the start of the window, used to order
// hourly tables the way the shop's day runs (18, 19, ..., 23, 0, 1, 2).
func (w HoursWindow) Position(hour int) int {
	return (hour - w.StartHour + 24) % 24
}

// Hours lists the hours of the window in Position order.
func (w HoursWindow) Hours() []int {
	var hours []int
	for i := 0; i < 24; i++ {
		h := (w.StartHour + i) % 24
		hours = append(hours, h)
		if h == w.EndHour {
			break
		}
	}
	return hours
}

// -----------------------------------------------------------------------------

// FilterBusinessHours returns the records whose local hour falls in the window,
// in input order.
func FilterBusinessHours(records []models.MTransaction, window HoursWindow) ([]models.MTransaction, error) {
	filtered := make([]models.MTransaction, 0, len(records))
	for i, rec := range records {
		if rec.Timestamp.IsZero() {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.ProductID, errUnsetTimestamp)
		}
		if window.Contains(rec.Timestamp.Hour()) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

var errUnsetTimestamp = errors.New("timestamp is unset")
