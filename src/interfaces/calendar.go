package interfaces

import "time"

// -----------------------------------------------------------------------------
// IBusinessCalendar tells trading days from weekends and holidays.
// -----------------------------------------------------------------------------

type IBusinessCalendar interface {
	IsBusinessDay(date time.Time) bool
}
