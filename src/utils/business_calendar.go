package utils

import (
	"strings"
	"time"

	"sales-forecast/src/logger"

	"github.com/scmhub/calendar"
)

// BusinessCalendar flags business days using the exchange calendar of a MIC.
// Without a known calendar it treats Monday to Friday as business days.
type BusinessCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// NewBusinessCalendar loads the calendar for the MIC (ISO 10383, e.g. bvmf),
// falling back to DefaultMIC and then to weekdays in loc.
func NewBusinessCalendar(mic string, loc *time.Location, log *logger.Logger) *BusinessCalendar {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic == "" {
		mic = DefaultMIC
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil && mic != DefaultMIC {
		if log != nil {
			log.Warning("Unknown calendar MIC %q, using %q", mic, DefaultMIC)
		}
		cal = calendar.GetCalendar(DefaultMIC)
	}

	if loc == nil {
		loc = time.UTC
	}

	if cal == nil {
		if log != nil {
			log.Warning("No exchange calendar available, business days are Monday to Friday")
		}
		return &BusinessCalendar{Fallback: true, Timezone: loc}
	}

	return &BusinessCalendar{Calendar: cal, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsBusinessDay reports whether the calendar date of the given time is a
// business day. Only year, month and day are taken from date.
func (bc *BusinessCalendar) IsBusinessDay(date time.Time) bool {
	loc := bc.Timezone
	if loc == nil {
		loc = time.UTC
	}
	// Noon keeps the date stable across the calendar's UTC offset
	day := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)

	if bc.Fallback || bc.Calendar == nil {
		return IsWeekday(day)
	}
	return bc.Calendar.IsBusinessDay(day)
}

// -----------------------------------------------------------------------------

func IsWeekday(day time.Time) bool {
	weekday := day.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}
