package utils

import (
	"time"

	"github.com/julianstephens/daytrack/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
// Comparisons always go through StartOfDay so the time of day never matters.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// CalendarDay returns midnight in loc of the calendar day t was recorded on.
// The year, month and day come from t's own offset, so an anchor written
// under one timezone keeps its day when read under another.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// OnDay reports whether the anchor date falls on the calendar day of day in loc.
func OnDay(anchor, day time.Time, loc *time.Location) bool {
	ay, am, ad := anchor.Date()
	dy, dm, dd := day.In(loc).Date()
	return ay == dy && am == dm && ad == dd
}

// AnchorKey formats the recorded calendar day of an anchor as YYYY-MM-DD.
func AnchorKey(anchor time.Time) string {
	return anchor.Format(constants.DateFormat)
}

// DayKey formats the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	// Return the date at midnight in the specified timezone
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}
