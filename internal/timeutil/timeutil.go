package timeutil

import (
	"strings"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayKey renders the calendar day of value, ignoring time of day.
func DayKey(value time.Time) string {
	return value.Format(DayLayout)
}

func ParseDay(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DayLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(parsed), nil
}

func ParseMonth(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(parsed), nil
}

func StartOfMonth(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), 1, 0, 0, 0, 0, value.Location())
}

func EndOfMonth(monthStart time.Time) time.Time {
	return StartOfMonth(monthStart).AddDate(0, 1, -1)
}
