// Package hours converts clock times to decimal hours and renders decimal
// hours for people.
package hours

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrInvalidTimeFormat = errors.New("invalid time format (expected HH:MM)")

const minutesPerDay = 24 * 60

// ParseClock returns the minutes since midnight for an "HH:MM" value.
// A single-digit hour ("9:05") is accepted.
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// Between returns the decimal hours from timeIn to timeOut. Spans that cross
// midnight are not wrapped: a timeOut earlier than timeIn yields zero.
func Between(timeIn, timeOut string) (float64, error) {
	in, err := ParseClock(timeIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(timeOut)
	if err != nil {
		return 0, err
	}
	return math.Max(0, float64(out-in)/60), nil
}

// FormatHoursMinutes renders hours as "2 hrs 15 min", "1 hr", "45 min".
func FormatHoursMinutes(hours float64) string {
	total := roundMinutes(hours)
	hrs := total / 60
	mins := total % 60

	switch {
	case hrs == 0:
		return fmt.Sprintf("%d min", mins)
	case mins == 0:
		return hourUnit(hrs)
	default:
		return hourUnit(hrs) + fmt.Sprintf(" %d min", mins)
	}
}

// FormatDaysHoursMinutes renders hours with a day component, e.g.
// "20 days 5 hrs 30 min". Zero units are left out.
func FormatDaysHoursMinutes(hours float64) string {
	total := roundMinutes(hours)
	days := total / minutesPerDay
	rest := total % minutesPerDay
	hrs := rest / 60
	mins := rest % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		parts = append(parts, fmt.Sprintf("%d %s", days, unit))
	}
	if hrs > 0 {
		parts = append(parts, hourUnit(hrs))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%d min", mins))
	}
	if len(parts) == 0 {
		return "0 min"
	}
	return strings.Join(parts, " ")
}

// FormatDecimal renders hours with two decimals.
func FormatDecimal(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

func hourUnit(hrs int) string {
	if hrs == 1 {
		return "1 hr"
	}
	return fmt.Sprintf("%d hrs", hrs)
}

func roundMinutes(hours float64) int {
	total := int(math.Round(hours * 60))
	if total < 0 {
		return 0
	}
	return total
}
