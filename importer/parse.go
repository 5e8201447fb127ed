package importer

import (
	"fmt"
	"strings"
	"time"

	"ojtlog/hours"
	"ojtlog/ojt"
)

var dateLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

// parseClock returns the value as zero-padded "HH:MM".
func parseClock(value string) (string, error) {
	minutes, err := hours.ParseClock(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

func parseCategory(value string) (ojt.Category, error) {
	key := normalizeHeader(value)
	for _, category := range ojt.Categories {
		if normalizeHeader(string(category)) == key {
			return category, nil
		}
	}
	switch key {
	case "development", "coding", "dev":
		return ojt.CategoryDevelopment, nil
	case "docs":
		return ojt.CategoryDocumentation, nil
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// parseStatus defaults to Completed when the column is empty.
func parseStatus(value string) (ojt.Status, error) {
	if strings.TrimSpace(value) == "" {
		return ojt.StatusCompleted, nil
	}
	key := normalizeHeader(value)
	for _, status := range ojt.Statuses {
		if normalizeHeader(string(status)) == key {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", value)
}
