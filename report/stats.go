// Package report computes progress, breakdowns, calendar buckets and paged
// task listings from entries already loaded for one user. Every function is
// pure: inputs are never modified.
package report

import (
	"errors"
	"math"
	"sort"
	"time"

	"ojtlog/ojt"
)

var ErrInvalidTarget = errors.New("required hours must be > 0")

// MonthLayout is the key format of MonthlyBreakdown.
const MonthLayout = "Jan 2006"

// Recompute returns copies of entries whose TotalHours equals the sum of
// their tasks, whatever was stored before.
func Recompute(entries []ojt.Entry) []ojt.Entry {
	out := make([]ojt.Entry, len(entries))
	for i, entry := range entries {
		entry.TotalHours = entry.SumHours()
		out[i] = entry
	}
	return out
}

func ComputeStats(entries []ojt.Entry, requiredHours float64) (ojt.Stats, error) {
	if !(requiredHours > 0) {
		return ojt.Stats{}, ErrInvalidTarget
	}

	completed := 0.0
	for _, entry := range entries {
		completed += entry.SumHours()
	}

	return ojt.Stats{
		RequiredHours:      requiredHours,
		CompletedHours:     completed,
		RemainingHours:     math.Max(0, requiredHours-completed),
		ProgressPercentage: math.Min(100, completed/requiredHours*100),
		EntryCount:         len(entries),
	}, nil
}

// CategoryBreakdown sums task hours per category. Categories without tasks
// are absent.
func CategoryBreakdown(entries []ojt.Entry) map[ojt.Category]float64 {
	out := make(map[ojt.Category]float64)
	for _, entry := range entries {
		for _, task := range entry.Tasks {
			out[task.Category] += task.HoursRendered
		}
	}
	return out
}

// MonthlyBreakdown sums entry totals per calendar month of the entry date,
// keyed like "May 2024".
func MonthlyBreakdown(entries []ojt.Entry) map[string]float64 {
	out := make(map[string]float64)
	for _, entry := range entries {
		out[entry.Date.Format(MonthLayout)] += entry.SumHours()
	}
	return out
}

type CategoryHours struct {
	Category ojt.Category `json:"category"`
	Hours    float64      `json:"hours"`
	Share    float64      `json:"share"`
}

// SortedCategories orders a breakdown by hours, largest first. Share is the
// percentage of completedHours, zero when nothing is completed.
func SortedCategories(breakdown map[ojt.Category]float64, completedHours float64) []CategoryHours {
	out := make([]CategoryHours, 0, len(breakdown))
	for category, value := range breakdown {
		share := 0.0
		if completedHours > 0 {
			share = value / completedHours * 100
		}
		out = append(out, CategoryHours{Category: category, Hours: value, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours == out[j].Hours {
			return out[i].Category < out[j].Category
		}
		return out[i].Hours > out[j].Hours
	})
	return out
}

type MonthHours struct {
	Month string  `json:"month"`
	Hours float64 `json:"hours"`
}

// SortedMonths orders a monthly breakdown newest month first.
func SortedMonths(breakdown map[string]float64) []MonthHours {
	type keyed struct {
		month time.Time
		row   MonthHours
	}
	rows := make([]keyed, 0, len(breakdown))
	for month, value := range breakdown {
		parsed, err := time.Parse(MonthLayout, month)
		if err != nil {
			continue
		}
		rows = append(rows, keyed{month: parsed, row: MonthHours{Month: month, Hours: value}})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].month.After(rows[j].month)
	})

	out := make([]MonthHours, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.row)
	}
	return out
}
