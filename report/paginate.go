package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"ojtlog/hours"
	"ojtlog/internal/timeutil"
	"ojtlog/ojt"
)

var (
	ErrInvalidPageSize = errors.New("page size must be > 0")
	ErrInvalidSortMode = errors.New("unsupported sort mode")
)

type SortMode string

const (
	// SortCreated lists the most recently added tasks first.
	SortCreated SortMode = "created"
	// SortTime lists the newest day first and each day's tasks by time-in.
	SortTime SortMode = "time"
)

func ParseSortMode(value string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return SortCreated, nil
	case SortCreated, SortTime:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: created, time)", ErrInvalidSortMode, value)
	}
}

// FlatTask is a task lifted out of its entry for list views.
type FlatTask struct {
	ojt.Task
	EntryID    string    `json:"entryId"`
	EntryDate  time.Time `json:"entryDate"`
	Supervisor string    `json:"supervisor"`
	Notes      string    `json:"notes,omitempty"`
	FirstOfDay bool      `json:"isFirstOfDate"`
}

// FlattenAndSort lifts every task out of entries and orders them by mode.
// Both orders are stable with respect to the input.
func FlattenAndSort(entries []ojt.Entry, mode SortMode) ([]FlatTask, error) {
	if mode != SortCreated && mode != SortTime {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortMode, mode)
	}

	type keyed struct {
		day   time.Time
		start int
		task  FlatTask
	}

	rows := make([]keyed, 0)
	for _, entry := range entries {
		for _, task := range entry.Tasks {
			row := keyed{
				day: timeutil.StartOfDay(entry.Date),
				task: FlatTask{
					Task:       task,
					EntryID:    entry.ID,
					EntryDate:  entry.Date,
					Supervisor: entry.Supervisor,
					Notes:      entry.Notes,
				},
			}
			if mode == SortTime {
				start, err := hours.ParseClock(task.TimeIn)
				if err != nil {
					return nil, fmt.Errorf("task %s: %w", task.ID, err)
				}
				row.start = start
			}
			rows = append(rows, row)
		}
	}

	switch mode {
	case SortCreated:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].task.CreatedAt.After(rows[j].task.CreatedAt)
		})
	case SortTime:
		sort.SliceStable(rows, func(i, j int) bool {
			if !rows[i].day.Equal(rows[j].day) {
				return rows[i].day.After(rows[j].day)
			}
			return rows[i].start < rows[j].start
		})
	}

	out := make([]FlatTask, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.task)
	}
	return out, nil
}

type Page struct {
	Number     int        `json:"page"`
	Tasks      []FlatTask `json:"tasks"`
	TotalHours float64    `json:"totalHours"`
}

type Pagination struct {
	Pages      []Page `json:"pages"`
	TotalPages int    `json:"totalPages"`
}

// Paginate packs whole days into pages of at most pageSize tasks. A day is
// never split: one that does not fit the current page starts a new page, and
// a day larger than pageSize gets a page of its own.
func Paginate(tasks []FlatTask, pageSize int) (Pagination, error) {
	if pageSize <= 0 {
		return Pagination{}, ErrInvalidPageSize
	}

	order := make([]string, 0)
	byDay := make(map[string][]FlatTask)
	for _, task := range tasks {
		key := timeutil.DayKey(task.EntryDate)
		if _, seen := byDay[key]; !seen {
			order = append(order, key)
		}
		byDay[key] = append(byDay[key], task)
	}

	result := Pagination{Pages: []Page{}}
	current := make([]FlatTask, 0, pageSize)
	flush := func() {
		result.Pages = append(result.Pages, newPage(len(result.Pages)+1, current))
		current = make([]FlatTask, 0, pageSize)
	}

	for _, key := range order {
		day := byDay[key]
		if len(current) > 0 && len(current)+len(day) > pageSize {
			flush()
		}
		current = append(current, day...)
	}
	if len(current) > 0 {
		flush()
	}

	result.TotalPages = len(result.Pages)
	return result, nil
}

// Page returns the 1-based page number, or an empty page when out of range.
func (p Pagination) Page(number int) Page {
	if number < 1 || number > len(p.Pages) {
		return Page{Number: number, Tasks: []FlatTask{}}
	}
	return p.Pages[number-1]
}

func newPage(number int, tasks []FlatTask) Page {
	page := Page{Number: number, Tasks: tasks}
	seen := make(map[string]struct{}, len(tasks))
	for i := range page.Tasks {
		key := timeutil.DayKey(page.Tasks[i].EntryDate)
		_, ok := seen[key]
		page.Tasks[i].FirstOfDay = !ok
		seen[key] = struct{}{}
		page.TotalHours += page.Tasks[i].HoursRendered
	}
	return page
}
