// Package reconcile compares task time spans: it finds tasks that overlap on
// the same day and matches imported tasks against stored ones.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"ojtlog/hours"
	"ojtlog/internal/timeutil"
	"ojtlog/ojt"
)

// TaskRef identifies a task in an overlap report. Imported tasks that are
// not stored yet have no ids.
type TaskRef struct {
	EntryID string `json:"entryId,omitempty"`
	TaskID  string `json:"taskId,omitempty"`
	Name    string `json:"taskName"`
	TimeIn  string `json:"timeIn"`
	TimeOut string `json:"timeOut"`
}

// Overlap is a pair of tasks on the same day whose spans intersect. First
// starts no later than Second.
type Overlap struct {
	Day    string  `json:"day"`
	First  TaskRef `json:"first"`
	Second TaskRef `json:"second"`
}

type interval struct {
	start int
	end   int
	ref   TaskRef
}

// FindOverlaps reports every intersecting pair of tasks, ordered by day and
// then start time. Touching spans (one ends when the next starts) and
// zero-length spans do not overlap.
func FindOverlaps(entries []ojt.Entry) ([]Overlap, error) {
	byDay, err := groupByDay(entries)
	if err != nil {
		return nil, err
	}

	out := make([]Overlap, 0)
	for _, day := range sortedKeys(byDay) {
		spans := byDay[day]
		sortIntervals(spans)
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				if spans[j].start >= spans[i].end {
					break
				}
				out = append(out, Overlap{Day: day, First: spans[i].ref, Second: spans[j].ref})
			}
		}
	}
	return out, nil
}

// Plan is the result of matching incoming entries against stored ones.
type Plan struct {
	Entries    []ojt.Entry
	Duplicates int
	Overlaps   []Overlap
}

// PlanImport drops incoming tasks that are already stored, or repeated
// earlier in incoming, with the same day, times and name. Entries left
// without tasks are dropped. Kept tasks that intersect a stored task are
// reported in Overlaps but still imported.
func PlanImport(incoming, existing []ojt.Entry) (Plan, error) {
	stored, err := groupByDay(existing)
	if err != nil {
		return Plan{}, err
	}

	seen := make(map[string]struct{})
	for day, spans := range stored {
		for _, span := range spans {
			seen[taskKey(day, span.start, span.end, span.ref.Name)] = struct{}{}
		}
	}

	plan := Plan{Entries: make([]ojt.Entry, 0, len(incoming)), Overlaps: make([]Overlap, 0)}
	for _, entry := range incoming {
		day := timeutil.DayKey(entry.Date)
		kept := make([]ojt.Task, 0, len(entry.Tasks))
		for _, task := range entry.Tasks {
			candidate, err := newInterval(entry, task)
			if err != nil {
				return Plan{}, err
			}
			key := taskKey(day, candidate.start, candidate.end, task.Name)
			if _, dup := seen[key]; dup {
				plan.Duplicates++
				continue
			}
			seen[key] = struct{}{}
			kept = append(kept, task)

			for _, span := range stored[day] {
				if candidate.start < span.end && span.start < candidate.end {
					plan.Overlaps = append(plan.Overlaps, Overlap{Day: day, First: span.ref, Second: candidate.ref})
					break
				}
			}
		}
		if len(kept) == 0 {
			continue
		}
		entry.Tasks = kept
		plan.Entries = append(plan.Entries, entry)
	}
	return plan, nil
}

func groupByDay(entries []ojt.Entry) (map[string][]interval, error) {
	byDay := make(map[string][]interval)
	for _, entry := range entries {
		day := timeutil.DayKey(entry.Date)
		for _, task := range entry.Tasks {
			span, err := newInterval(entry, task)
			if err != nil {
				return nil, err
			}
			if span.end <= span.start {
				continue
			}
			byDay[day] = append(byDay[day], span)
		}
	}
	return byDay, nil
}

func newInterval(entry ojt.Entry, task ojt.Task) (interval, error) {
	start, err := hours.ParseClock(task.TimeIn)
	if err != nil {
		return interval{}, fmt.Errorf("task %q on %s: %w", task.Name, timeutil.DayKey(entry.Date), err)
	}
	end, err := hours.ParseClock(task.TimeOut)
	if err != nil {
		return interval{}, fmt.Errorf("task %q on %s: %w", task.Name, timeutil.DayKey(entry.Date), err)
	}
	return interval{
		start: start,
		end:   end,
		ref: TaskRef{
			EntryID: entry.ID,
			TaskID:  task.ID,
			Name:    task.Name,
			TimeIn:  task.TimeIn,
			TimeOut: task.TimeOut,
		},
	}, nil
}

func sortIntervals(spans []interval) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start == spans[j].start {
			return spans[i].end < spans[j].end
		}
		return spans[i].start < spans[j].start
	})
}

func sortedKeys(values map[string][]interval) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func taskKey(day string, start, end int, name string) string {
	return fmt.Sprintf("%s|%d|%d|%s", day, start, end, strings.ToLower(strings.TrimSpace(name)))
}
