package report

import (
	"fmt"
	"sort"
	"time"

	"ojtlog/hours"
	"ojtlog/internal/timeutil"
	"ojtlog/ojt"
)

// DayBucket merges every entry that falls on one calendar day.
type DayBucket struct {
	Date       time.Time   `json:"date"`
	TotalHours float64     `json:"totalHours"`
	Count      int         `json:"count"`
	Entries    []ojt.Entry `json:"entries"`
}

// GroupByDay buckets entries by calendar day, keyed "2006-01-02". Any number
// of entries may share a day.
func GroupByDay(entries []ojt.Entry) map[string]DayBucket {
	out := make(map[string]DayBucket)
	for _, entry := range entries {
		key := timeutil.DayKey(entry.Date)
		bucket, ok := out[key]
		if !ok {
			bucket.Date = timeutil.StartOfDay(entry.Date)
		}
		entry.TotalHours = entry.SumHours()
		bucket.TotalHours += entry.TotalHours
		bucket.Count++
		bucket.Entries = append(bucket.Entries, entry)
		out[key] = bucket
	}
	return out
}

// DayTask is a task shown in a day's detail view.
type DayTask struct {
	ojt.Task
	EntryID         string    `json:"entryId"`
	EntryDate       time.Time `json:"entryDate"`
	LearningOutcome string    `json:"learningOutcome"`
}

type DayDetail struct {
	Date       time.Time `json:"date"`
	Tasks      []DayTask `json:"tasks"`
	TotalHours float64   `json:"totalHours"`
}

// TasksForDay lists the tasks of every entry on day, earliest time-in first.
func TasksForDay(entries []ojt.Entry, day time.Time) (DayDetail, error) {
	type timed struct {
		start int
		task  DayTask
	}

	detail := DayDetail{Date: timeutil.StartOfDay(day)}
	rows := make([]timed, 0)
	for _, entry := range entries {
		if !timeutil.SameDay(entry.Date, day) {
			continue
		}
		for _, task := range entry.Tasks {
			start, err := hours.ParseClock(task.TimeIn)
			if err != nil {
				return DayDetail{}, fmt.Errorf("task %s: %w", task.ID, err)
			}
			rows = append(rows, timed{start: start, task: DayTask{
				Task:            task,
				EntryID:         entry.ID,
				EntryDate:       entry.Date,
				LearningOutcome: entry.LearningOutcome(),
			}})
			detail.TotalHours += task.HoursRendered
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].start < rows[j].start
	})

	detail.Tasks = make([]DayTask, 0, len(rows))
	for _, row := range rows {
		detail.Tasks = append(detail.Tasks, row.task)
	}
	return detail, nil
}

// GroupNotesByDay buckets out-of-office notes by their OOO date. Notes of
// another type or without a date are left out.
func GroupNotesByDay(notes []ojt.Note) map[string][]ojt.Note {
	out := make(map[string][]ojt.Note)
	for _, note := range notes {
		if note.Type != ojt.NoteOOO || note.OOODate == nil {
			continue
		}
		key := timeutil.DayKey(*note.OOODate)
		out[key] = append(out[key], note)
	}
	return out
}

// MonthDays returns one bucket per calendar day of the month containing
// month, empty where nothing was logged.
func MonthDays(month time.Time, buckets map[string]DayBucket) []DayBucket {
	start := timeutil.StartOfMonth(month)
	end := timeutil.EndOfMonth(start)

	out := make([]DayBucket, 0, end.Day())
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if bucket, ok := buckets[timeutil.DayKey(day)]; ok {
			out = append(out, bucket)
			continue
		}
		out = append(out, DayBucket{Date: day, Entries: []ojt.Entry{}})
	}
	return out
}
