package output

import (
	"sort"

	"ojtlog/hours"
	"ojtlog/internal/timeutil"
	"ojtlog/ojt"
)

const (
	dateLayout      = "Jan 2, 2006"
	createdAtLayout = "Jan 2, 2006, 03:04 PM"
)

// Headers is the column order shared by every export format.
var Headers = []string{"Date", "Day", "Task", "Time In", "Time Out", "Hours Rendered", "Category", "Learning Outcome", "Created At"}

type RowKind int

const (
	RowTask RowKind = iota
	RowSubtotal
	RowSpacer
	RowGrandTotal
)

type Row struct {
	Kind            RowKind
	Date            string
	Day             string
	Task            string
	TimeIn          string
	TimeOut         string
	Duration        string
	Category        string
	LearningOutcome string
	CreatedAt       string
}

// Values returns the row's cells in Headers order.
func (r Row) Values() []string {
	return []string{r.Date, r.Day, r.Task, r.TimeIn, r.TimeOut, r.Duration, r.Category, r.LearningOutcome, r.CreatedAt}
}

type exportTask struct {
	task    ojt.Task
	outcome string
}

// BuildRows lays out entries for export: days newest first, each day's tasks
// newest created first, then a subtotal row and a blank spacer row per day,
// and one grand total row at the end. Totals come from task hours, never from
// stored entry totals.
func BuildRows(entries []ojt.Entry) []Row {
	order := make([]string, 0)
	days := make(map[string][]exportTask)
	labels := make(map[string][2]string)
	for _, entry := range entries {
		key := timeutil.DayKey(entry.Date)
		if _, ok := labels[key]; !ok {
			order = append(order, key)
			labels[key] = [2]string{entry.Date.Format(dateLayout), entry.Date.Weekday().String()}
		}
		for _, task := range entry.Tasks {
			days[key] = append(days[key], exportTask{task: task, outcome: entry.LearningOutcome()})
		}
	}
	// Day keys sort lexically in date order.
	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	rows := make([]Row, 0)
	grandTotal := 0.0
	for _, key := range order {
		tasks := days[key]
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].task.CreatedAt.After(tasks[j].task.CreatedAt)
		})

		dayTotal := 0.0
		date, weekday := labels[key][0], labels[key][1]
		for _, item := range tasks {
			rows = append(rows, Row{
				Kind:            RowTask,
				Date:            date,
				Day:             weekday,
				Task:            item.task.Name,
				TimeIn:          item.task.TimeIn,
				TimeOut:         item.task.TimeOut,
				Duration:        hours.FormatHoursMinutes(item.task.HoursRendered),
				Category:        string(item.task.Category),
				LearningOutcome: item.outcome,
				CreatedAt:       item.task.CreatedAt.Local().Format(createdAtLayout),
			})
			dayTotal += item.task.HoursRendered
		}
		grandTotal += dayTotal

		rows = append(rows,
			Row{Kind: RowSubtotal, Task: "TOTAL FOR " + date, Duration: hours.FormatHoursMinutes(dayTotal)},
			Row{Kind: RowSpacer},
		)
	}

	rows = append(rows, Row{Kind: RowGrandTotal, Task: "GRAND TOTAL", Duration: hours.FormatHoursMinutes(grandTotal)})
	return rows
}
