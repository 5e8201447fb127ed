package report

import (
	"errors"
	"testing"
	"time"

	"ojtlog/ojt"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func task(id, timeIn, timeOut string, hours float64, category ojt.Category, created time.Time) ojt.Task {
	return ojt.Task{
		ID:            id,
		TimeIn:        timeIn,
		TimeOut:       timeOut,
		HoursRendered: hours,
		Name:          "task " + id,
		Category:      category,
		Status:        ojt.StatusCompleted,
		CreatedAt:     created,
	}
}

// scenarioEntries is two entries on 2024-05-01 with three tasks in total.
func scenarioEntries() []ojt.Entry {
	created := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	return []ojt.Entry{
		{
			ID:   "e1",
			Date: day(2024, 5, 1),
			Tasks: []ojt.Task{
				task("t1", "09:00", "12:00", 3, ojt.CategoryLearning, created),
				task("t2", "13:00", "17:00", 4, ojt.CategoryDevelopment, created.Add(time.Minute)),
			},
			Notes: "learned routing",
		},
		{
			ID:   "e2",
			Date: day(2024, 5, 1),
			Tasks: []ojt.Task{
				task("t3", "08:00", "09:00", 1, ojt.CategoryMeeting, created.Add(2*time.Minute)),
			},
		},
	}
}

func TestComputeStats_Scenario(t *testing.T) {
	t.Parallel()

	stats, err := ComputeStats(scenarioEntries(), 100)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	assertFloatEqual(t, 8, stats.CompletedHours, "completed hours")
	assertFloatEqual(t, 92, stats.RemainingHours, "remaining hours")
	assertFloatEqual(t, 8, stats.ProgressPercentage, "progress")
	assertFloatEqual(t, 100, stats.RequiredHours, "required hours")
	if stats.EntryCount != 2 {
		t.Fatalf("expected 2 entries, got %d", stats.EntryCount)
	}
}

func TestComputeStats_IgnoresStaleStoredTotals(t *testing.T) {
	t.Parallel()

	entries := scenarioEntries()
	entries[0].TotalHours = 99
	entries[1].TotalHours = 0

	stats, err := ComputeStats(entries, 100)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	assertFloatEqual(t, 8, stats.CompletedHours, "completed hours")

	for _, entry := range Recompute(entries) {
		if entry.TotalHours != entry.SumHours() {
			t.Fatalf("entry %s: total %.2f does not match tasks %.2f", entry.ID, entry.TotalHours, entry.SumHours())
		}
	}
	if entries[0].TotalHours != 99 {
		t.Fatalf("expected input to be left untouched")
	}
}

func TestComputeStats_ClampsProgress(t *testing.T) {
	t.Parallel()

	for _, required := range []float64{0.5, 1, 7.99, 8, 10, 1000} {
		stats, err := ComputeStats(scenarioEntries(), required)
		if err != nil {
			t.Fatalf("compute stats: %v", err)
		}
		if stats.ProgressPercentage < 0 || stats.ProgressPercentage > 100 {
			t.Fatalf("progress %.2f out of range for required %.2f", stats.ProgressPercentage, required)
		}
		if stats.RemainingHours < 0 {
			t.Fatalf("remaining %.2f is negative for required %.2f", stats.RemainingHours, required)
		}
	}

	stats, _ := ComputeStats(scenarioEntries(), 4)
	assertFloatEqual(t, 100, stats.ProgressPercentage, "clamped progress")
	assertFloatEqual(t, 0, stats.RemainingHours, "remaining when exceeded")
}

func TestComputeStats_RejectsNonPositiveTarget(t *testing.T) {
	t.Parallel()

	for _, required := range []float64{0, -10} {
		if _, err := ComputeStats(scenarioEntries(), required); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("expected ErrInvalidTarget for %v, got %v", required, err)
		}
	}
}

func TestComputeStats_EmptyInput(t *testing.T) {
	t.Parallel()

	stats, err := ComputeStats(nil, 500)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	assertFloatEqual(t, 0, stats.CompletedHours, "completed hours")
	assertFloatEqual(t, 500, stats.RemainingHours, "remaining hours")
	assertFloatEqual(t, 0, stats.ProgressPercentage, "progress")
}

func TestCategoryBreakdown(t *testing.T) {
	t.Parallel()

	entries := scenarioEntries()
	entries[1].Tasks = append(entries[1].Tasks, task("t4", "17:00", "18:30", 1.5, ojt.CategoryLearning, time.Time{}))

	breakdown := CategoryBreakdown(entries)
	if len(breakdown) != 3 {
		t.Fatalf("expected 3 categories, got %d: %v", len(breakdown), breakdown)
	}
	assertFloatEqual(t, 4.5, breakdown[ojt.CategoryLearning], "learning")
	assertFloatEqual(t, 4, breakdown[ojt.CategoryDevelopment], "development")
	if _, ok := breakdown[ojt.CategoryAdmin]; ok {
		t.Fatalf("expected absent categories to stay absent")
	}

	sorted := SortedCategories(breakdown, 9.5)
	if sorted[0].Category != ojt.CategoryLearning {
		t.Fatalf("expected learning first, got %s", sorted[0].Category)
	}
	if sorted[2].Category != ojt.CategoryMeeting {
		t.Fatalf("expected meeting last, got %s", sorted[2].Category)
	}
}

func TestMonthlyBreakdown_UsesEntryDate(t *testing.T) {
	t.Parallel()

	entries := []ojt.Entry{
		{Date: day(2024, 4, 30), Tasks: []ojt.Task{task("a", "09:00", "11:00", 2, ojt.CategoryAdmin, time.Time{})}},
		{Date: day(2024, 5, 1), Tasks: []ojt.Task{task("b", "09:00", "10:00", 1, ojt.CategoryAdmin, time.Time{})}, TotalHours: 50},
		{Date: day(2024, 5, 31), Tasks: []ojt.Task{task("c", "09:00", "12:00", 3, ojt.CategoryAdmin, time.Time{})}},
	}

	breakdown := MonthlyBreakdown(entries)
	assertFloatEqual(t, 2, breakdown["Apr 2024"], "april")
	assertFloatEqual(t, 4, breakdown["May 2024"], "may")

	months := SortedMonths(breakdown)
	if len(months) != 2 || months[0].Month != "May 2024" || months[1].Month != "Apr 2024" {
		t.Fatalf("unexpected month order: %+v", months)
	}
}

func TestGroupByDay_MergesEntriesOnSameDay(t *testing.T) {
	t.Parallel()

	entries := append(scenarioEntries(), ojt.Entry{
		ID:    "e3",
		Date:  day(2024, 5, 2),
		Tasks: []ojt.Task{task("t9", "09:00", "10:00", 1, ojt.CategoryAdmin, time.Time{})},
	})

	buckets := GroupByDay(entries)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	first := buckets["2024-05-01"]
	if first.Count != 2 {
		t.Fatalf("expected count 2, got %d", first.Count)
	}
	assertFloatEqual(t, 8, first.TotalHours, "day total")
	if len(first.Entries) != 2 || first.Entries[0].ID != "e1" || first.Entries[1].ID != "e2" {
		t.Fatalf("expected both entries retained in input order, got %+v", first.Entries)
	}
}

func TestGroupByDay_TimeOfDayDoesNotSplitBucket(t *testing.T) {
	t.Parallel()

	entries := []ojt.Entry{
		{ID: "a", Date: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Date: time.Date(2024, 5, 31, 23, 30, 0, 0, time.UTC)},
		{ID: "c", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	buckets := GroupByDay(entries)
	if buckets["2024-05-31"].Count != 2 || buckets["2024-06-01"].Count != 1 {
		t.Fatalf("unexpected buckets: %+v", buckets)
	}
}

func TestTasksForDay_SortsByParsedTimeIn(t *testing.T) {
	t.Parallel()

	entries := []ojt.Entry{
		{
			ID:    "e1",
			Date:  day(2024, 5, 1),
			Notes: "",
			Tasks: []ojt.Task{
				task("late", "10:00", "11:00", 1, ojt.CategoryAdmin, time.Time{}),
				task("early", "9:00", "10:00", 1, ojt.CategoryAdmin, time.Time{}),
			},
		},
		{
			ID:    "e2",
			Date:  day(2024, 5, 1),
			Notes: "met the team",
			Tasks: []ojt.Task{task("first", "08:15", "09:00", 0.75, ojt.CategoryMeeting, time.Time{})},
		},
		{
			ID:    "other",
			Date:  day(2024, 5, 2),
			Tasks: []ojt.Task{task("skip", "07:00", "08:00", 1, ojt.CategoryAdmin, time.Time{})},
		},
	}

	detail, err := TasksForDay(entries, time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("tasks for day: %v", err)
	}

	want := []string{"first", "early", "late"}
	if len(detail.Tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(detail.Tasks))
	}
	for i, id := range want {
		if detail.Tasks[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, detail.Tasks[i].ID)
		}
	}
	if detail.Tasks[0].LearningOutcome != "met the team" || detail.Tasks[1].LearningOutcome != "-" {
		t.Fatalf("unexpected learning outcomes: %q, %q", detail.Tasks[0].LearningOutcome, detail.Tasks[1].LearningOutcome)
	}
	assertFloatEqual(t, 2.75, detail.TotalHours, "day total")
}

func TestTasksForDay_EmptyDay(t *testing.T) {
	t.Parallel()

	detail, err := TasksForDay(scenarioEntries(), day(2024, 6, 1))
	if err != nil {
		t.Fatalf("tasks for day: %v", err)
	}
	if len(detail.Tasks) != 0 || detail.TotalHours != 0 {
		t.Fatalf("expected empty day, got %+v", detail)
	}
}

func TestGroupNotesByDay_OnlyDatedOOONotes(t *testing.T) {
	t.Parallel()

	d := day(2024, 5, 3)
	notes := []ojt.Note{
		{ID: "ooo-1", Type: ojt.NoteOOO, OOODate: &d, FullDay: true},
		{ID: "ooo-2", Type: ojt.NoteOOO, OOODate: &d, OOOTimeStart: "13:00", OOOTimeEnd: "15:00"},
		{ID: "ooo-undated", Type: ojt.NoteOOO},
		{ID: "regular", Type: ojt.NoteRegular, OOODate: &d},
	}

	grouped := GroupNotesByDay(notes)
	if len(grouped) != 1 || len(grouped["2024-05-03"]) != 2 {
		t.Fatalf("unexpected grouping: %+v", grouped)
	}
}

func TestMonthDays_FillsEveryDay(t *testing.T) {
	t.Parallel()

	days := MonthDays(day(2024, 5, 17), GroupByDay(scenarioEntries()))
	if len(days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(days))
	}
	if days[0].Count != 2 {
		t.Fatalf("expected first day to carry both entries, got %d", days[0].Count)
	}
	if days[30].Count != 0 || days[30].Date.Day() != 31 {
		t.Fatalf("unexpected last day: %+v", days[30])
	}
}

func assertFloatEqual(t *testing.T, expected, actual float64, field string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("unexpected %s: expected %.4f, got %.4f", field, expected, actual)
	}
}
