package importer

import (
	"fmt"
	"strings"
	"time"

	"ojtlog/ojt"
)

// Row is one task read from a timesheet, before grouping into entries.
type Row struct {
	Date            time.Time
	Supervisor      string
	LearningOutcome string
	Task            ojt.Task
}

type Mapper struct {
	// DefaultSupervisor fills rows that have no supervisor column or value.
	DefaultSupervisor string
}

// Map converts one record. ok is false for rows that carry no task, such as
// subtotal and spacer rows of an exported sheet.
func (m *Mapper) Map(record Record) (Row, bool, error) {
	if record.Blank() {
		return Row{}, false, nil
	}

	dateValue := record.Get("date", "entrydate")
	taskName := record.Get("task", "taskname", "description")
	if dateValue == "" || taskName == "" {
		return Row{}, false, nil
	}

	date, err := parseDate(dateValue)
	if err != nil {
		return Row{}, false, fmt.Errorf("row %d: parse date: %w", record.RowNumber, err)
	}
	timeIn, err := parseClock(record.Get("timein", "start"))
	if err != nil {
		return Row{}, false, fmt.Errorf("row %d: parse time in: %w", record.RowNumber, err)
	}
	timeOut, err := parseClock(record.Get("timeout", "end"))
	if err != nil {
		return Row{}, false, fmt.Errorf("row %d: parse time out: %w", record.RowNumber, err)
	}
	category, err := parseCategory(record.Get("category"))
	if err != nil {
		return Row{}, false, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}
	status, err := parseStatus(record.Get("status"))
	if err != nil {
		return Row{}, false, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}

	supervisor := record.Get("supervisor")
	if supervisor == "" {
		supervisor = strings.TrimSpace(m.DefaultSupervisor)
	}
	outcome := record.Get("learningoutcome", "notes")
	if outcome == "-" {
		outcome = ""
	}

	return Row{
		Date:            date,
		Supervisor:      supervisor,
		LearningOutcome: outcome,
		Task: ojt.Task{
			TimeIn:   timeIn,
			TimeOut:  timeOut,
			Name:     taskName,
			Category: category,
			Status:   status,
		},
	}, true, nil
}
