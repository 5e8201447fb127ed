package web

import (
	"fmt"
	"strings"
	"time"

	"ojtlog/hours"
	"ojtlog/internal/timeutil"
	"ojtlog/ojt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return ojt.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return ojt.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := hours.ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := timeutil.ParseDay(fl.Field().String())
		return err == nil
	})
	return v
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type taskRequest struct {
	ID       string `json:"id"`
	TimeIn   string `json:"timeIn" validate:"required,clock"`
	TimeOut  string `json:"timeOut" validate:"required,clock"`
	TaskName string `json:"taskName" validate:"required,max=500"`
	Category string `json:"category" validate:"required,category"`
	Status   string `json:"status" validate:"omitempty,status"`
}

type entryRequest struct {
	Date       string        `json:"date" validate:"required,day"`
	Supervisor string        `json:"supervisor" validate:"required,max=200"`
	Notes      string        `json:"notes" validate:"max=5000"`
	Tasks      []taskRequest `json:"tasks" validate:"dive"`
}

func (req entryRequest) toEntry(id string) (ojt.Entry, error) {
	if err := validate.Struct(req); err != nil {
		return ojt.Entry{}, err
	}

	date, _ := timeutil.ParseDay(req.Date)
	entry := ojt.Entry{
		ID:         id,
		Date:       date,
		Supervisor: strings.TrimSpace(req.Supervisor),
		Notes:      strings.TrimSpace(req.Notes),
		Tasks:      make([]ojt.Task, 0, len(req.Tasks)),
	}
	for _, task := range req.Tasks {
		status := ojt.Status(task.Status)
		if status == "" {
			status = ojt.StatusCompleted
		}
		entry.Tasks = append(entry.Tasks, ojt.Task{
			ID:       task.ID,
			TimeIn:   strings.TrimSpace(task.TimeIn),
			TimeOut:  strings.TrimSpace(task.TimeOut),
			Name:     strings.TrimSpace(task.TaskName),
			Category: ojt.Category(task.Category),
			Status:   status,
		})
	}
	return entry, nil
}

type settingsRequest struct {
	RequiredHours float64 `json:"requiredHours" validate:"gt=0"`
	StudentName   string  `json:"studentName" validate:"max=200"`
	StartDate     string  `json:"startDate" validate:"omitempty,day"`
	EndDate       string  `json:"endDate" validate:"omitempty,day"`
}

func (req settingsRequest) toSettings(owner string) (ojt.Settings, error) {
	if err := validate.Struct(req); err != nil {
		return ojt.Settings{}, err
	}

	settings := ojt.Settings{
		UserID:        owner,
		RequiredHours: req.RequiredHours,
		StudentName:   strings.TrimSpace(req.StudentName),
		StartDate:     optionalDay(req.StartDate),
		EndDate:       optionalDay(req.EndDate),
	}
	if settings.StartDate != nil && settings.EndDate != nil && settings.EndDate.Before(*settings.StartDate) {
		return ojt.Settings{}, fmt.Errorf("%w: end date is before start date", errBadRequest)
	}
	return settings, nil
}

type noteRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Content      string `json:"content" validate:"required"`
	Type         string `json:"type" validate:"omitempty,oneof=regular ooo"`
	OOODate      string `json:"oooDate" validate:"omitempty,day"`
	OOOTimeStart string `json:"oooTimeStart" validate:"omitempty,clock"`
	OOOTimeEnd   string `json:"oooTimeEnd" validate:"omitempty,clock"`
	IsOneDay     bool   `json:"isOneDay"`
}

// toNote validates the request. An out-of-office note that is not a full
// day needs a start before its end.
func (req noteRequest) toNote(id string) (ojt.Note, error) {
	if err := validate.Struct(req); err != nil {
		return ojt.Note{}, err
	}

	note := ojt.Note{
		ID:      id,
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Type:    ojt.NoteType(req.Type),
	}
	if note.Type == "" {
		note.Type = ojt.NoteRegular
	}
	if note.Type != ojt.NoteOOO {
		return note, nil
	}

	note.OOODate = optionalDay(req.OOODate)
	if note.OOODate == nil {
		return ojt.Note{}, fmt.Errorf("%w: out-of-office notes need a date", errBadRequest)
	}
	note.FullDay = req.IsOneDay
	if note.FullDay {
		return note, nil
	}

	if req.OOOTimeStart == "" || req.OOOTimeEnd == "" {
		return ojt.Note{}, fmt.Errorf("%w: partial-day absences need a start and end time", errBadRequest)
	}
	start, _ := hours.ParseClock(req.OOOTimeStart)
	end, _ := hours.ParseClock(req.OOOTimeEnd)
	if start >= end {
		return ojt.Note{}, fmt.Errorf("%w: absence start must be before its end", errBadRequest)
	}
	note.OOOTimeStart = strings.TrimSpace(req.OOOTimeStart)
	note.OOOTimeEnd = strings.TrimSpace(req.OOOTimeEnd)
	return note, nil
}

func optionalDay(value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := timeutil.ParseDay(value)
	if err != nil {
		return nil
	}
	return &parsed
}
