// Package ojt holds the training-log records shared by storage, reporting,
// export and the HTTP API.
package ojt

import (
	"errors"
	"time"
)

// DefaultRequiredHours is the target assigned to settings created on first read.
const DefaultRequiredHours = 500

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmptyEntry = errors.New("entry must contain at least one task")
)

type Category string

const (
	CategoryLearning      Category = "Learning"
	CategoryDevelopment   Category = "Development/Coding"
	CategoryProjectWork   Category = "Project Work"
	CategoryAdmin         Category = "Admin"
	CategoryMeeting       Category = "Meeting"
	CategoryResearch      Category = "Research"
	CategoryDocumentation Category = "Documentation"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryLearning,
	CategoryDevelopment,
	CategoryProjectWork,
	CategoryAdmin,
	CategoryMeeting,
	CategoryResearch,
	CategoryDocumentation,
}

func (c Category) Valid() bool {
	for _, candidate := range Categories {
		if c == candidate {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusCompleted     Status = "Completed"
	StatusInProgress    Status = "In Progress"
	StatusPendingReview Status = "Pending Review"
	StatusApproved      Status = "Approved"
)

var Statuses = []Status{
	StatusCompleted,
	StatusInProgress,
	StatusPendingReview,
	StatusApproved,
}

func (s Status) Valid() bool {
	for _, candidate := range Statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// Task is one block of work inside a day's entry.
type Task struct {
	ID            string    `json:"id"`
	TimeIn        string    `json:"timeIn"`
	TimeOut       string    `json:"timeOut"`
	HoursRendered float64   `json:"hoursRendered"`
	Name          string    `json:"taskName"`
	Category      Category  `json:"category"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Entry groups the tasks logged for one calendar day under one supervisor.
type Entry struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Tasks      []Task    `json:"tasks"`
	Supervisor string    `json:"supervisor"`
	Notes      string    `json:"notes,omitempty"`
	TotalHours float64   `json:"totalHours"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SumHours returns the total of the entry's task hours. Stored totals are
// never trusted; callers use this instead.
func (e Entry) SumHours() float64 {
	total := 0.0
	for _, task := range e.Tasks {
		total += task.HoursRendered
	}
	return total
}

// LearningOutcome is the entry notes as shown in day details and exports.
func (e Entry) LearningOutcome() string {
	if e.Notes == "" {
		return "-"
	}
	return e.Notes
}

type NoteType string

const (
	NoteRegular NoteType = "regular"
	NoteOOO     NoteType = "ooo"
)

func (t NoteType) Valid() bool {
	return t == NoteRegular || t == NoteOOO
}

// Note is a free-form note or an out-of-office record.
type Note struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Type         NoteType   `json:"type"`
	OOODate      *time.Time `json:"oooDate,omitempty"`
	OOOTimeStart string     `json:"oooTimeStart,omitempty"`
	OOOTimeEnd   string     `json:"oooTimeEnd,omitempty"`
	FullDay      bool       `json:"isOneDay"`
	UserID       string     `json:"userId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Settings is the per-user progress configuration.
type Settings struct {
	UserID        string     `json:"userId"`
	RequiredHours float64    `json:"requiredHours"`
	StudentName   string     `json:"studentName"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

// Stats is derived progress against the required-hours target.
type Stats struct {
	RequiredHours      float64 `json:"totalHours"`
	CompletedHours     float64 `json:"completedHours"`
	RemainingHours     float64 `json:"remainingHours"`
	ProgressPercentage float64 `json:"progressPercentage"`
	EntryCount         int     `json:"entriesCount"`
}

// User is an account known to the identity provider.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
