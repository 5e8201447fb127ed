package web

import (
	"net/http"
	"sort"

	"ojtlog/internal/timeutil"
	"ojtlog/ojt"
	"ojtlog/reconcile"
	"ojtlog/report"
	"ojtlog/storage"

	"github.com/go-chi/chi/v5"
)

type replaceResponse struct {
	Entry   *ojt.Entry `json:"entry,omitempty"`
	Deleted bool       `json:"deleted"`
}

type taskPageResponse struct {
	Sort       report.SortMode   `json:"sort"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	TotalHours float64           `json:"totalHours"`
	Tasks      []report.FlatTask `json:"tasks"`
}

type calendarMonthResponse struct {
	Month      string                `json:"month"`
	Days       []report.DayBucket    `json:"days"`
	TotalHours float64               `json:"totalHours"`
	OOO        map[string][]ojt.Note `json:"ooo"`
}

type calendarDayResponse struct {
	report.DayDetail
	OOO []ojt.Note `json:"ooo"`
}

// handleListEntries returns entries newest day first, each entry's tasks
// newest created first.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	for i := range entries {
		tasks := entries[i].Tasks
		sort.SliceStable(tasks, func(a, b int) bool {
			return tasks[a].CreatedAt.After(tasks[b].CreatedAt)
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	entry, err := req.toEntry("")
	if err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.store.CreateEntry(r.Context(), ownerFrom(r.Context()), entry)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleReplaceEntry swaps the entry's fields and task list. An empty task
// list removes the entry.
func (s *Server) handleReplaceEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	entry, err := req.toEntry(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.store.ReplaceEntry(r.Context(), ownerFrom(r.Context()), entry)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if len(updated.Tasks) == 0 {
		writeJSON(w, http.StatusOK, replaceResponse{Deleted: true})
		return
	}
	writeJSON(w, http.StatusOK, replaceResponse{Entry: &updated})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEntry(r.Context(), ownerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	entryDeleted, err := s.store.DeleteTask(r.Context(), ownerFrom(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"entryDeleted": entryDeleted})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode, err := report.ParseSortMode(query.Get("sort"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := parsePositiveInt(query.Get("page"), 1)
	if err != nil {
		respondError(w, r, err)
		return
	}
	pageSize, err := parsePositiveInt(query.Get("pageSize"), s.cfg.Tracking.PageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries, err := s.store.ListEntries(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	tasks, err := report.FlattenAndSort(entries, mode)
	if err != nil {
		respondError(w, r, err)
		return
	}
	pagination, err := report.Paginate(tasks, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	current := pagination.Page(page)
	writeJSON(w, http.StatusOK, taskPageResponse{
		Sort:       mode,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pagination.TotalPages,
		TotalHours: current.TotalHours,
		Tasks:      current.Tasks,
	})
}

// handleListOverlaps lists task pairs whose spans intersect on the same day.
func (s *Server) handleListOverlaps(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	overlaps, err := reconcile.FindOverlaps(entries)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overlaps)
}

func (s *Server) handleCalendarMonth(w http.ResponseWriter, r *http.Request) {
	month, err := timeutil.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "month must be YYYY-MM")
		return
	}
	owner := ownerFrom(r.Context())
	start := timeutil.StartOfMonth(month)
	end := timeutil.EndOfMonth(start)

	entries, err := s.store.ListEntriesInRange(r.Context(), owner, storage.DateRange{From: start, To: end})
	if err != nil {
		respondError(w, r, err)
		return
	}
	ooo, err := s.oooInRange(r, owner, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}

	days := report.MonthDays(start, report.GroupByDay(entries))
	total := 0.0
	for _, day := range days {
		total += day.TotalHours
	}
	writeJSON(w, http.StatusOK, calendarMonthResponse{
		Month:      start.Format(timeutil.MonthLayout),
		Days:       days,
		TotalHours: total,
		OOO:        ooo,
	})
}

func (s *Server) handleCalendarDay(w http.ResponseWriter, r *http.Request) {
	day, err := timeutil.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}
	owner := ownerFrom(r.Context())

	entries, err := s.store.ListEntriesInRange(r.Context(), owner, storage.DateRange{From: day, To: day})
	if err != nil {
		respondError(w, r, err)
		return
	}
	detail, err := report.TasksForDay(entries, day)
	if err != nil {
		respondError(w, r, err)
		return
	}
	ooo, err := s.oooInRange(r, owner, day, day)
	if err != nil {
		respondError(w, r, err)
		return
	}

	notes := ooo[timeutil.DayKey(day)]
	if notes == nil {
		notes = []ojt.Note{}
	}
	writeJSON(w, http.StatusOK, calendarDayResponse{DayDetail: detail, OOO: notes})
}
