package web

import (
	"net/http"
	"time"

	"ojtlog/internal/timeutil"
	"ojtlog/ojt"
	"ojtlog/report"

	"github.com/go-chi/chi/v5"
)

type oooMonthResponse struct {
	Month string                `json:"month"`
	Days  map[string][]ojt.Note `json:"days"`
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	noteType := ojt.NoteType(r.URL.Query().Get("type"))
	if noteType != "" && !noteType.Valid() {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "type must be regular or ooo")
		return
	}

	notes, err := s.store.ListNotes(r.Context(), ownerFrom(r.Context()), noteType)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	note, err := req.toNote("")
	if err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.store.CreateNote(r.Context(), ownerFrom(r.Context()), note)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	note, err := req.toNote(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.store.UpdateNote(r.Context(), ownerFrom(r.Context()), note)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteNote(r.Context(), ownerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOOOMonth(w http.ResponseWriter, r *http.Request) {
	month, err := timeutil.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "month must be YYYY-MM")
		return
	}
	start := timeutil.StartOfMonth(month)

	days, err := s.oooInRange(r, ownerFrom(r.Context()), start, timeutil.EndOfMonth(start))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, oooMonthResponse{Month: start.Format(timeutil.MonthLayout), Days: days})
}

// oooInRange groups the owner's out-of-office notes dated within [from, to]
// by day key.
func (s *Server) oooInRange(r *http.Request, owner string, from, to time.Time) (map[string][]ojt.Note, error) {
	notes, err := s.store.ListNotes(r.Context(), owner, ojt.NoteOOO)
	if err != nil {
		return nil, err
	}

	from, to = timeutil.StartOfDay(from), timeutil.StartOfDay(to)
	inRange := make([]ojt.Note, 0, len(notes))
	for _, note := range notes {
		if note.OOODate == nil {
			continue
		}
		day := timeutil.StartOfDay(*note.OOODate)
		if day.Before(from) || day.After(to) {
			continue
		}
		inRange = append(inRange, note)
	}
	return report.GroupNotesByDay(inRange), nil
}
