package web

import (
	"bytes"
	"fmt"
	"net/http"

	"ojtlog/ojt"
	"ojtlog/output"
	"ojtlog/report"
)

type reportsResponse struct {
	Stats      ojt.Stats              `json:"stats"`
	Categories []report.CategoryHours `json:"categories"`
	Months     []report.MonthHours    `json:"months"`
	Settings   ojt.Settings           `json:"settings"`
}

// settingsFor returns the caller's settings, creating them with the
// configured defaults on first use.
func (s *Server) settingsFor(r *http.Request) (ojt.Settings, error) {
	owner := ownerFrom(r.Context())
	defaults := ojt.Settings{
		UserID:        owner,
		RequiredHours: s.cfg.Tracking.DefaultRequiredHours,
	}
	if user, err := s.store.GetUserByID(r.Context(), owner); err == nil {
		defaults.StudentName = user.Name
	}
	return s.store.GetOrCreateSettings(r.Context(), owner, defaults)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsFor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	entries, err := s.store.ListEntries(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	stats, err := report.ComputeStats(entries, settings.RequiredHours)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsFor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	entries, err := s.store.ListEntries(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	stats, err := report.ComputeStats(entries, settings.RequiredHours)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportsResponse{
		Stats:      stats,
		Categories: report.SortedCategories(report.CategoryBreakdown(entries), stats.CompletedHours),
		Months:     report.SortedMonths(report.MonthlyBreakdown(entries)),
		Settings:   settings,
	})
}

// handleExport renders the whole log before writing headers so a failed
// render still gets a JSON error.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	writer, err := output.WriterForFormat(format)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entries, err := s.store.ListEntries(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, entries); err != nil {
		respondError(w, r, fmt.Errorf("render %s export: %w", writer.Extension(), err))
		return
	}

	filename := output.Filename(s.cfg.Export.FilenamePrefix, writer.Extension(), s.now())
	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
