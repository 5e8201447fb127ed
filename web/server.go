// Package web serves the JSON API. Every route under /api except sign-in and
// theme requires a bearer token, and every record handler passes the token's
// user id to storage as the owner.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ojtlog/auth"
	"ojtlog/config"
	"ojtlog/hours"
	"ojtlog/ojt"
	"ojtlog/report"
	"ojtlog/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

type Server struct {
	store  *storage.Store
	issuer *auth.Issuer
	google *auth.GoogleProvider
	cfg    config.Config
	router chi.Router
	now    func() time.Time
}

// NewServer wires the API routes. google may be nil when Google sign-in is
// not configured.
func NewServer(store *storage.Store, issuer *auth.Issuer, google *auth.GoogleProvider, cfg config.Config) http.Handler {
	s := &Server{
		store:  store,
		issuer: issuer,
		google: google,
		cfg:    cfg,
		now:    time.Now,
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Get("/auth/google/login", s.handleGoogleLogin)
		r.Get("/auth/google/callback", s.handleGoogleCallback)

		r.Get("/theme", s.handleTheme)
		r.Post("/theme/toggle", s.handleThemeToggle)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/me", s.handleMe)

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", s.handleListEntries)
				r.Post("/", s.handleCreateEntry)
				r.Put("/{id}", s.handleReplaceEntry)
				r.Delete("/{id}", s.handleDeleteEntry)
				r.Delete("/{id}/tasks/{taskID}", s.handleDeleteTask)
			})

			r.Get("/tasks", s.handleListTasks)
			r.Get("/tasks/overlaps", s.handleListOverlaps)
			r.Get("/stats", s.handleStats)
			r.Get("/reports", s.handleReports)
			r.Get("/calendar/{month}", s.handleCalendarMonth)
			r.Get("/calendar/day/{date}", s.handleCalendarDay)
			r.Get("/ooo/{month}", s.handleOOOMonth)

			r.Get("/settings", s.handleGetSettings)
			r.Put("/settings", s.handleSaveSettings)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", s.handleListNotes)
				r.Post("/", s.handleCreateNote)
				r.Put("/{id}", s.handleUpdateNote)
				r.Delete("/{id}", s.handleDeleteNote)
			})

			r.Get("/export", s.handleExport)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: request body must contain a single JSON object", errBadRequest)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":       code,
			"message":    message,
			"request_id": middleware.GetReqID(r.Context()),
		},
	})
}

// respondError maps domain errors to statuses. Unknown errors are logged and
// reported without detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, ojt.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "record not found")
	case errors.As(err, &validationErrs):
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", describeValidation(validationErrs))
	case errors.Is(err, errBadRequest),
		errors.Is(err, ojt.ErrEmptyEntry),
		errors.Is(err, hours.ErrInvalidTimeFormat),
		errors.Is(err, report.ErrInvalidPageSize),
		errors.Is(err, report.ErrInvalidSortMode):
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, report.ErrInvalidTarget):
		writeError(w, r, http.StatusUnprocessableEntity, "INVALID_TARGET", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	default:
		log.Printf("request %s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func describeValidation(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return strings.Join(parts, "; ")
}

func parsePositiveInt(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errBadRequest, value)
	}
	if parsed < 1 {
		return 0, fmt.Errorf("%w: %q must be at least 1", errBadRequest, value)
	}
	return parsed, nil
}
