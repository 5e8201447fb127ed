package web

import (
	"errors"
	"net/http"
	"time"

	"ojtlog/auth"
	"ojtlog/ojt"
)

const stateCookie = "ojtlog_oauth_state"

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      ojt.User  `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ojt.ErrNotFound) {
			respondError(w, r, auth.ErrInvalidCredentials)
			return
		}
		respondError(w, r, err)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		respondError(w, r, err)
		return
	}

	s.writeToken(w, r, user)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		writeError(w, r, http.StatusNotFound, "NOT_CONFIGURED", "google sign-in is not configured")
		return
	}

	state, err := auth.NewState()
	if err != nil {
		respondError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.google.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		writeError(w, r, http.StatusNotFound, "NOT_CONFIGURED", "google sign-in is not configured")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeError(w, r, http.StatusUnauthorized, "INVALID_STATE", "sign-in state mismatch")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/api/auth/google", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "missing authorization code")
		return
	}

	profile, err := s.google.Exchange(r.Context(), code)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
		return
	}

	user, err := s.store.EnsureUser(r.Context(), profile.Email, profile.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.writeToken(w, r, user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUserByID(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) writeToken(w http.ResponseWriter, r *http.Request, user ojt.User) {
	token, expires, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expires, User: user})
}
