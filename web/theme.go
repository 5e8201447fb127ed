package web

import (
	"net/http"
	"strings"
	"time"
)

const themeCookie = "theme"

// Theme is the display preference. It is a plain value: toggling returns a
// new Theme and the preference is carried per client in a cookie.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme falls back to light for anything unrecognised.
func ParseTheme(value string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(value))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func themeFrom(r *http.Request) Theme {
	cookie, err := r.Cookie(themeCookie)
	if err != nil {
		return ThemeLight
	}
	return ParseTheme(cookie.Value)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]Theme{"theme": themeFrom(r)})
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	next := themeFrom(r).Toggle()
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    string(next),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]Theme{"theme": next})
}
