package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ojtlog/auth"
	"ojtlog/config"
	"ojtlog/ojt"
	"ojtlog/reconcile"
	"ojtlog/report"
	"ojtlog/storage"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-0123456789"

type testEnv struct {
	server *Server
	store  *storage.Store
	issuer *auth.Issuer
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	store, err := storage.Open(storage.DriverSQLite, filepath.Join(t.TempDir(), "web_test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.Config{
		Auth:     config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
		Tracking: config.TrackingConfig{DefaultRequiredHours: 500, PageSize: 10},
		Export:   config.ExportConfig{FilenamePrefix: "OJT_Time_Logs"},
	}
	issuer := auth.NewIssuer(testSecret, time.Hour)
	server := NewServer(store, issuer, nil, cfg).(*Server)
	server.now = func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.Local) }

	return testEnv{server: server, store: store, issuer: issuer}
}

// signIn creates a user and returns a bearer token for it.
func (env testEnv) signIn(t *testing.T, email, passwordHash string) (ojt.User, string) {
	t.Helper()

	user, err := env.store.CreateUser(context.Background(), ojt.User{Email: email, Name: "Student", PasswordHash: passwordHash})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, _, err := env.issuer.Issue(user.ID, user.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func (env testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch value := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(value))
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	env.server.ServeHTTP(res, req)
	return res
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(res.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", res.Body.String(), err)
	}
}

func expectStatus(t *testing.T, res *httptest.ResponseRecorder, want int) {
	t.Helper()
	if res.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, res.Code, res.Body.String())
	}
}

func errorCode(t *testing.T, res *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, res, &envelope)
	return envelope.Error.Code
}

func entryBody(date string, spans ...[2]string) map[string]any {
	tasks := make([]map[string]any, 0, len(spans))
	for i, span := range spans {
		tasks = append(tasks, map[string]any{
			"timeIn":   span[0],
			"timeOut":  span[1],
			"taskName": "task " + string(rune('a'+i)),
			"category": string(ojt.CategoryDevelopment),
		})
	}
	return map[string]any{
		"date":       date,
		"supervisor": "Ms. Cruz",
		"notes":      "learned routing",
		"tasks":      tasks,
	}
}

func (env testEnv) createEntry(t *testing.T, token string, body map[string]any) ojt.Entry {
	t.Helper()
	res := env.do(t, http.MethodPost, "/api/entries", token, body)
	expectStatus(t, res, http.StatusCreated)
	var entry ojt.Entry
	decodeBody(t, res, &entry)
	return entry
}

func TestAPI_RejectsMissingOrBadToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/api/entries", "", nil)
	expectStatus(t, res, http.StatusUnauthorized)
	if code := errorCode(t, res); code != "UNAUTHORIZED" {
		t.Fatalf("unexpected error code %q", code)
	}

	res = env.do(t, http.MethodGet, "/api/entries", "not-a-token", nil)
	expectStatus(t, res, http.StatusUnauthorized)

	past := time.Now().Add(-time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "someone",
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	res = env.do(t, http.MethodGet, "/api/entries", token, nil)
	expectStatus(t, res, http.StatusUnauthorized)
	if code := errorCode(t, res); code != "TOKEN_EXPIRED" {
		t.Fatalf("expected TOKEN_EXPIRED, got %q", code)
	}
}

func TestAPI_Login(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, _ := env.signIn(t, "Student@Example.com", hash)

	res := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "student@example.com", "password": "correct horse"})
	expectStatus(t, res, http.StatusOK)
	var login tokenResponse
	decodeBody(t, res, &login)
	if login.User.ID != user.ID || login.Token == "" {
		t.Fatalf("unexpected login response: %+v", login)
	}

	res = env.do(t, http.MethodGet, "/api/me", login.Token, nil)
	expectStatus(t, res, http.StatusOK)

	for _, body := range []map[string]string{
		{"email": "student@example.com", "password": "wrong horse"},
		{"email": "nobody@example.com", "password": "correct horse"},
	} {
		res := env.do(t, http.MethodPost, "/api/auth/login", "", body)
		expectStatus(t, res, http.StatusUnauthorized)
		if code := errorCode(t, res); code != "INVALID_CREDENTIALS" {
			t.Fatalf("expected INVALID_CREDENTIALS for %v, got %q", body, code)
		}
	}
}

func TestAPI_GoogleRoutesWithoutProvider(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	res := env.do(t, http.MethodGet, "/api/auth/google/login", "", nil)
	expectStatus(t, res, http.StatusNotFound)
}

func TestAPI_EntryLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")

	created := env.createEntry(t, token, entryBody("2024-06-10", [2]string{"08:00", "12:00"}, [2]string{"13:00", "17:30"}))
	if created.TotalHours != 8.5 || len(created.Tasks) != 2 {
		t.Fatalf("unexpected created entry: %+v", created)
	}

	res := env.do(t, http.MethodGet, "/api/entries", token, nil)
	expectStatus(t, res, http.StatusOK)
	var listed []ojt.Entry
	decodeBody(t, res, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("unexpected entries: %+v", listed)
	}

	replace := entryBody("2024-06-10", [2]string{"09:00", "10:00"})
	res = env.do(t, http.MethodPut, "/api/entries/"+created.ID, token, replace)
	expectStatus(t, res, http.StatusOK)
	var replaced replaceResponse
	decodeBody(t, res, &replaced)
	if replaced.Deleted || replaced.Entry == nil || len(replaced.Entry.Tasks) != 1 || replaced.Entry.TotalHours != 1 {
		t.Fatalf("unexpected replace response: %+v", replaced)
	}

	taskID := replaced.Entry.Tasks[0].ID
	res = env.do(t, http.MethodDelete, "/api/entries/"+created.ID+"/tasks/"+taskID, token, nil)
	expectStatus(t, res, http.StatusOK)
	var deleted map[string]bool
	decodeBody(t, res, &deleted)
	if !deleted["entryDeleted"] {
		t.Fatalf("expected entry removal with its last task, got %v", deleted)
	}

	res = env.do(t, http.MethodGet, "/api/entries", token, nil)
	decodeBody(t, res, &listed)
	if len(listed) != 0 {
		t.Fatalf("expected no entries, got %d", len(listed))
	}
}

func TestAPI_ReplaceWithNoTasksDeletesEntry(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")
	created := env.createEntry(t, token, entryBody("2024-06-10", [2]string{"08:00", "12:00"}))

	res := env.do(t, http.MethodPut, "/api/entries/"+created.ID, token, entryBody("2024-06-10"))
	expectStatus(t, res, http.StatusOK)
	var replaced replaceResponse
	decodeBody(t, res, &replaced)
	if !replaced.Deleted || replaced.Entry != nil {
		t.Fatalf("expected deletion, got %+v", replaced)
	}

	res = env.do(t, http.MethodDelete, "/api/entries/"+created.ID, token, nil)
	expectStatus(t, res, http.StatusNotFound)
}

func TestAPI_OwnerScoping(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, owner := env.signIn(t, "owner@example.com", "")
	_, other := env.signIn(t, "other@example.com", "")
	created := env.createEntry(t, owner, entryBody("2024-06-10", [2]string{"08:00", "12:00"}))

	res := env.do(t, http.MethodPut, "/api/entries/"+created.ID, other, entryBody("2024-06-10", [2]string{"08:00", "09:00"}))
	expectStatus(t, res, http.StatusNotFound)
	if code := errorCode(t, res); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %q", code)
	}
	res = env.do(t, http.MethodDelete, "/api/entries/"+created.ID, other, nil)
	expectStatus(t, res, http.StatusNotFound)

	res = env.do(t, http.MethodGet, "/api/entries", other, nil)
	var listed []ojt.Entry
	decodeBody(t, res, &listed)
	if len(listed) != 0 {
		t.Fatalf("other user sees %d entries", len(listed))
	}

	res = env.do(t, http.MethodDelete, "/api/entries/"+created.ID, owner, nil)
	expectStatus(t, res, http.StatusNoContent)
}

func TestAPI_EntryValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")

	badCategory := entryBody("2024-06-10", [2]string{"08:00", "12:00"})
	badCategory["tasks"].([]map[string]any)[0]["category"] = "Napping"

	cases := []struct {
		name string
		body any
	}{
		{name: "bad clock", body: entryBody("2024-06-10", [2]string{"25:00", "26:00"})},
		{name: "bad date", body: entryBody("June 10", [2]string{"08:00", "12:00"})},
		{name: "bad category", body: badCategory},
		{name: "no tasks", body: entryBody("2024-06-10")},
		{name: "unknown field", body: `{"date":"2024-06-10","supervisor":"x","bogus":1}`},
		{name: "not json", body: `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := env.do(t, http.MethodPost, "/api/entries", token, tc.body)
			expectStatus(t, res, http.StatusBadRequest)
			if code := errorCode(t, res); code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %q", code)
			}
		})
	}
}

func TestAPI_TasksArePaginatedByDay(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")
	for _, date := range []string{"2024-06-10", "2024-06-11", "2024-06-12"} {
		env.createEntry(t, token, entryBody(date, [2]string{"13:00", "14:00"}, [2]string{"08:00", "09:00"}))
	}

	res := env.do(t, http.MethodGet, "/api/tasks?sort=time&page=1&pageSize=4", token, nil)
	expectStatus(t, res, http.StatusOK)
	var page taskPageResponse
	decodeBody(t, res, &page)
	if page.TotalPages != 2 || len(page.Tasks) != 4 || page.TotalHours != 4 {
		t.Fatalf("unexpected first page: pages=%d tasks=%d hours=%.2f", page.TotalPages, len(page.Tasks), page.TotalHours)
	}
	wantTimes := []string{"08:00", "13:00", "08:00", "13:00"}
	wantFirst := []bool{true, false, true, false}
	for i, task := range page.Tasks {
		if task.TimeIn != wantTimes[i] || task.FirstOfDay != wantFirst[i] {
			t.Fatalf("task %d: got %s first=%v", i, task.TimeIn, task.FirstOfDay)
		}
	}
	if got := page.Tasks[0].EntryDate.Format("2006-01-02"); got != "2024-06-12" {
		t.Fatalf("expected newest day first, got %s", got)
	}

	res = env.do(t, http.MethodGet, "/api/tasks?page=2&pageSize=4", token, nil)
	decodeBody(t, res, &page)
	if page.Sort != report.SortCreated || len(page.Tasks) != 2 {
		t.Fatalf("unexpected second page: %+v", page)
	}

	for _, query := range []string{"sort=random", "pageSize=0", "pageSize=-1", "page=x", "page=0", "page=-3"} {
		res := env.do(t, http.MethodGet, "/api/tasks?"+query, token, nil)
		expectStatus(t, res, http.StatusBadRequest)
	}
}

func TestAPI_ListOverlaps(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")
	env.createEntry(t, token, entryBody("2024-06-10", [2]string{"08:00", "10:00"}))
	env.createEntry(t, token, entryBody("2024-06-10", [2]string{"09:00", "11:00"}, [2]string{"11:00", "12:00"}))

	res := env.do(t, http.MethodGet, "/api/tasks/overlaps", token, nil)
	expectStatus(t, res, http.StatusOK)
	var overlaps []reconcile.Overlap
	decodeBody(t, res, &overlaps)
	if len(overlaps) != 1 || overlaps[0].First.TimeIn != "08:00" || overlaps[0].Second.TimeIn != "09:00" {
		t.Fatalf("unexpected overlaps: %+v", overlaps)
	}
}

func TestAPI_StatsFollowSettings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")
	env.createEntry(t, token, entryBody("2024-06-10", [2]string{"08:00", "13:00"}))

	res := env.do(t, http.MethodGet, "/api/settings", token, nil)
	expectStatus(t, res, http.StatusOK)
	var settings ojt.Settings
	decodeBody(t, res, &settings)
	if settings.RequiredHours != 500 || settings.StudentName != "Student" {
		t.Fatalf("unexpected default settings: %+v", settings)
	}

	res = env.do(t, http.MethodPut, "/api/settings", token, map[string]any{"requiredHours": 10, "studentName": "Juan"})
	expectStatus(t, res, http.StatusOK)

	res = env.do(t, http.MethodGet, "/api/stats", token, nil)
	expectStatus(t, res, http.StatusOK)
	var stats ojt.Stats
	decodeBody(t, res, &stats)
	if stats.CompletedHours != 5 || stats.RemainingHours != 5 || stats.ProgressPercentage != 50 || stats.EntryCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	res = env.do(t, http.MethodGet, "/api/reports", token, nil)
	expectStatus(t, res, http.StatusOK)
	var reports reportsResponse
	decodeBody(t, res, &reports)
	if len(reports.Categories) != 1 || reports.Categories[0].Share != 100 {
		t.Fatalf("unexpected categories: %+v", reports.Categories)
	}
	if len(reports.Months) != 1 || reports.Months[0].Month != "Jun 2024" {
		t.Fatalf("unexpected months: %+v", reports.Months)
	}

	for _, body := range []map[string]any{
		{"requiredHours": 0},
		{"requiredHours": 10, "startDate": "2024-06-10", "endDate": "2024-06-01"},
	} {
		res := env.do(t, http.MethodPut, "/api/settings", token, body)
		expectStatus(t, res, http.StatusBadRequest)
	}
}

func TestAPI_CalendarMonthAndDay(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")
	env.createEntry(t, token, entryBody("2024-06-10", [2]string{"13:00", "15:00"}))
	env.createEntry(t, token, entryBody("2024-06-10", [2]string{"08:00", "09:30"}))
	env.createEntry(t, token, entryBody("2024-07-01", [2]string{"08:00", "09:00"}))

	res := env.do(t, http.MethodGet, "/api/calendar/2024-06", token, nil)
	expectStatus(t, res, http.StatusOK)
	var month calendarMonthResponse
	decodeBody(t, res, &month)
	if len(month.Days) != 30 || month.TotalHours != 3.5 {
		t.Fatalf("unexpected month: days=%d total=%.2f", len(month.Days), month.TotalHours)
	}
	if tenth := month.Days[9]; tenth.Count != 2 || tenth.TotalHours != 3.5 {
		t.Fatalf("unexpected bucket for the 10th: %+v", tenth)
	}

	res = env.do(t, http.MethodGet, "/api/calendar/day/2024-06-10", token, nil)
	expectStatus(t, res, http.StatusOK)
	var day calendarDayResponse
	decodeBody(t, res, &day)
	if len(day.Tasks) != 2 || day.Tasks[0].TimeIn != "08:00" || day.TotalHours != 3.5 {
		t.Fatalf("unexpected day detail: %+v", day.DayDetail)
	}

	res = env.do(t, http.MethodGet, "/api/calendar/June", token, nil)
	expectStatus(t, res, http.StatusBadRequest)
}

func TestAPI_NotesAndOutOfOffice(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")

	invalid := []map[string]any{
		{"title": "Sick", "content": "flu", "type": "ooo"},
		{"title": "Dentist", "content": "x", "type": "ooo", "oooDate": "2024-06-11", "oooTimeStart": "14:00", "oooTimeEnd": "13:00"},
		{"title": "Dentist", "content": "x", "type": "ooo", "oooDate": "2024-06-11"},
		{"title": "", "content": "x"},
		{"title": "Odd", "content": "x", "type": "holiday"},
	}
	for _, body := range invalid {
		res := env.do(t, http.MethodPost, "/api/notes", token, body)
		expectStatus(t, res, http.StatusBadRequest)
	}

	res := env.do(t, http.MethodPost, "/api/notes", token, map[string]any{
		"title": "Sick", "content": "flu", "type": "ooo", "oooDate": "2024-06-10", "isOneDay": true,
	})
	expectStatus(t, res, http.StatusCreated)
	var ooo ojt.Note
	decodeBody(t, res, &ooo)

	res = env.do(t, http.MethodPost, "/api/notes", token, map[string]any{"title": "Reading", "content": "chi docs"})
	expectStatus(t, res, http.StatusCreated)
	var regular ojt.Note
	decodeBody(t, res, &regular)
	if regular.Type != ojt.NoteRegular {
		t.Fatalf("expected regular default, got %q", regular.Type)
	}

	res = env.do(t, http.MethodGet, "/api/notes?type=ooo", token, nil)
	var notes []ojt.Note
	decodeBody(t, res, &notes)
	if len(notes) != 1 || notes[0].ID != ooo.ID {
		t.Fatalf("unexpected ooo notes: %+v", notes)
	}
	res = env.do(t, http.MethodGet, "/api/notes?type=other", token, nil)
	expectStatus(t, res, http.StatusBadRequest)

	res = env.do(t, http.MethodGet, "/api/ooo/2024-06", token, nil)
	expectStatus(t, res, http.StatusOK)
	var month oooMonthResponse
	decodeBody(t, res, &month)
	if len(month.Days["2024-06-10"]) != 1 || len(month.Days) != 1 {
		t.Fatalf("unexpected ooo month: %+v", month)
	}
	res = env.do(t, http.MethodGet, "/api/ooo/2024-07", token, nil)
	expectStatus(t, res, http.StatusOK)
	var july oooMonthResponse
	decodeBody(t, res, &july)
	if july.Month != "2024-07" || len(july.Days) != 0 {
		t.Fatalf("expected no july absences, got %+v", july)
	}

	res = env.do(t, http.MethodPut, "/api/notes/"+regular.ID, token, map[string]any{"title": "Reading", "content": "pgx docs"})
	expectStatus(t, res, http.StatusOK)
	res = env.do(t, http.MethodDelete, "/api/notes/"+regular.ID, token, nil)
	expectStatus(t, res, http.StatusNoContent)
	res = env.do(t, http.MethodDelete, "/api/notes/"+regular.ID, token, nil)
	expectStatus(t, res, http.StatusNotFound)
}

func TestAPI_ExportCSV(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.signIn(t, "student@example.com", "")
	env.createEntry(t, token, entryBody("2024-06-10", [2]string{"08:00", "12:00"}))

	res := env.do(t, http.MethodGet, "/api/export?format=csv", token, nil)
	expectStatus(t, res, http.StatusOK)
	if got := res.Header().Get("Content-Disposition"); got != `attachment; filename="OJT_Time_Logs_2024-06-15.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(res.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("unexpected content type %q", res.Header().Get("Content-Type"))
	}
	body := res.Body.String()
	if !strings.HasPrefix(body, `"Date","Day","Task"`) || !strings.Contains(body, `"GRAND TOTAL"`) {
		t.Fatalf("unexpected csv body:\n%s", body)
	}

	res = env.do(t, http.MethodGet, "/api/export?format=excel", token, nil)
	expectStatus(t, res, http.StatusOK)
	if got := res.Header().Get("Content-Disposition"); !strings.HasSuffix(got, `.xlsx"`) {
		t.Fatalf("unexpected excel disposition %q", got)
	}

	res = env.do(t, http.MethodGet, "/api/export?format=pdf", token, nil)
	expectStatus(t, res, http.StatusBadRequest)
}

func TestTheme_Toggle(t *testing.T) {
	t.Parallel()

	if ParseTheme("DARK") != ThemeDark || ParseTheme("") != ThemeLight || ParseTheme("blue") != ThemeLight {
		t.Fatalf("unexpected ParseTheme results")
	}
	light := ThemeLight
	dark := light.Toggle()
	if light != ThemeLight || dark != ThemeDark || dark.Toggle() != ThemeLight {
		t.Fatalf("toggle must return a new value")
	}

	env := newTestEnv(t)
	res := env.do(t, http.MethodPost, "/api/theme/toggle", "", nil)
	expectStatus(t, res, http.StatusOK)
	cookies := res.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != themeCookie || cookies[0].Value != "dark" {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	var payload map[string]Theme
	decodeBody(t, rec, &payload)
	if payload["theme"] != ThemeDark {
		t.Fatalf("expected dark theme, got %q", payload["theme"])
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	res := env.do(t, http.MethodGet, "/health", "", nil)
	expectStatus(t, res, http.StatusOK)
}
