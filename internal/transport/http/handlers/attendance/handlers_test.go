package attendancehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/attendance"
	"peopledesk/internal/domain/auth"
	"peopledesk/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type fakeStore struct {
	records []attendance.Attendance
	nextID  int
}

func (f *fakeStore) Mark(_ context.Context, a attendance.Attendance) (*attendance.Attendance, error) {
	a.Date = attendance.StartOfDay(a.Date)
	for _, existing := range f.records {
		if existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) {
			return nil, attendance.ErrDuplicateDay
		}
	}
	f.nextID++
	a.ID = "att-" + string(rune('0'+f.nextID))
	a.CreatedAt = time.Now()
	f.records = append(f.records, a)
	return &a, nil
}

func (f *fakeStore) Report(context.Context) ([]attendance.Attendance, error) {
	return f.records, nil
}

func (f *fakeStore) ReportByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.EmployeeID != employeeID {
			continue
		}
		if !from.IsZero() && !to.IsZero() {
			lower, upper := attendance.RangeBounds(from, to)
			if a.Date.Before(lower) || a.Date.After(upper) {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Auth(testSecret))
	h.RegisterRoutes(r)
	return r
}

func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{Role: auth.RoleAdmin, Email: "a@example.com", UserID: "a1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func mark(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/mark_attendance", strings.NewReader(body))
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMarkAttendance(t *testing.T) {
	store := &fakeStore{}
	router := newRouter(NewHandler(store))

	rec := mark(t, router, `{"employee_id":"e1","date":"2026-03-02","status":"Present"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if len(store.records) != 1 || store.records[0].Status != attendance.StatusPresent {
		t.Fatalf("unexpected stored records %+v", store.records)
	}
}

func TestMarkAttendanceDuplicateDay(t *testing.T) {
	router := newRouter(NewHandler(&fakeStore{}))

	if rec := mark(t, router, `{"employee_id":"e1","date":"2026-03-02","status":"Present"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first mark: expected 201, got %d", rec.Code)
	}

	// same calendar day, different timestamp form
	rec := mark(t, router, `{"employee_id":"e1","date":"2026-03-02T15:04:05Z","status":"Absent"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("same day: expected 400, got %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "duplicate_record") {
		t.Fatalf("expected duplicate_record, got %s", rec.Body)
	}

	if rec := mark(t, router, `{"employee_id":"e1","date":"2026-03-03","status":"Present"}`); rec.Code != http.StatusCreated {
		t.Fatalf("next day: expected 201, got %d", rec.Code)
	}
}

func TestMarkAttendanceValidation(t *testing.T) {
	router := newRouter(NewHandler(&fakeStore{}))

	rec := mark(t, router, `{"employee_id":"e1","date":"2026-03-02","status":"Sleeping"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status: expected 400, got %d", rec.Code)
	}

	rec = mark(t, router, `{"date":"2026-03-02","status":"Present"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing employee_id: expected 400, got %d", rec.Code)
	}
}

func TestReportEmptyIs404(t *testing.T) {
	router := newRouter(NewHandler(&fakeStore{}))

	req := httptest.NewRequest(http.MethodGet, "/auth/attendance_report", nil)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestReportByEmployeeRange(t *testing.T) {
	store := &fakeStore{records: []attendance.Attendance{
		{ID: "a1", EmployeeID: "e1", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
		{ID: "a2", EmployeeID: "e1", Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), Status: attendance.StatusAbsent},
		{ID: "a3", EmployeeID: "e2", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
	}}
	router := newRouter(NewHandler(store))

	req := httptest.NewRequest(http.MethodGet, "/auth/attendance_report/e1?start_date=2026-03-01&end_date=2026-03-10", nil)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var env struct {
		Result []attendance.Attendance `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Result) != 1 || env.Result[0].ID != "a1" {
		t.Fatalf("unexpected result %+v", env.Result)
	}
}

func TestReportByEmployeeBadRange(t *testing.T) {
	router := newRouter(NewHandler(&fakeStore{}))

	req := httptest.NewRequest(http.MethodGet, "/auth/attendance_report/e1?start_date=2026-03-10&end_date=2026-03-01", nil)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rec.Code)
	}
}

func TestReportByEmployeeEmptyIs404(t *testing.T) {
	router := newRouter(NewHandler(&fakeStore{}))

	req := httptest.NewRequest(http.MethodGet, "/auth/attendance_report/e9", nil)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
