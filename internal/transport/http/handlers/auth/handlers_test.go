package authhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/admin"
	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/employee"
	"peopledesk/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type fakeAdminStore struct {
	admins  map[string]*admin.Admin
	created []admin.Admin
}

func (f *fakeAdminStore) FindByEmail(_ context.Context, email string) (*admin.Admin, error) {
	if a, ok := f.admins[email]; ok {
		return a, nil
	}
	return nil, admin.ErrNotFound
}

func (f *fakeAdminStore) Create(_ context.Context, a admin.Admin) (*admin.Admin, error) {
	if _, ok := f.admins[a.Email]; ok {
		return nil, admin.ErrEmailTaken
	}
	a.ID = "admin-new"
	a.CreatedAt = time.Now()
	if f.admins == nil {
		f.admins = map[string]*admin.Admin{}
	}
	f.admins[a.Email] = &a
	f.created = append(f.created, a)
	return &a, nil
}

func (f *fakeAdminStore) Count(context.Context) (int, error) {
	return len(f.admins), nil
}

func (f *fakeAdminStore) List(context.Context) ([]admin.Admin, error) {
	var out []admin.Admin
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

type fakeEmployeeDirectory struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeDirectory) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	if e, ok := f.employees[email]; ok {
		return e, nil
	}
	return nil, employee.ErrNotFound
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return hash
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
	token, err := auth.GenerateToken(testSecret, auth.Claims{Role: auth.RoleAdmin, Email: "admin@example.com", UserID: "a1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

type envelope struct {
	Status bool           `json:"status"`
	Result map[string]any `json:"result"`
	Error  *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestAdminLoginSuccess(t *testing.T) {
	admins := &fakeAdminStore{admins: map[string]*admin.Admin{
		"admin@example.com": {ID: "a1", Email: "admin@example.com", PasswordHash: mustHash(t, "s3cret")},
	}}
	h := NewHandler(admins, &fakeEmployeeDirectory{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/adminlogin", strings.NewReader(`{"email":"admin@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	env := decodeEnvelope(t, rec)
	if !env.Status || env.Result["role"] != auth.RoleAdmin || env.Result["id"] != "a1" {
		t.Fatalf("unexpected envelope %+v", env)
	}

	var tokenCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			tokenCookie = c
		}
	}
	if tokenCookie == nil || tokenCookie.Value == "" {
		t.Fatal("expected token cookie to be set")
	}
	if !tokenCookie.HttpOnly {
		t.Fatal("token cookie must be http-only")
	}

	claims, err := auth.ParseToken(testSecret, tokenCookie.Value)
	if err != nil {
		t.Fatalf("cookie token invalid: %v", err)
	}
	if claims.Role != auth.RoleAdmin || claims.UserID != "a1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	admins := &fakeAdminStore{admins: map[string]*admin.Admin{
		"admin@example.com": {ID: "a1", Email: "admin@example.com", PasswordHash: mustHash(t, "s3cret")},
	}}
	h := NewHandler(admins, &fakeEmployeeDirectory{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/adminlogin", strings.NewReader(`{"email":"admin@example.com","password":"nope"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != "invalid_credentials" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	h := NewHandler(&fakeAdminStore{}, &fakeEmployeeDirectory{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/adminlogin", strings.NewReader(`{"email":"ghost@example.com","password":"x"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEmployeeLoginSuccess(t *testing.T) {
	employees := &fakeEmployeeDirectory{employees: map[string]*employee.Employee{
		"jane@example.com": {ID: "e1", Email: "jane@example.com", PasswordHash: mustHash(t, "pass1234")},
	}}
	h := NewHandler(&fakeAdminStore{}, employees, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/employee/employee_login", strings.NewReader(`{"email":"jane@example.com","password":"pass1234"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	env := decodeEnvelope(t, rec)
	if env.Result["role"] != auth.RoleEmployee || env.Result["id"] != "e1" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestVerify(t *testing.T) {
	h := NewHandler(&fakeAdminStore{}, &fakeEmployeeDirectory{}, testSecret, false)
	router := newRouter(h)

	// valid token
	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Result["role"] != auth.RoleAdmin || env.Result["id"] != "a1" {
		t.Fatalf("unexpected envelope %+v", env)
	}

	// missing token
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verify", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != "unauthenticated" {
		t.Fatalf("unexpected envelope %+v", env)
	}

	// invalid token
	req = httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != "invalid_token" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewHandler(&fakeAdminStore{}, &fakeEmployeeDirectory{}, testSecret, false)

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected token cookie to be expired")
	}
}

func TestCreateAdminRequiresAdminRole(t *testing.T) {
	h := NewHandler(&fakeAdminStore{}, &fakeEmployeeDirectory{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/create_admin", strings.NewReader(`{"email":"x@example.com","password":"p"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateAdminValidation(t *testing.T) {
	h := NewHandler(&fakeAdminStore{}, &fakeEmployeeDirectory{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/create_admin", strings.NewReader(`{"name":"No Password"}`))
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestCreateAdminHashesPassword(t *testing.T) {
	admins := &fakeAdminStore{}
	h := NewHandler(admins, &fakeEmployeeDirectory{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/create_admin", strings.NewReader(`{"name":"New","email":"new@example.com","password":"plaintext"}`))
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if len(admins.created) != 1 {
		t.Fatalf("expected 1 created admin, got %d", len(admins.created))
	}
	stored := admins.created[0]
	if stored.PasswordHash == "plaintext" {
		t.Fatal("password must be hashed before storage")
	}
	if err := auth.CheckPassword(stored.PasswordHash, "plaintext"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAdminCount(t *testing.T) {
	admins := &fakeAdminStore{admins: map[string]*admin.Admin{
		"a@example.com": {ID: "a1"},
		"b@example.com": {ID: "a2"},
	}}
	h := NewHandler(admins, &fakeEmployeeDirectory{}, testSecret, false)

	req := httptest.NewRequest(http.MethodGet, "/auth/admin_count", nil)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Result["admin"] != float64(2) {
		t.Fatalf("unexpected envelope %+v", env)
	}
}
