package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/admin"
	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/employee"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*admin.Admin, error)
	Create(ctx context.Context, a admin.Admin) (*admin.Admin, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]admin.Admin, error)
}

// EmployeeDirectory is the slice of the employee store the login flow needs.
type EmployeeDirectory interface {
	FindByEmail(ctx context.Context, email string) (*employee.Employee, error)
}

type Handler struct {
	Admins        AdminStore
	Employees     EmployeeDirectory
	Secret        string
	SecureCookies bool
}

func NewHandler(admins AdminStore, employees EmployeeDirectory, secret string, secureCookies bool) *Handler {
	return &Handler{Admins: admins, Employees: employees, Secret: secret, SecureCookies: secureCookies}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/adminlogin", h.handleAdminLogin)
	r.Get("/auth/logout", h.handleLogout)
	r.Post("/employee/employee_login", h.handleEmployeeLogin)
	r.Get("/employee/logout", h.handleLogout)
	r.Get("/verify", h.handleVerify)

	r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/auth/create_admin", h.handleCreateAdmin)
	r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/auth/admin_count", h.handleAdminCount)
	r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/auth/admin_records", h.handleAdminRecords)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	account, err := h.Admins.FindByEmail(r.Context(), payload.Email)
	if errors.Is(err, admin.ErrNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	h.issueToken(w, r, auth.RoleAdmin, account.Email, account.ID, account.PasswordHash, payload.Password)
}

func (h *Handler) handleEmployeeLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	account, err := h.Employees.FindByEmail(r.Context(), payload.Email)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	h.issueToken(w, r, auth.RoleEmployee, account.Email, account.ID, account.PasswordHash, payload.Password)
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, role, email, id, hash, password string) {
	if err := auth.CheckPassword(hash, password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{Role: role, Email: email, UserID: id}, auth.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenTTL),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	api.Success(w, map[string]string{"role": role, "id": id, "token": token}, middleware.GetRequestID(r.Context()))
}

// handleLogout clears the cookie only. Tokens are stateless and there is no
// revocation list, so a copied token stays valid until it expires.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	raw := middleware.TokenFromRequest(r)
	if raw == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "not authenticated", middleware.GetRequestID(r.Context()))
		return
	}

	claims, err := auth.ParseToken(h.Secret, raw)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_token", "invalid token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"role": claims.Role, "id": claims.UserID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var payload createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to hash password", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Admins.Create(r.Context(), admin.Admin{Name: payload.Name, Email: payload.Email, PasswordHash: hash})
	if errors.Is(err, admin.ErrEmailTaken) {
		api.Fail(w, http.StatusBadRequest, "email_taken", "email already registered", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdminCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Admins.Count(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"admin": count}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdminRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.Admins.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}
