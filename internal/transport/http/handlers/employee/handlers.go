package employeehandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/employee"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type Store interface {
	Create(ctx context.Context, emp employee.Employee) (*employee.Employee, error)
	Get(ctx context.Context, id string) (*employee.Employee, error)
	List(ctx context.Context) ([]employee.Employee, error)
	Update(ctx context.Context, id string, emp employee.Employee) (*employee.Employee, error)
	Delete(ctx context.Context, id string) (*employee.Employee, error)
	Count(ctx context.Context) (int, error)
}

type ImageStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(name string) error
}

type Handler struct {
	Employees Store
	Images    ImageStore
}

func NewHandler(employees Store, images ImageStore) *Handler {
	return &Handler{Employees: employees, Images: images}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(auth.RoleAdmin)
	r.With(admin).Post("/auth/add_employee", h.handleCreate)
	r.With(admin).Post("/auth/create_employee", h.handleCreate)
	r.With(admin).Get("/auth/employee", h.handleList)
	r.With(admin).Get("/auth/employee/{id}", h.handleGet)
	r.With(admin).Put("/auth/edit_employee/{id}", h.handleUpdate)
	r.With(admin).Delete("/auth/delete_employee/{id}", h.handleDelete)
	r.With(admin).Get("/auth/employee_count", h.handleCount)

	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleEmployee)).
		Get("/employee/detail/{id}", h.handleGet)
}

const maxImageMemory = 8 << 20

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "expected multipart form data", requestID)
		return
	}

	salaryRaw := strings.TrimSpace(r.FormValue("salary"))

	v := shared.NewValidator()
	v.Required("name", r.FormValue("name"), "is required")
	v.Required("email", r.FormValue("email"), "is required")
	v.Required("password", r.FormValue("password"), "is required")
	v.Required("salary", salaryRaw, "is required")

	var salary float64
	if salaryRaw != "" {
		parsed, err := strconv.ParseFloat(salaryRaw, 64)
		if err != nil || parsed < 0 {
			v.Add("salary", "must be a non-negative number")
		} else {
			salary = parsed
		}
	}

	status := strings.TrimSpace(r.FormValue("status"))
	if status == "" {
		status = employee.StatusActive
	}
	v.Enum("status", status, employee.Statuses, "must be one of active, deactive")

	if v.Reject(w, requestID) {
		return
	}

	hash, err := auth.HashPassword(r.FormValue("password"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	emp := employee.Employee{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		PasswordHash: hash,
		Address:      strings.TrimSpace(r.FormValue("address")),
		Salary:       salary,
		CategoryID:   strings.TrimSpace(r.FormValue("category_id")),
		Status:       status,
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		name, err := h.Images.Save(file, header.Filename)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
			return
		}
		emp.Image = name
	}

	created, err := h.Employees.Create(r.Context(), emp)
	if errors.Is(err, employee.ErrEmailTaken) {
		_ = h.Images.Remove(emp.Image)
		api.Fail(w, http.StatusBadRequest, "email_taken", "an employee with this email already exists", requestID)
		return
	}
	if err != nil {
		_ = h.Images.Remove(emp.Image)
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employees, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Success(w, employees, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	emp, err := h.Employees.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Success(w, emp, requestID)
}

type updateRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Password   *string  `json:"password"`
	Address    *string  `json:"address"`
	Salary     *float64 `json:"salary"`
	CategoryID *string  `json:"categoryId"`
	Status     *string  `json:"status"`
}

// handleUpdate merges the provided fields into the stored record, so a payload
// carrying only a salary leaves everything else untouched.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", requestID)
		return
	}

	v := shared.NewValidator()
	if payload.Status != nil {
		v.Enum("status", *payload.Status, employee.Statuses, "must be one of active, deactive")
	}
	if payload.Salary != nil && *payload.Salary < 0 {
		v.Add("salary", "must be a non-negative number")
	}
	if v.Reject(w, requestID) {
		return
	}

	current, err := h.Employees.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	merged := *current
	if payload.Name != nil {
		merged.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		merged.Email = strings.TrimSpace(*payload.Email)
	}
	if payload.Address != nil {
		merged.Address = strings.TrimSpace(*payload.Address)
	}
	if payload.Salary != nil {
		merged.Salary = *payload.Salary
	}
	if payload.CategoryID != nil {
		merged.CategoryID = strings.TrimSpace(*payload.CategoryID)
	}
	if payload.Status != nil {
		merged.Status = *payload.Status
	}
	if payload.Password != nil && *payload.Password != "" {
		hash, err := auth.HashPassword(*payload.Password)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
			return
		}
		merged.PasswordHash = hash
	}

	updated, err := h.Employees.Update(r.Context(), current.ID, merged)
	if errors.Is(err, employee.ErrEmailTaken) {
		api.Fail(w, http.StatusBadRequest, "email_taken", "an employee with this email already exists", requestID)
		return
	}
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	deleted, err := h.Employees.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	_ = h.Images.Remove(deleted.Image)
	api.Success(w, deleted, requestID)
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	count, err := h.Employees.Count(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Success(w, map[string]int{"employee": count}, requestID)
}
