package leavehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/leave"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type Store interface {
	Create(ctx context.Context, l leave.Leave) (*leave.Leave, error)
	List(ctx context.Context) ([]leave.Leave, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error)
	Decide(ctx context.Context, id, status, remarks string) (*leave.Leave, error)
}

type Handler struct {
	Leaves Store
}

func NewHandler(leaves Store) *Handler {
	return &Handler{Leaves: leaves}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(auth.RoleAdmin)
	r.With(admin).Post("/auth/apply_leave", h.handleApply)
	r.With(admin).Get("/auth/leave", h.handleList)
	r.With(admin).Get("/auth/leave/{employee_id}", h.handleListByEmployee)
	r.With(admin).Put("/auth/leave/accept/{id}", h.decide(leave.DecisionAccept))
	r.With(admin).Put("/auth/leave/reject/{id}", h.decide(leave.DecisionReject))
}

type applyRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	LeaveType  string `json:"leave_type"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload applyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employee_id", payload.EmployeeID, "is required")
	v.Required("start_date", payload.StartDate, "is required")
	v.Required("end_date", payload.EndDate, "is required")
	v.Required("leave_type", payload.LeaveType, "is required")

	var start, end time.Time
	if strings.TrimSpace(payload.StartDate) != "" {
		start, _ = v.Date("start_date", payload.StartDate)
	}
	if strings.TrimSpace(payload.EndDate) != "" {
		end, _ = v.Date("end_date", payload.EndDate)
	}
	v.DateOrder("start_date", start, "end_date", end)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Leaves.Create(r.Context(), leave.Leave{
		EmployeeID: payload.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		LeaveType:  strings.TrimSpace(payload.LeaveType),
		Reason:     strings.TrimSpace(payload.Reason),
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	leaves, err := h.Leaves.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Success(w, leaves, requestID)
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	leaves, err := h.Leaves.ListByEmployee(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Success(w, leaves, requestID)
}

type decideRequest struct {
	Remarks string `json:"remarks"`
}

func (h *Handler) decide(decision string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())

		status, err := leave.StatusForDecision(decision)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
			return
		}

		// remarks are optional; an empty or absent body is fine
		var payload decideRequest
		_ = json.NewDecoder(r.Body).Decode(&payload)

		decided, err := h.Leaves.Decide(r.Context(), chi.URLParam(r, "id"), status, strings.TrimSpace(payload.Remarks))
		if errors.Is(err, leave.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "leave not found", requestID)
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
			return
		}

		api.Success(w, decided, requestID)
	}
}
