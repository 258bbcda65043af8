package attendancehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/attendance"
	"peopledesk/internal/domain/auth"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type Store interface {
	Mark(ctx context.Context, a attendance.Attendance) (*attendance.Attendance, error)
	Report(ctx context.Context) ([]attendance.Attendance, error)
	ReportByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error)
}

type Handler struct {
	Attendances Store
}

func NewHandler(attendances Store) *Handler {
	return &Handler{Attendances: attendances}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(auth.RoleAdmin)
	r.With(admin).Post("/auth/mark_attendance", h.handleMark)
	r.With(admin).Get("/auth/attendance_report", h.handleReport)
	r.With(admin).Get("/auth/attendance_report/{employee_id}", h.handleReportByEmployee)
}

type markRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks"`
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload markRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employee_id", payload.EmployeeID, "is required")
	v.Required("date", payload.Date, "is required")
	v.Required("status", payload.Status, "is required")
	v.Enum("status", payload.Status, attendance.Statuses, "must be one of Present, Absent, On Leave")

	var date time.Time
	if strings.TrimSpace(payload.Date) != "" {
		date, _ = v.Date("date", payload.Date)
	}
	if v.Reject(w, requestID) {
		return
	}

	marked, err := h.Attendances.Mark(r.Context(), attendance.Attendance{
		EmployeeID: payload.EmployeeID,
		Date:       date,
		Status:     payload.Status,
		Remarks:    strings.TrimSpace(payload.Remarks),
	})
	if errors.Is(err, attendance.ErrDuplicateDay) {
		api.Fail(w, http.StatusBadRequest, "duplicate_record", "attendance already marked for this employee on that day", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Created(w, marked, requestID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	report, err := h.Attendances.Report(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}
	if len(report) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no attendance records found", requestID)
		return
	}

	api.Success(w, report, requestID)
}

func (h *Handler) handleReportByEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employeeID := chi.URLParam(r, "employee_id")
	startRaw := strings.TrimSpace(r.URL.Query().Get("start_date"))
	endRaw := strings.TrimSpace(r.URL.Query().Get("end_date"))

	v := shared.NewValidator()
	var from, to time.Time
	if startRaw != "" {
		from, _ = v.Date("start_date", startRaw)
	}
	if endRaw != "" {
		to, _ = v.Date("end_date", endRaw)
	}
	v.DateOrder("start_date", from, "end_date", to)
	if v.Reject(w, requestID) {
		return
	}

	report, err := h.Attendances.ReportByEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}
	if len(report) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no attendance records found for this employee", requestID)
		return
	}

	api.Success(w, report, requestID)
}
