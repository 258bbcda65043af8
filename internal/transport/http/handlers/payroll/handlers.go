package payrollhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/payroll"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type Store interface {
	Create(ctx context.Context, p payroll.Payroll) (*payroll.Payroll, error)
	List(ctx context.Context) ([]payroll.Payroll, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Payroll, error)
	SumSalary(ctx context.Context) (float64, error)
	PayslipData(ctx context.Context, payrollID string) (payroll.PayslipData, error)
}

type Handler struct {
	Payrolls Store
}

func NewHandler(payrolls Store) *Handler {
	return &Handler{Payrolls: payrolls}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(auth.RoleAdmin)
	r.With(admin).Post("/auth/add_payroll", h.handleCreate)
	r.With(admin).Get("/auth/payrolls", h.handleList)
	r.With(admin).Get("/auth/payroll", h.handleListByEmployee)
	r.With(admin).Get("/auth/salary_count", h.handleSalarySum)
	r.With(admin).Get("/auth/payroll/{id}/payslip", h.handlePayslip)
}

type createRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Salary      float64 `json:"salary"`
	Bonus       float64 `json:"bonus"`
	Deductions  float64 `json:"deductions"`
	PaymentDate string  `json:"payment_date"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employee_id", payload.EmployeeID, "is required")
	v.Required("payment_date", payload.PaymentDate, "is required")
	if payload.Salary <= 0 {
		v.Add("salary", "must be a positive number")
	}

	var paymentDate time.Time
	if strings.TrimSpace(payload.PaymentDate) != "" {
		paymentDate, _ = v.Date("payment_date", payload.PaymentDate)
	}
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Payrolls.Create(r.Context(), payroll.Payroll{
		EmployeeID:  payload.EmployeeID,
		Salary:      payload.Salary,
		Bonus:       payload.Bonus,
		Deductions:  payload.Deductions,
		PaymentDate: paymentDate,
	})
	if errors.Is(err, payroll.ErrDuplicatePeriod) {
		api.Fail(w, http.StatusBadRequest, "duplicate_record", "a payroll already exists for this employee in that month", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	payrolls, err := h.Payrolls.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}
	if len(payrolls) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no payroll records found", requestID)
		return
	}

	api.Success(w, payrolls, requestID)
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employeeID := strings.TrimSpace(r.URL.Query().Get("employee_id"))
	v := shared.NewValidator()
	v.Required("employee_id", employeeID, "is required")
	if v.Reject(w, requestID) {
		return
	}

	payrolls, err := h.Payrolls.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}
	if len(payrolls) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no payroll records found for this employee", requestID)
		return
	}

	api.Success(w, payrolls, requestID)
}

func (h *Handler) handleSalarySum(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	total, err := h.Payrolls.SumSalary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Success(w, map[string]float64{"salary": total}, requestID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	data, err := h.Payrolls.PayslipData(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, payroll.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	// Render into a buffer first so a gofpdf failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := payroll.RenderPayslip(&buf, data); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
