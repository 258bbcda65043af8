package categoryhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/category"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type Store interface {
	Create(ctx context.Context, name string) (*category.Category, error)
	List(ctx context.Context) ([]category.Category, error)
}

type Handler struct {
	Categories Store
}

func NewHandler(categories Store) *Handler {
	return &Handler{Categories: categories}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/auth/category", h.handleList)
	r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/auth/add_category", h.handleCreate)
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	if v.HasIssues() {
		v.Reject(w, requestID)
		return
	}

	created, err := h.Categories.Create(r.Context(), strings.TrimSpace(payload.Name))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	categories, err := h.Categories.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}

	api.Success(w, categories, requestID)
}
