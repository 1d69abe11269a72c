// Package projects provides the project listing and intake endpoints.
package projects

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/driftwoodlabs/showfloor/internal/metrics"
	"github.com/driftwoodlabs/showfloor/internal/models"
	"github.com/driftwoodlabs/showfloor/internal/storage"
)

// Response helpers (local to avoid an import cycle with the api package)
type errorResponse struct {
	Error errorBody `json:"error"`
}
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
type dataResponse struct {
	Data any `json:"data"`
}

const (
	errCodeBadRequest       = "BAD_REQUEST"
	errCodeValidationFailed = "VALIDATION_FAILED"
	errCodeNotFound         = "NOT_FOUND"
	errCodeInternalError    = "INTERNAL_ERROR"
)

func jsonError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Code: code, Message: message}})
}

func jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dataResponse{Data: data})
}

func jsonCreated(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dataResponse{Data: data})
}

// ProjectResponse is a project as served to clients.
type ProjectResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	UserID      *int64 `json:"user_id,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Handler handles project endpoints.
type Handler struct {
	storage storage.Store
}

// NewHandler creates a new project handler.
func NewHandler(store storage.Store) *Handler {
	return &Handler{storage: store}
}

// CreateRequest is the request body for filing a project.
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id"`
}

// List returns all projects, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.storage.Projects().List(ctx)
	if err != nil {
		log.Printf("list projects error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	resp := make([]*ProjectResponse, len(list))
	for i, p := range list {
		resp[i] = projectToResponse(p)
	}
	jsonOK(w, resp)
}

// Create files a new project for an existing user and bumps the
// total_projects counter.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid request body")
		return
	}

	if err := ValidateTitle(req.Title); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}
	if err := ValidateUserID(req.UserID); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}

	ctx := r.Context()

	owner, err := h.storage.Users().GetByID(ctx, req.UserID)
	if err != nil {
		log.Printf("create project error: get user %d: %v", req.UserID, err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if owner == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "user not found")
		return
	}

	project := models.NewProject(strings.TrimSpace(req.Title), strings.TrimSpace(req.Description), &owner.ID)
	if err := h.storage.Projects().Create(ctx, project); err != nil {
		log.Printf("create project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	// The counter is a plain increment; nothing recounts the table. If
	// the increment fails the inserted row stays and the client sees the
	// error.
	if err := h.storage.Metrics().Increment(ctx, models.MetricTotalProjects, 1); err != nil {
		log.Printf("create project error: increment %s: %v", models.MetricTotalProjects, err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	metrics.ProjectsCreatedTotal.Inc()

	project.OwnerName = owner.Name
	log.Printf("project created: %q (#%d) for %s", project.Title, project.ID, owner.Email)
	jsonCreated(w, projectToResponse(project))
}

func projectToResponse(p *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		UserID:      p.UserID,
		OwnerName:   p.OwnerName,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
