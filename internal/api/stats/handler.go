// Package stats provides the site counter endpoint.
package stats

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

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

const errCodeInternalError = "INTERNAL_ERROR"

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

// MetricResponse is a site counter as served to clients.
type MetricResponse struct {
	Name      string `json:"name"`
	Value     int64  `json:"value"`
	UpdatedAt string `json:"updated_at"`
}

// Handler handles the stats endpoint.
type Handler struct {
	storage storage.Store
}

// NewHandler creates a new stats handler.
func NewHandler(store storage.Store) *Handler {
	return &Handler{storage: store}
}

// List returns all site counters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metrics, err := h.storage.Metrics().List(ctx)
	if err != nil {
		log.Printf("list stats error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	resp := make([]*MetricResponse, len(metrics))
	for i, m := range metrics {
		resp[i] = metricToResponse(m)
	}
	jsonOK(w, resp)
}

func metricToResponse(m *models.Metric) *MetricResponse {
	return &MetricResponse{
		Name:      m.Name,
		Value:     m.Value,
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
}
