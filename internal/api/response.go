package api

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope for every /api payload: data on success,
// error on failure, never both.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// JSON writes data inside the response envelope with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Data: data})
}

// JSONError writes err inside the response envelope using its status.
func JSONError(w http.ResponseWriter, err *Error) {
	writeJSON(w, err.Status, Response{Error: err})
}

// OK writes a 200 response with data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}
