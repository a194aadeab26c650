// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskit/taskit/internal/handler/dto"
)

// Handler wraps the plain routing endpoints that need no dependencies.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the root info endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Taskit API",
		"version": "0.1.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.MessageResponse{Message: "Resource not found"})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, dto.MessageResponse{Message: "Method not allowed"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing useful to do on encode failure.
	_ = json.NewEncoder(w).Encode(data)
}

// writeValidationError writes a 400 with field-level detail.
func writeValidationError(w http.ResponseWriter, errs []dto.FieldError) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Message: "Invalid input",
		Errors:  errs,
	})
}

// writeServerError writes a 500 with a generic message plus the
// underlying error text. Stack traces never reach the client.
func writeServerError(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
		Message: message,
		Detail:  err.Error(),
	})
}
