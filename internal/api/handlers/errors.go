package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent
		slog.Error("Failed to encode response", "error", err)
	}
}

// WriteInternalError logs err and writes a 500 without leaking details
func WriteInternalError(w http.ResponseWriter, r *http.Request, area string, err error) {
	slog.ErrorContext(r.Context(), "["+area+"] unexpected error",
		"method", r.Method, "path", r.URL.Path, "error", err)
	WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
}

// WriteInternalErrorStatus is WriteInternalError with a caller-chosen status
// and error type, for upstream failures such as an unreachable blob store
func WriteInternalErrorStatus(w http.ResponseWriter, r *http.Request, area string, status int, errorType string, err error) {
	slog.ErrorContext(r.Context(), "["+area+"] upstream error",
		"method", r.Method, "path", r.URL.Path, "error", err)
	WriteError(w, status, errorType, "A storage backend is unavailable. Please try again later.")
}
