// Package handler provides HTTP request handlers for FormSeal.
//
// This package implements the HTTP endpoints for the demo form, token
// issuance, and operational status.
//
// @design DS-0301
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yndnr/formseal-go/internal/telemetry/logger"
	"github.com/yndnr/formseal-go/internal/telemetry/metric"
)

// Handler is the main HTTP handler that routes requests to appropriate handlers.
//
// @design DS-0301
type Handler struct {
	logger  *slog.Logger
	metrics *metric.Registry
	mux     *http.ServeMux
}

// New creates a new Handler. metrics may be nil to disable issuance
// counting.
func New(logger *slog.Logger, metrics *metric.Registry) *Handler {
	h := &Handler{
		logger:  logger,
		metrics: metrics,
		mux:     http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Form endpoints (mounted behind the guard middleware)
	h.mux.HandleFunc("GET /{$}", h.handleFormPage)
	h.mux.HandleFunc("POST /submit", h.handleSubmit)
	h.mux.HandleFunc("GET /token", h.handleToken)

	// Health endpoints
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)
	h.mux.HandleFunc("GET /version", h.handleVersion)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID extracts the request ID placed in the context by the
// RequestID middleware, falling back to the inbound header.
func getRequestID(r *http.Request) string {
	if reqID := logger.RequestIDFromContext(r.Context()); reqID != "" {
		return reqID
	}
	return r.Header.Get("X-Request-ID")
}
