// Package httpserver provides the HTTP server for FormSeal.
//
// It uses the Go standard library net/http for implementation, serving
// the demo form, token issuance, and the operational endpoints. TLS is
// the fronting proxy's job; the listener speaks plain HTTP.
package httpserver

import (
	"context"
	"net/http"

	"github.com/yndnr/formseal-go/internal/server/config"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server with the section's listener settings.
func New(cfg config.ServerSection, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		handler: handler,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
