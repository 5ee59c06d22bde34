package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Server wraps the HTTP server with its configured routes
type Server struct {
	httpServer *http.Server
}

// NewServer creates a server listening on the given port
func NewServer(port int, handlers *Handlers) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handlers.Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins serving requests. It blocks until the server stops.
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("HTTP server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server, waiting for in-flight requests
func (s *Server) Stop(ctx context.Context) error {
	log.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
