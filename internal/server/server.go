// Package server exposes the trade journal over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"trade-journal-go/internal/journal"
)

// APIServer serves the journal API.
type APIServer struct {
	server *http.Server
	logger *zap.Logger
}

// NewAPIServer creates a server for j listening on port.
func NewAPIServer(port int, j *journal.Journal, logger *zap.Logger) *APIServer {
	logger = logger.Named("api-server")
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewAPIHandler(j, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return &APIServer{
		server: server,
		logger: logger,
	}
}

// Start runs the HTTP server in a new goroutine. Fatal listen errors are sent
// on the returned channel.
func (s *APIServer) Start() <-chan error {
	errc := make(chan error, 1)
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server failed", zap.Error(err))
			errc <- err
		}
		close(errc)
	}()
	return errc
}

// Stop gracefully shuts down the server.
func (s *APIServer) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}
