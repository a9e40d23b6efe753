// Package http exposes the risk assessment pipeline over a REST API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

const defaultShutdownTimeout = 30 * time.Second

// Server wraps the standard library HTTP server with lifecycle management.
type Server struct {
	srv    *http.Server
	logger logging.Logger
}

// NewServer builds a server serving the given handler on the configured port.
func NewServer(cfg config.ServerConfig, handler http.Handler, log logging.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: log,
	}
}

// Start begins serving requests.  It blocks until the server stops and
// returns nil on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.  The context
// bounds the drain; a bounded default is applied when it carries no deadline.
func (s *Server) Stop(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}
	s.logger.Info("http server stopping")
	return s.srv.Shutdown(ctx)
}

// Handler returns the underlying handler, useful for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
