package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/krishimitre/krishimitre/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server wraps http.Server with graceful shutdown tied to the caller's
// context.
type Server struct {
	srv    *http.Server
	logger logging.Logger
}

func NewServer(addr string, handler http.Handler, logger logging.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails. Cancellation triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.ListenAndServe() }()

	s.logger.Info(ctx, "http server listening", "addr", s.srv.Addr)

	var err error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if sdErr := s.srv.Shutdown(shutdownCtx); sdErr != nil {
			s.logger.Error(ctx, "shutdown error", "error", sdErr)
		}
		err = <-errCh
	case err = <-errCh:
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
