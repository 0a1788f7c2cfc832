package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zorgkaart/internal/logging"
)

// shutdownTimeout bounds graceful shutdown; SSE streams are closed when it
// elapses.
const shutdownTimeout = 5 * time.Second

// Server runs the HTTP endpoint until its context is cancelled.
type Server struct {
	log  logging.Logger
	http *http.Server
}

// NewServer wraps the router in an http.Server bound to addr.
func NewServer(addr string, router *gin.Engine, log logging.Logger) *Server {
	return &Server{
		log: log,
		http: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "http server starting", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info(ctx, "http server shutting down")
	return s.http.Shutdown(shutdownCtx)
}
