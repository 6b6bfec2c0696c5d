// Package httpapi exposes the collection service as a JSON REST API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/logging"
	"github.com/Zhanerrke588595/it-events/internal/server/resources"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	resources resources.Service
	logger    logging.Logger
}

func NewServer(a string, l logging.Logger, rs resources.Service) *Server {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		resources: rs,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
