package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/plancad/internal/logger"
)

// Server runs an http.Server until its context is cancelled, then shuts it
// down within ShutdownTimeout.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

func NewServer(addr string, h http.Handler, readTimeout, shutdownTimeout time.Duration) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: readTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx, "🚀 plancad api listening", logger.String("address", ln.Addr().String()))
		err := s.srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		return s.shutdown()
	})

	return eg.Wait()
}

//nolint:contextcheck
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		s.shutdownTimeout,
	)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		return err
	}
	logger.Info(ctx, "✅ Server stopped")
	return nil
}
