// Package server runs the extraction HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/extractdate/internal/profile"
	apiv1 "github.com/hrygo/extractdate/server/router/api/v1"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the echo instance serving the API.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	logger     *slog.Logger
}

// NewServer creates a server for a validated profile.
func NewServer(p *profile.Profile, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	echoServer := echo.New()
	echoServer.Debug = p.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	apiv1.NewAPIV1Service(p, logger).Register(echoServer)

	return &Server{
		Profile:    p,
		echoServer: echoServer,
		logger:     logger,
	}
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return net.JoinHostPort(s.Profile.Addr, fmt.Sprint(s.Profile.Port))
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.Address())
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.Address())
	}
	return s.Serve(ctx, listener)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.echoServer.Listener = listener

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("extractor server started", "addr", listener.Addr().String(), "mode", s.Profile.Mode)
		if err := s.echoServer.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "failed to serve")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "failed to shutdown server")
		}
		s.logger.Info("extractor server stopped")
		return nil
	})
	return g.Wait()
}
