// Package api exposes the read-only REST surface over one data
// directory.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Server serves the API on a TCP listener. It manages listener
// lifecycle and graceful shutdown: Serve(ctx) blocks until the context
// is cancelled and active requests drain.
type Server struct {
	address string
	handler http.Handler
	logger  *slog.Logger

	// shutdownTimeout bounds the wait for in-flight requests after
	// the context is cancelled.
	shutdownTimeout time.Duration

	// ready is closed once the listener is bound and accepting.
	ready chan struct{}

	// addr is the resolved listen address, valid after ready closes.
	// Useful when the configured address uses port 0.
	addr net.Addr
}

// ServerConfig configures a Server.
type ServerConfig struct {
	// Address is the TCP listen address (e.g. ":8420"). Required.
	Address string

	// Handler is the route tree. Required.
	Handler http.Handler

	// ShutdownTimeout defaults to 10 seconds when zero.
	ShutdownTimeout time.Duration

	// Logger is the structured logger. Required.
	Logger *slog.Logger
}

// NewServer creates a server that will listen on the configured
// address. Call Serve to start accepting connections.
func NewServer(config ServerConfig) *Server {
	if config.Address == "" {
		panic("api.Server: Address is required")
	}
	if config.Handler == nil {
		panic("api.Server: Handler is required")
	}
	if config.Logger == nil {
		panic("api.Server: Logger is required")
	}

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Server{
		address:         config.Address,
		handler:         config.Handler,
		logger:          config.Logger,
		shutdownTimeout: timeout,
		ready:           make(chan struct{}),
	}
}

// Ready returns a channel that closes once the server is bound and
// accepting connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the resolved listen address. Only valid after Ready()
// closes.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Serve starts accepting connections. It blocks until ctx is
// cancelled, then stops accepting and waits up to ShutdownTimeout for
// active requests to complete.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.address, err)
	}
	s.addr = listener.Addr()
	close(s.ready)

	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("api server listening", "address", s.addr.String())

	serveDone := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("api server shutting down")
	case err := <-serveDone:
		if err != nil {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("api server shutdown error", "error", err)
		return fmt.Errorf("api server shutdown: %w", err)
	}

	s.logger.Info("api server stopped")
	return nil
}
