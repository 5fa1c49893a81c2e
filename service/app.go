package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"postboard/app/repositories"
	"postboard/app/routes"
	"postboard/config"

	"github.com/rs/zerolog"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal.
const shutdownTimeout = 30 * time.Second

// Server is the HTTP API bound to one store.
type Server struct {
	logger     zerolog.Logger
	httpServer *http.Server
}

// NewServer builds the API server for store using the server section of cfg.
func NewServer(cfg *config.Config, logger zerolog.Logger, store repositories.Store) *Server {
	handler := routes.NewHandler(store, logger, routes.Options{
		Env:            cfg.Primary.Env,
		AllowedOrigins: cfg.Server.AllowedOrigins(),
	})

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
			WriteTimeout: cfg.Server.WriteTimeoutDuration(),
			IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
		},
	}
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

// RunAppServer opens the configured store and serves the API until ctx is
// cancelled.
func RunAppServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	store, err := OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	return NewServer(cfg, logger, store).Run(ctx)
}
