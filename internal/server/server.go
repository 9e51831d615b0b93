// Package server provides the HTTP API of the converter. Every request runs
// on its own conversion session through the service layer, so handlers share
// no mutable conversion state.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/agbru/convkit/internal/config"
	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/logging"
	"github.com/agbru/convkit/internal/service"
)

// Server is the conversion API: an http.Server behind the security, rate
// limit, request ID, logging and metrics middleware.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer registers the API routes for cfg. Without WithService it builds
// a ConversionService from cfg's cache size and input limit.
//
// Parameters:
//   - cfg: The application configuration (port, cache size, input limit).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
//   - error: A ConfigError if the default service cannot be built.
func NewServer(cfg config.AppConfig, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server", zerolog.InfoLevel),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	if cfg.MaxInput > 0 {
		s.securityConfig.MaxInputLength = cfg.MaxInput
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		svc, err := service.NewConversionService(
			service.WithCacheSize(cfg.CacheSize),
			service.WithMaxInput(s.securityConfig.MaxInputLength),
			service.WithLogger(s.logger),
		)
		if err != nil {
			return nil, err
		}
		s.service = svc
	}

	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/convert/base", s.wrapWithMiddleware(s.handleConvertBase))
	mux.HandleFunc("/convert/bytes", s.wrapWithMiddleware(s.handleConvertBytes))
	mux.HandleFunc("/detect", s.wrapWithMiddleware(s.handleDetect))
	mux.HandleFunc("/units", s.wrapWithMiddleware(s.handleUnits))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s, nil
}

// Handler returns the fully wrapped request multiplexer.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies the full middleware chain to a handler:
// Security -> RateLimit -> RequestID -> Logging -> Metrics -> Handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RequestIDMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start serves the API on the configured port until ctx is done, then
// drains in-flight requests for at most Timeouts.ShutdownTimeout. The caller
// ties ctx to SIGINT and SIGTERM.
//
// Returns:
//   - error: A ServerError if the listener cannot be opened, fails while
//     serving, or does not drain in time.
func (s *Server) Start(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	s.logger.Info("starting server",
		logging.String("addr", ln.Addr().String()),
		logging.Int("cache_size", s.cfg.CacheSize),
		logging.Int("max_input", s.securityConfig.MaxInputLength))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested, draining connections")
	case err := <-errCh:
		return apperrors.NewServerError("server stopped unexpectedly", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info("server stopped")
	return nil
}
