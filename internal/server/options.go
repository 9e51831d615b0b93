package server

import (
	"time"

	"github.com/agbru/convkit/internal/logging"
	"github.com/agbru/convkit/internal/service"
)

// Option configures a Server at construction.
type Option func(*Server)

// WithLogger replaces the stdout logger. A nil logger is ignored.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithService makes the handlers call svc instead of a service built from
// the configuration. A nil svc is ignored.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

// WithRateLimiter replaces the per-client limiter. The server stops it on
// shutdown. A nil limiter is ignored.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		if rl != nil {
			s.rateLimiter = rl
		}
	}
}

// WithSecurityConfig replaces the CORS and header policy, input limit
// included.
func WithSecurityConfig(config SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = config
	}
}

// WithMaxInput sets the longest value, in bytes, a request may carry. The
// limit reaches the service only when the server builds it.
func WithMaxInput(n int) Option {
	return func(s *Server) {
		s.securityConfig.MaxInputLength = n
	}
}

// WithTimeouts replaces DefaultServerTimeouts.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// Timeouts bounds each phase of an HTTP exchange.
type Timeouts struct {
	// RequestTimeout bounds one conversion, from query parsing to response.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds the drain after SIGINT or SIGTERM.
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// DefaultServerTimeouts returns short limits: a conversion at the input
// length limit still completes in milliseconds.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     time.Minute,
	}
}
