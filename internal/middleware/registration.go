package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/stockfy/platform/pkg/logger"
)

// Config holds configuration for middlewares
type Config struct {
	EnableLogging   bool
	EnableTracing   bool
	EnableCORS      bool
	EnableRecovery  bool
	EnableTimeout   bool
	EnableMetrics   bool
	TimeoutDuration time.Duration
	CORSOptions     cors.Options
	Metrics         *HTTPMetrics
	RateLimiter     *RateLimiter
}

// DefaultConfig returns default middleware configuration
func DefaultConfig(metrics *HTTPMetrics, limiter *RateLimiter) *Config {
	return &Config{
		EnableLogging:   true,
		EnableTracing:   true,
		EnableCORS:      true,
		EnableRecovery:  true,
		EnableTimeout:   true,
		EnableMetrics:   metrics != nil,
		TimeoutDuration: 30 * time.Second,
		CORSOptions: cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		},
		Metrics:     metrics,
		RateLimiter: limiter,
	}
}

// Register registers all configured middlewares to the router
func Register(router *mux.Router, config *Config) {
	logger.Logger.Info().
		Bool("logging", config.EnableLogging).
		Bool("tracing", config.EnableTracing).
		Bool("cors", config.EnableCORS).
		Bool("recovery", config.EnableRecovery).
		Bool("timeout", config.EnableTimeout).
		Bool("metrics", config.EnableMetrics).
		Bool("ratelimit", config.RateLimiter != nil).
		Dur("timeout_duration", config.TimeoutDuration).
		Msg("Registering middlewares")

	// Recovery middleware (first - catches panics)
	if config.EnableRecovery {
		router.Use(Recovery())
	}

	// Timeout middleware (early - sets request timeout)
	if config.EnableTimeout {
		router.Use(Timeout(config.TimeoutDuration))
	}

	// Logging middleware (early - logs all requests)
	if config.EnableLogging {
		router.Use(Logging)
	}

	// Tracing middleware (after logging - traces requests)
	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return Tracing("http-request", next)
		})
	}

	if config.EnableMetrics && config.Metrics != nil {
		router.Use(config.Metrics.Middleware)
	}

	if config.RateLimiter != nil {
		router.Use(config.RateLimiter.Middleware)
	}

	// Request ID middleware (for correlation)
	router.Use(RequestID())

	// Security headers middleware
	router.Use(SecurityHeaders())

	logger.Logger.Info().Msg("All middlewares registered successfully")
}

// Recovery recovers from panics and returns 500 error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("Panic recovered")

					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Timeout sets a timeout for HTTP requests
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}

// RequestID adds a unique request ID to each request
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", requestID)
			r.Header.Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", "default-src 'self'")
			w.Header().Set("Server", "")

			next.ServeHTTP(w, r)
		})
	}
}

// SetupCORS creates and configures CORS middleware
func SetupCORS(config *Config) func(http.Handler) http.Handler {
	if !config.EnableCORS {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(config.CORSOptions)
	return c.Handler
}
