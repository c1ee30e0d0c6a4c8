package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockfy/platform/internal/api"
	"github.com/stockfy/platform/pkg/auth"
	"github.com/stockfy/platform/pkg/logger"
)

// RateLimiter implements rate limiting using Redis
type RateLimiter struct {
	redis       *redis.Client
	tokens      *auth.TokenManager
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redisClient *redis.Client, tokens *auth.TokenManager, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:       redisClient,
		tokens:      tokens,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Middleware returns the rate limiting middleware. Authenticated
// requests are limited per tenant, anonymous ones per client IP.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identifier := rl.identify(r)

		allowed, remaining, resetTime, err := rl.checkLimit(r, identifier)
		if err != nil {
			logger.Logger.Error().
				Err(err).
				Str("identifier", identifier).
				Msg("Rate limiter error")
			// On error, allow request but log it
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

		if !allowed {
			logger.Logger.Warn().
				Str("identifier", identifier).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")
			api.Fail(w, http.StatusTooManyRequests, "RATE_LIMITED",
				fmt.Sprintf("Too many requests. Try again in %v", time.Until(resetTime).Round(time.Second)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// identify picks the rate-limit key. The limiter is registered at the
// router level and runs before the per-route auth wrappers, so the
// tenant is not in the request context yet; the bearer token is
// validated here directly. Requests without a valid tenant claim fall
// back to the client IP, and the route-level auth still rejects them.
func (rl *RateLimiter) identify(r *http.Request) string {
	if tenantID := TenantID(r.Context()); tenantID != "" {
		return fmt.Sprintf("tenant:%s", tenantID)
	}
	if rl.tokens != nil {
		if token, ok := bearerToken(r); ok {
			if claims, err := rl.tokens.Validate(token); err == nil && claims.TenantID != "" {
				return fmt.Sprintf("tenant:%s", claims.TenantID)
			}
		}
	}
	return clientIP(r)
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// checkLimit checks if request is within rate limit using a sliding window
func (rl *RateLimiter) checkLimit(r *http.Request, identifier string) (bool, int, time.Time, error) {
	ctx := r.Context()
	key := fmt.Sprintf("ratelimit:%s", identifier)
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, rl.window+time.Minute)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()

	remaining := rl.maxRequests - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}
	resetTime := now.Add(rl.window)

	return count < int64(rl.maxRequests), remaining, resetTime, nil
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
