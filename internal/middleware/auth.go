package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stockfy/platform/internal/api"
	"github.com/stockfy/platform/pkg/auth"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	TenantIDKey contextKey = "tenant_id"
	RoleKey     contextKey = "role"
)

// UserID returns the authenticated user id from the request context
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(UserIDKey).(string)
	return v
}

// TenantID returns the authenticated tenant id from the request context
func TenantID(ctx context.Context) string {
	v, _ := ctx.Value(TenantIDKey).(string)
	return v
}

// Role returns the authenticated role from the request context
func Role(ctx context.Context) string {
	v, _ := ctx.Value(RoleKey).(string)
	return v
}

// Auth validates the bearer token and stores the identity in context.
// The tenant id always comes from the verified claims, never from a
// client-supplied header.
func Auth(tokens *auth.TokenManager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid token")
				return
			}
			if claims.TenantID == "" {
				api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "Token has no tenant")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, TenantIDKey, claims.TenantID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// AuthUser validates the bearer token without requiring a tenant
// claim. Used for provisioning routes where the user has no tenant
// yet.
func AuthUser(tokens *auth.TokenManager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, TenantIDKey, claims.TenantID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// RequirePermission checks the authenticated role against a permission
func RequirePermission(perm auth.Permission) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			role := Role(r.Context())
			if !auth.HasPermission(role, perm) {
				api.Fail(w, http.StatusForbidden, api.CodeForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}
