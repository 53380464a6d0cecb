package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stayviet/stayviet/internal/http/response"
	"github.com/stayviet/stayviet/pkg/auth"
	"github.com/stayviet/stayviet/pkg/logger"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// RequireAuth rejects requests without a valid Bearer token and stashes the
// parsed claims in the request context.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				response.Unauthorized(w, "missing or invalid authorization header")
				return
			}

			claims, err := auth.Parse(strings.TrimPrefix(authz, "Bearer "), secret)
			if err != nil {
				response.Unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Claims returns the authenticated caller's claims, or nil outside
// RequireAuth.
func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(ctxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}
