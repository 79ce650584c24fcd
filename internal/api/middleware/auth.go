package middleware

import (
	"context"
	"net/http"

	"github.com/mibcs/clubsite/internal/api/problem"
	"github.com/mibcs/clubsite/internal/auth"
)

type claimsKey string

const authClaimsKey claimsKey = "authClaims"

// ClaimsFromContext returns the verified JWT claims attached by JWTAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(authClaimsKey).(*auth.Claims)
	return claims, ok
}

// JWTAuth verifies the bearer token and attaches its claims to the request
// context. Requests without a valid token get 401. Role checks are layered
// separately so token-holder endpoints like /auth/me stay open to any role.
func JWTAuth(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env,
					problem.WithDetail("missing or malformed Authorization header"))
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env,
					problem.WithDetail("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), authClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireContentManager rejects tokens whose role cannot manage content.
// Must run after JWTAuth.
func RequireContentManager(env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, env)
				return
			}
			if !auth.CanManageContent(claims.Role) {
				problem.Write(w, r, http.StatusForbidden, problem.TypeForbidden, "Forbidden", problem.ErrForbidden, env,
					problem.WithDetail("insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
