package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mibcs/clubsite/internal/auth"
)

func protectedEndpoint(manager *auth.JWTManager) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Subject", claims.Subject)
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuth(manager, "test")(RequireContentManager("test")(inner))
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour, "clubsite")
	handler := protectedEndpoint(manager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/events", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Equal(t, "application/problem+json", res.Header().Get("Content-Type"))
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour, "clubsite")
	handler := protectedEndpoint(manager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/events", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestJWTAuthAcceptsAdminToken(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour, "clubsite")
	handler := protectedEndpoint(manager)

	token, err := manager.Generate("user-1", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "user-1", res.Header().Get("X-Subject"))
}

func TestRequireContentManagerForbidsViewer(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour, "clubsite")
	handler := protectedEndpoint(manager)

	token, err := manager.Generate("user-2", "viewer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusForbidden, res.Code)
}

func TestJWTAuthAllowsAnyRoleWithoutRoleGate(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour, "clubsite")
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := JWTAuth(manager, "test")(inner)

	token, err := manager.Generate("user-3", "viewer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
}
