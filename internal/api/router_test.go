package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mibcs/clubsite/internal/auth"
	"github.com/mibcs/clubsite/internal/config"
	"github.com/mibcs/clubsite/internal/domain/analytics"
	"github.com/mibcs/clubsite/internal/domain/events"
	"github.com/mibcs/clubsite/internal/domain/users"
	"github.com/mibcs/clubsite/internal/storage/memory"
)

type testServer struct {
	handler http.Handler
	jwt     *auth.JWTManager
	store   *events.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := memory.NewRepository()
	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour, "clubsite")
	store := events.NewStore(repo.Events())
	tracker := events.NewTracker(repo.Events())

	cfg := config.Config{
		Environment: "test",
		CORS:        config.CORSConfig{AllowAllOrigins: true},
	}

	handler := NewRouter(Dependencies{
		Config:    cfg,
		Logger:    zerolog.Nop(),
		Store:     store,
		Tracker:   tracker,
		Analytics: analytics.NewService(repo.Stats(), tracker),
		Users:     users.NewService(repo.Users(), jwtManager, zerolog.Nop()),
		JWT:       jwtManager,
		Pinger:    nil,
	})

	return &testServer{handler: handler, jwt: jwtManager, store: store}
}

func (s *testServer) request(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	s.handler.ServeHTTP(res, req)
	return res
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, err := s.jwt.Generate("admin-user", "admin")
	require.NoError(t, err)
	return token
}

const sampleEventBody = `{
	"title": "Intro to ML",
	"description": "Fundamentals of machine learning.",
	"date": "2026-02-15",
	"time": "14:00",
	"venue": "Lab 1",
	"registrationLink": "https://example.com/register"
}`

func TestRouterPublicListIsOpen(t *testing.T) {
	server := newTestServer(t)
	res := server.request(t, http.MethodGet, "/api/v1/events", "", "")
	require.Equal(t, http.StatusOK, res.Code)
}

func TestRouterAdminRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/events"},
		{http.MethodGet, "/api/v1/admin/events"},
		{http.MethodGet, "/api/v1/analytics/dashboard"},
		{http.MethodGet, "/api/v1/analytics/events"},
	}
	for _, p := range paths {
		res := server.request(t, p.method, p.path, "", "")
		require.Equal(t, http.StatusUnauthorized, res.Code, "%s %s", p.method, p.path)
	}
}

func TestRouterViewerTokenForbiddenOnAdminRoutes(t *testing.T) {
	server := newTestServer(t)
	token, err := server.jwt.Generate("viewer-user", "viewer")
	require.NoError(t, err)

	res := server.request(t, http.MethodPost, "/api/v1/events", sampleEventBody, token)
	require.Equal(t, http.StatusForbidden, res.Code)
}

func TestRouterCreateThenPublicVisibilitySplit(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	created := server.request(t, http.MethodPost, "/api/v1/events", sampleEventBody, token)
	require.Equal(t, http.StatusCreated, created.Code)

	var createdBody map[string]any
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdBody))
	require.Contains(t, createdBody, "analytics")
	id := createdBody["id"].(string)

	publicRes := server.request(t, http.MethodGet, "/api/v1/events/"+id, "", "")
	require.Equal(t, http.StatusOK, publicRes.Code)
	var publicBody map[string]any
	require.NoError(t, json.Unmarshal(publicRes.Body.Bytes(), &publicBody))
	require.NotContains(t, publicBody, "analytics")
	require.Equal(t, true, publicBody["canRegister"])

	adminRes := server.request(t, http.MethodGet, "/api/v1/admin/events/"+id, "", token)
	require.Equal(t, http.StatusOK, adminRes.Code)
	var adminBody map[string]any
	require.NoError(t, json.Unmarshal(adminRes.Body.Bytes(), &adminBody))

	// The public GET above counted one view; the admin GET must not add more.
	analyticsBlock := adminBody["analytics"].(map[string]any)
	require.Equal(t, float64(1), analyticsBlock["views"])
}

func TestRouterRegisterClickFlow(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	created := server.request(t, http.MethodPost, "/api/v1/events", sampleEventBody, token)
	require.Equal(t, http.StatusCreated, created.Code)
	var createdBody map[string]any
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdBody))
	id := createdBody["id"].(string)

	click := server.request(t, http.MethodPost, "/api/v1/events/"+id+"/register-click", "", "")
	require.Equal(t, http.StatusOK, click.Code)

	adminRes := server.request(t, http.MethodGet, "/api/v1/admin/events/"+id, "", token)
	var adminBody map[string]any
	require.NoError(t, json.Unmarshal(adminRes.Body.Bytes(), &adminBody))
	analyticsBlock := adminBody["analytics"].(map[string]any)
	require.Equal(t, float64(1), analyticsBlock["registrationClicks"])
}

func TestRouterDashboardAggregates(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	created := server.request(t, http.MethodPost, "/api/v1/events", sampleEventBody, token)
	require.Equal(t, http.StatusCreated, created.Code)

	res := server.request(t, http.MethodGet, "/api/v1/analytics/dashboard", "", token)
	require.Equal(t, http.StatusOK, res.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	summary := body["summary"].(map[string]any)
	require.Equal(t, float64(1), summary["totalEvents"])
	require.Equal(t, float64(1), summary["upcomingEvents"])
	require.Contains(t, body, "recentActivities")
	require.Contains(t, body, "charts")
}

func TestRouterHealthAndMetrics(t *testing.T) {
	server := newTestServer(t)

	require.Equal(t, http.StatusOK, server.request(t, http.MethodGet, "/healthz", "", "").Code)
	require.Equal(t, http.StatusOK, server.request(t, http.MethodGet, "/readyz", "", "").Code)
	require.Equal(t, http.StatusOK, server.request(t, http.MethodGet, "/metrics", "", "").Code)
	require.Equal(t, http.StatusOK, server.request(t, http.MethodGet, "/version", "", "").Code)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)
	res := server.request(t, http.MethodPatch, "/api/v1/events", "", "")
	require.Equal(t, http.StatusMethodNotAllowed, res.Code)
	require.NotEmpty(t, res.Header().Get("Allow"))
}

func TestRouterLoginRouteValidation(t *testing.T) {
	server := newTestServer(t)
	res := server.request(t, http.MethodPost, "/api/v1/auth/login", `{"email":"nobody@club.test","password":"x"}`, "")
	require.Equal(t, http.StatusUnauthorized, res.Code)
}
