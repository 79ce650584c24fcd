package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mibcs/clubsite/internal/api/handlers"
	"github.com/mibcs/clubsite/internal/api/middleware"
	"github.com/mibcs/clubsite/internal/auth"
	"github.com/mibcs/clubsite/internal/config"
	"github.com/mibcs/clubsite/internal/domain/analytics"
	"github.com/mibcs/clubsite/internal/domain/events"
	"github.com/mibcs/clubsite/internal/domain/users"
	"github.com/mibcs/clubsite/internal/metrics"
)

// Dependencies carries everything the router wires together. Tests hand in
// services backed by the in-memory repository; serve hands in Postgres.
type Dependencies struct {
	Config    config.Config
	Logger    zerolog.Logger
	Store     *events.Store
	Tracker   *events.Tracker
	Analytics *analytics.Service
	Users     *users.Service
	JWT       *auth.JWTManager
	Pinger    handlers.Pinger
	Version   string
	GitCommit string
	BuildDate string
}

// NewRouter assembles the full HTTP surface: public event routes, admin CRUD
// behind JWT, auth, analytics, health probes, and metrics.
func NewRouter(deps Dependencies) http.Handler {
	env := deps.Config.Environment

	eventsHandler := handlers.NewEventsHandler(deps.Store, deps.Tracker, env)
	authHandler := handlers.NewAuthHandler(deps.Users, env)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics, env)

	jwtAuth := middleware.JWTAuth(deps.JWT, env)
	manageContent := middleware.RequireContentManager(env)
	adminTier := middleware.WithRateLimitTierHandler(middleware.TierAdmin)
	loginTier := middleware.WithRateLimitTierHandler(middleware.TierLogin)

	admin := func(h http.HandlerFunc) http.Handler {
		return jwtAuth(manageContent(adminTier(h)))
	}
	authenticated := func(h http.HandlerFunc) http.Handler {
		return jwtAuth(adminTier(h))
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(deps.Pinger))
	mux.Handle("/version", VersionHandler(deps.Version, deps.GitCommit, deps.BuildDate))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/v1/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: admin(eventsHandler.Create),
	}))
	mux.Handle("/api/v1/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(eventsHandler.Get),
		http.MethodPut:    admin(eventsHandler.Update),
		http.MethodDelete: admin(eventsHandler.Delete),
	}))
	mux.Handle("/api/v1/events/{id}/register-click", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(eventsHandler.RegisterClick),
	}))

	mux.Handle("/api/v1/admin/events", methodMux(map[string]http.Handler{
		http.MethodGet: admin(eventsHandler.AdminList),
	}))
	mux.Handle("/api/v1/admin/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: admin(eventsHandler.AdminGet),
	}))

	mux.Handle("/api/v1/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: loginTier(http.HandlerFunc(authHandler.Login)),
	}))
	mux.Handle("/api/v1/auth/me", methodMux(map[string]http.Handler{
		http.MethodGet: authenticated(authHandler.Me),
	}))
	mux.Handle("/api/v1/auth/change-password", methodMux(map[string]http.Handler{
		http.MethodPost: authenticated(authHandler.ChangePassword),
	}))

	mux.Handle("/api/v1/analytics/dashboard", methodMux(map[string]http.Handler{
		http.MethodGet: admin(analyticsHandler.Dashboard),
	}))
	mux.Handle("/api/v1/analytics/events", methodMux(map[string]http.Handler{
		http.MethodGet: admin(analyticsHandler.Events),
	}))

	var handler http.Handler = mux
	handler = middleware.RateLimit(deps.Config.RateLimit)(handler)
	handler = middleware.CORS(deps.Config.CORS, deps.Logger)(handler)
	handler = middleware.SecurityHeaders(env == "production")(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(deps.Logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
