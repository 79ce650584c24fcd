package handlers

import (
	"net/http"

	"github.com/mibcs/clubsite/internal/api/problem"
	"github.com/mibcs/clubsite/internal/domain/analytics"
)

type AnalyticsHandler struct {
	Service *analytics.Service
	Env     string
}

func NewAnalyticsHandler(service *analytics.Service, env string) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service, Env: env}
}

// Dashboard serves the admin rollup: summary counts, recent activity, and the
// monthly engagement chart.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// Events serves the per-event engagement report.
func (h *AnalyticsHandler) Events(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.EventReport(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
