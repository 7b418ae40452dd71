package controllers

import (
	"log/slog"
	"net/http"

	h "sportscheduler/internal/delivery/http/helpers"
	"sportscheduler/internal/delivery/http/middleware"
	"sportscheduler/internal/domain"
)

type ReportController struct {
	Logger  *slog.Logger
	Service domain.ReportService
}

func NewReportController(logger *slog.Logger, svc domain.ReportService) *ReportController {
	return &ReportController{
		Logger:  logger,
		Service: svc,
	}
}

// AdminDashboard godoc
// @Summary Admin dashboard (admin)
// @Description User and session counts, sport count, recent pending requests, recent sessions, and per-sport session counts.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the dashboard aggregates"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/dashboard [get]
func (c *ReportController) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	dashboard, err := c.Service.AdminDashboard(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, dashboard)
}

// PlayerDashboard godoc
// @Summary Player dashboard (player)
// @Description Upcoming available sessions plus the player's own join requests.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains available sessions and my_requests"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard [get]
func (c *ReportController) PlayerDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	dashboard, err := c.Service.PlayerDashboard(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, dashboard)
}

// Report godoc
// @Summary Usage report (admin)
// @Description Aggregate counts across users, sessions, and sports plus recent sessions.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the report aggregates"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reports [get]
func (c *ReportController) Report(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	report, err := c.Service.Report(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, report)
}
