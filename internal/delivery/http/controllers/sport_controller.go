package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "sportscheduler/internal/delivery/http/helpers"
	"sportscheduler/internal/delivery/http/middleware"
	"sportscheduler/internal/domain"
)

type SportController struct {
	Logger  *slog.Logger
	Service domain.SportService
}

func NewSportController(logger *slog.Logger, svc domain.SportService) *SportController {
	return &SportController{
		Logger:  logger,
		Service: svc,
	}
}

// SportRequest is the request body for POST /sports and PATCH /sports/{sportID}.
type SportRequest struct {
	Name string `json:"name"`
}

// Validate implements helpers.Validator.
func (s SportRequest) Validate() []string {
	if strings.TrimSpace(s.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// Create godoc
// @Summary Create a sport (admin)
// @Tags sports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SportRequest true "Sport name"
// @Success 201 {object} helpers.APIResponse "data contains the created sport"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sports [post]
func (c *SportController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SportRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	sport, err := c.Service.Create(r.Context(), actor, req.Name)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, sport)
}

// Rename godoc
// @Summary Rename a sport (admin)
// @Tags sports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sportID path string true "Sport ID (UUID)"
// @Param body body SportRequest true "New sport name"
// @Success 200 {object} helpers.APIResponse "data contains the updated sport"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sports/{sportID} [patch]
func (c *SportController) Rename(w http.ResponseWriter, r *http.Request) {
	sportID, ok := pathID(w, r, "sportID")
	if !ok {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SportRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	sport, err := c.Service.Rename(r.Context(), actor, sportID, req.Name)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, sport)
}

// List godoc
// @Summary List sports
// @Tags sports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains sports ordered by name"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sports [get]
func (c *SportController) List(w http.ResponseWriter, r *http.Request) {
	sports, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if sports == nil {
		sports = []*domain.Sport{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, sports)
}

// ListWithCreators godoc
// @Summary List sports with creator details (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains sports with creators, newest first"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sports [get]
func (c *SportController) ListWithCreators(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sports, err := c.Service.ListWithCreators(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if sports == nil {
		sports = []*domain.SportWithCreator{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, sports)
}
