package controllers

import (
	"context"
	"log/slog"
	"net/http"

	h "sportscheduler/internal/delivery/http/helpers"
	"sportscheduler/internal/delivery/http/middleware"
	"sportscheduler/internal/domain"
)

// RequestController handles the join request workflow: players request to
// join sessions and cancel their own pending requests, admins review.
type RequestController struct {
	Logger  *slog.Logger
	Service domain.ParticipationService
}

func NewRequestController(logger *slog.Logger, svc domain.ParticipationService) *RequestController {
	return &RequestController{
		Logger:  logger,
		Service: svc,
	}
}

// Join godoc
// @Summary Request to join a session (player)
// @Description Create a pending join request for the session. Fails on cancelled or past sessions and when a request for this session already exists.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the created request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (cancelled or past session, or duplicate request)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID}/join [post]
func (c *RequestController) Join(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	req, err := c.Service.RequestJoin(r.Context(), actor, sessionID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, req)
}

// Approve godoc
// @Summary Approve a pending join request (admin)
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the approved request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (request no longer pending)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /requests/{requestID}/approve [post]
func (c *RequestController) Approve(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.Approve)
}

// Reject godoc
// @Summary Reject a pending join request (admin)
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the rejected request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (request no longer pending)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /requests/{requestID}/reject [post]
func (c *RequestController) Reject(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.Reject)
}

// Cancel godoc
// @Summary Cancel one's own pending join request (player)
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the requester)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (request no longer pending)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /requests/{requestID}/cancel [post]
func (c *RequestController) Cancel(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r, "requestID")
	if !ok {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.CancelOwnRequest(r.Context(), actor, requestID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "request cancelled"})
}

// ListGrouped godoc
// @Summary List all join requests grouped by status (admin)
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains pending, approved, and rejected requests"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /requests [get]
func (c *RequestController) ListGrouped(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	grouped, err := c.Service.ListGrouped(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, grouped)
}

// ListMine godoc
// @Summary List the current user's join requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the caller's requests, newest first"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /requests/my [get]
func (c *RequestController) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	requests, err := c.Service.ListMine(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if requests == nil {
		requests = []*domain.JoinRequestDetail{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, requests)
}

type decideFunc func(ctx context.Context, actor domain.Actor, requestID string) (*domain.JoinRequest, error)

func (c *RequestController) decide(w http.ResponseWriter, r *http.Request, fn decideFunc) {
	requestID, ok := pathID(w, r, "requestID")
	if !ok {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	req, err := fn(r.Context(), actor, requestID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, req)
}
