package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "sportscheduler/internal/delivery/http/helpers"
	"sportscheduler/internal/delivery/http/middleware"
	"sportscheduler/internal/domain"
)

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSessionRequest is the request body for POST /sessions.
type CreateSessionRequest struct {
	SportID         string    `json:"sport_id"`
	Venue           string    `json:"venue"`
	StartsAt        time.Time `json:"starts_at"`
	LookingForCount int       `json:"looking_for_count"`
}

// Validate implements helpers.Validator.
func (s CreateSessionRequest) Validate() []string {
	var errs []string
	if s.SportID == "" {
		errs = append(errs, "sport_id is required")
	} else if !uuidRegexp.MatchString(s.SportID) {
		errs = append(errs, "invalid sport_id")
	}
	if strings.TrimSpace(s.Venue) == "" {
		errs = append(errs, "venue is required")
	}
	if s.StartsAt.IsZero() {
		errs = append(errs, "starts_at is required")
	}
	return errs
}

// CancelSessionRequest is the request body for POST /sessions/{sessionID}/cancel.
// Reason is optional; empty gets a default.
type CancelSessionRequest struct {
	Reason string `json:"reason"`
}

// Create godoc
// @Summary Schedule a play session
// @Description Schedule a session for a sport at a venue. Any authenticated user may create one.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSessionRequest true "Session data"
// @Success 201 {object} helpers.APIResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [post]
func (c *SessionController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateSessionRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	session, err := c.Service.Create(r.Context(), actor, req.SportID, req.Venue, req.StartsAt, req.LookingForCount)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, session)
}

// List godoc
// @Summary List sessions for the current user
// @Description Returns three lists: sessions available to join (scheduled, starting in the future), sessions created by the caller, and sessions the caller joined.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains available, mine, and joined"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [get]
func (c *SessionController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	lists, err := c.Service.List(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, lists)
}

// Get godoc
// @Summary Get a session with its participants
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the session, sport name, and participants"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [get]
func (c *SessionController) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	detail, err := c.Service.Get(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, detail)
}

// Cancel godoc
// @Summary Cancel a session (admin)
// @Description Transition a scheduled session to cancelled. One-way; an empty reason gets a default.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID (UUID)"
// @Param body body CancelSessionRequest false "Cancellation reason"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already cancelled)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID}/cancel [post]
func (c *SessionController) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CancelSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !h.DecodeAndValidate(w, r, &req) {
			return
		}
	}
	if err := c.Service.Cancel(r.Context(), actor, sessionID, req.Reason); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "session cancelled"})
}
