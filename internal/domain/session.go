package domain

import (
	"context"
	"time"
)

// SessionStatus is the lifecycle status of a play session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCancelled SessionStatus = "cancelled"
	// SessionCompleted is part of the data model but no operation transitions
	// a session into it.
	SessionCompleted SessionStatus = "completed"
)

// PlaySession represents a scheduled instance of a sport at a time and venue.
// swagger:model PlaySession
type PlaySession struct {
	ID              string        `json:"id"`
	SportID         string        `json:"sport_id"`
	CreatedByID     string        `json:"created_by_id"`
	StartsAt        time.Time     `json:"starts_at"`
	Venue           string        `json:"venue"`
	LookingForCount int           `json:"looking_for_count"`
	Status          SessionStatus `json:"status"`
	CancelReason    string        `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewPlaySession returns a new PlaySession with status scheduled. ID is typically set by the repository on create.
func NewPlaySession(sportID, createdByID, venue string, startsAt time.Time, lookingForCount int, createdAt, updatedAt time.Time) *PlaySession {
	return &PlaySession{
		SportID:         sportID,
		CreatedByID:     createdByID,
		StartsAt:        startsAt,
		Venue:           venue,
		LookingForCount: lookingForCount,
		Status:          SessionScheduled,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// SessionWithSport bundles a session with its sport's name for list views.
type SessionWithSport struct {
	Session   *PlaySession `json:"session"`
	SportName string       `json:"sport_name"`
}

// SessionDetail is the full read view of a session: sport name plus all
// participation records joined with user summaries.
type SessionDetail struct {
	Session      *PlaySession       `json:"session"`
	SportName    string             `json:"sport_name"`
	Participants []*JoinRequestView `json:"participants"`
}

// SessionLists is the three-way session listing for the sessions index:
// available to join, created by the caller, and joined by the caller.
type SessionLists struct {
	Available []*SessionWithSport `json:"available"`
	Mine      []*SessionWithSport `json:"mine"`
	Joined    []*SessionWithSport `json:"joined"`
}

// SessionRepository defines the interface for play session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *PlaySession) error
	GetByID(ctx context.Context, id string) (*PlaySession, error)
	// Cancel transitions the session to cancelled with the given reason only
	// if it is not already cancelled. Returns false when no row was updated.
	Cancel(ctx context.Context, id, reason string, now time.Time) (bool, error)
	// ListAvailable returns scheduled sessions starting strictly after now,
	// joined with sport names, ordered by starts_at ascending. limit <= 0
	// means no limit.
	ListAvailable(ctx context.Context, now time.Time, limit int) ([]*SessionWithSport, error)
	// ListByCreator returns sessions created by the user, ordered by
	// starts_at ascending.
	ListByCreator(ctx context.Context, userID string) ([]*SessionWithSport, error)
	// ListByParticipant returns sessions the user holds any join request for.
	ListByParticipant(ctx context.Context, userID string) ([]*SessionWithSport, error)
	// ListRecent returns the most recently created sessions, newest first.
	ListRecent(ctx context.Context, limit int) ([]*SessionWithSport, error)
}

// SessionService defines the session lifecycle manager.
type SessionService interface {
	// Create schedules a new session. Any authenticated identity may create
	// one; only cancellation is admin-gated.
	Create(ctx context.Context, actor Actor, sportID, venue string, startsAt time.Time, lookingForCount int) (*PlaySession, error)
	// Cancel transitions a scheduled session to cancelled. Admin only,
	// one-way; an empty reason gets a default.
	Cancel(ctx context.Context, actor Actor, sessionID, reason string) error
	Get(ctx context.Context, sessionID string) (*SessionDetail, error)
	List(ctx context.Context, actor Actor) (*SessionLists, error)
}
