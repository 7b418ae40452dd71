package domain

import (
	"context"
	"time"
)

// JoinRequestStatus is the approval status of a join request.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest represents a player's request to join a session. At most one
// exists per (session, user) pair; the uniqueness constraint persists for
// rejected rows, so deleting a pending request is the only way a player can
// ever re-request the same session.
// swagger:model JoinRequest
type JoinRequest struct {
	ID          string            `json:"id"`
	SessionID   string            `json:"session_id"`
	UserID      string            `json:"user_id"`
	TeamSlot    string            `json:"team_slot,omitempty"`
	Status      JoinRequestStatus `json:"status"`
	RequestedAt time.Time         `json:"requested_at"`
	ApprovedAt  *time.Time        `json:"approved_at,omitempty"`
	DecidedByID string            `json:"decided_by_id,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewJoinRequest returns a new pending JoinRequest. ID is typically set by the repository on create.
func NewJoinRequest(sessionID, userID string, requestedAt time.Time) *JoinRequest {
	return &JoinRequest{
		SessionID:   sessionID,
		UserID:      userID,
		Status:      JoinRequestPending,
		RequestedAt: requestedAt,
		UpdatedAt:   requestedAt,
	}
}

// JoinRequestView is a join request with the requesting user's summary,
// used as the participant list of a session detail.
type JoinRequestView struct {
	Request *JoinRequest `json:"request"`
	User    *UserSummary `json:"user"`
}

// JoinRequestDetail is the fully joined read view: request, requesting user,
// and the session with its sport name.
type JoinRequestDetail struct {
	Request *JoinRequest      `json:"request"`
	User    *UserSummary      `json:"user"`
	Session *SessionWithSport `json:"session"`
}

// GroupedJoinRequests is the admin view of all requests bucketed by status.
// Pending is ordered by requested_at descending, approved by approved_at
// descending, rejected by updated_at descending.
type GroupedJoinRequests struct {
	Pending  []*JoinRequestDetail `json:"pending"`
	Approved []*JoinRequestDetail `json:"approved"`
	Rejected []*JoinRequestDetail `json:"rejected"`
}

// JoinRequestRepository defines the interface for join request storage.
// Create must surface ErrDuplicate on a (session_id, user_id) uniqueness
// violation. The decide/delete operations are status-guarded single
// statements so concurrent deciders cannot both succeed.
type JoinRequestRepository interface {
	Create(ctx context.Context, req *JoinRequest) error
	GetByID(ctx context.Context, id string) (*JoinRequest, error)
	GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*JoinRequest, error)
	// Decide sets status and decided_by (and approved_at when non-nil) only
	// if the request is still pending. Returns false when no row was updated.
	Decide(ctx context.Context, id string, status JoinRequestStatus, decidedByID string, approvedAt *time.Time, now time.Time) (bool, error)
	// DeleteIfPending removes the request only while it is pending.
	// Returns false when no row was deleted.
	DeleteIfPending(ctx context.Context, id string) (bool, error)
	// ListByStatus returns fully joined requests in the given status. Ordering
	// follows the status: pending by requested_at desc, approved by
	// approved_at desc, rejected by updated_at desc. limit <= 0 means no limit.
	ListByStatus(ctx context.Context, status JoinRequestStatus, limit int) ([]*JoinRequestDetail, error)
	// ListByUser returns the user's requests joined with sessions, ordered by
	// requested_at descending.
	ListByUser(ctx context.Context, userID string) ([]*JoinRequestDetail, error)
	// ListBySession returns the session's requests joined with requesting
	// users, ordered by requested_at ascending.
	ListBySession(ctx context.Context, sessionID string) ([]*JoinRequestView, error)
}

// ParticipationService defines the join request workflow manager. The only
// transitions are pending→approved, pending→rejected, and pending→deleted;
// approved and rejected are terminal.
type ParticipationService interface {
	RequestJoin(ctx context.Context, actor Actor, sessionID string) (*JoinRequest, error)
	Approve(ctx context.Context, actor Actor, requestID string) (*JoinRequest, error)
	Reject(ctx context.Context, actor Actor, requestID string) (*JoinRequest, error)
	CancelOwnRequest(ctx context.Context, actor Actor, requestID string) error
	ListGrouped(ctx context.Context, actor Actor) (*GroupedJoinRequests, error)
	ListMine(ctx context.Context, actor Actor) ([]*JoinRequestDetail, error)
}
