package domain

import "errors"

// Sentinel errors shared across stores and services.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicate      = errors.New("duplicate record")
	ErrDuplicateEmail = errors.New("email already in use")
)

// InvalidStateError reports an operation attempted in a lifecycle state that
// does not allow it (cancelled session, non-pending request, and so on).
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// DuplicateRequestError reports that a join request already exists for the
// (session, user) pair. Status carries the existing record's status so the
// caller can surface a status-specific message.
type DuplicateRequestError struct {
	Status JoinRequestStatus
}

func (e *DuplicateRequestError) Error() string {
	switch e.Status {
	case JoinRequestPending:
		return "you have already requested to join this session, please wait for approval"
	case JoinRequestApproved:
		return "you are already approved for this session"
	case JoinRequestRejected:
		return "your request to join this session was rejected"
	}
	return "join request already exists for this session"
}
