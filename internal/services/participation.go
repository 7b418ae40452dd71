package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportscheduler/internal/domain"
)

type participationService struct {
	sessionRepo domain.SessionRepository
	joinRepo    domain.JoinRequestRepository
}

// NewParticipationService creates the join request workflow manager with the
// given repositories.
func NewParticipationService(sessionRepo domain.SessionRepository, joinRepo domain.JoinRequestRepository) domain.ParticipationService {
	return &participationService{
		sessionRepo: sessionRepo,
		joinRepo:    joinRepo,
	}
}

// RequestJoin checks its preconditions in a fixed order; the first failure
// wins: role, session existence, cancelled status, start time, then the
// one-request-per-(session,user) rule.
func (s *participationService) RequestJoin(ctx context.Context, actor domain.Actor, sessionID string) (*domain.JoinRequest, error) {
	if actor.Role != domain.RolePlayer {
		return nil, fmt.Errorf("only players can request to join sessions: %w", domain.ErrForbidden)
	}
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.Status == domain.SessionCancelled {
		return nil, &domain.InvalidStateError{Message: "cannot join cancelled sessions"}
	}
	if !session.StartsAt.After(time.Now()) {
		return nil, &domain.InvalidStateError{Message: "cannot join past sessions"}
	}
	if existing, err := s.joinRepo.GetBySessionAndUser(ctx, sessionID, actor.ID); err == nil {
		return nil, &domain.DuplicateRequestError{Status: existing.Status}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get join request: %w", err)
	}

	req := domain.NewJoinRequest(sessionID, actor.ID, time.Now())
	if err := s.joinRepo.Create(ctx, req); err != nil {
		// A concurrent submit won the unique constraint; report the surviving
		// record's status.
		if errors.Is(err, domain.ErrDuplicate) {
			if existing, getErr := s.joinRepo.GetBySessionAndUser(ctx, sessionID, actor.ID); getErr == nil {
				return nil, &domain.DuplicateRequestError{Status: existing.Status}
			}
			return nil, &domain.DuplicateRequestError{Status: domain.JoinRequestPending}
		}
		return nil, fmt.Errorf("create join request: %w", err)
	}
	return req, nil
}

func (s *participationService) Approve(ctx context.Context, actor domain.Actor, requestID string) (*domain.JoinRequest, error) {
	now := time.Now()
	return s.decide(ctx, actor, requestID, domain.JoinRequestApproved, &now)
}

func (s *participationService) Reject(ctx context.Context, actor domain.Actor, requestID string) (*domain.JoinRequest, error) {
	return s.decide(ctx, actor, requestID, domain.JoinRequestRejected, nil)
}

// decide performs the pending→approved or pending→rejected transition.
// decided_by is recorded for both outcomes; approved_at only on approval.
func (s *participationService) decide(ctx context.Context, actor domain.Actor, requestID string, status domain.JoinRequestStatus, approvedAt *time.Time) (*domain.JoinRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators can decide join requests: %w", domain.ErrForbidden)
	}
	req, err := s.joinRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get join request: %w", err)
	}
	if req.Status != domain.JoinRequestPending {
		return nil, &domain.InvalidStateError{Message: "request is not pending"}
	}

	updated, err := s.joinRepo.Decide(ctx, requestID, status, actor.ID, approvedAt, time.Now())
	if err != nil {
		return nil, fmt.Errorf("decide join request: %w", err)
	}
	if !updated {
		return nil, &domain.InvalidStateError{Message: "request is not pending"}
	}
	req.Status = status
	req.DecidedByID = actor.ID
	req.ApprovedAt = approvedAt
	return req, nil
}

// CancelOwnRequest deletes a pending request. Deletion is the only way the
// (session, user) pair becomes requestable again.
func (s *participationService) CancelOwnRequest(ctx context.Context, actor domain.Actor, requestID string) error {
	req, err := s.joinRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get join request: %w", err)
	}
	if req.UserID != actor.ID {
		return fmt.Errorf("you can only cancel your own requests: %w", domain.ErrForbidden)
	}
	if req.Status != domain.JoinRequestPending {
		return &domain.InvalidStateError{Message: "only pending requests can be cancelled"}
	}

	deleted, err := s.joinRepo.DeleteIfPending(ctx, requestID)
	if err != nil {
		return fmt.Errorf("delete join request: %w", err)
	}
	if !deleted {
		return &domain.InvalidStateError{Message: "only pending requests can be cancelled"}
	}
	return nil
}

func (s *participationService) ListGrouped(ctx context.Context, actor domain.Actor) (*domain.GroupedJoinRequests, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators can view all join requests: %w", domain.ErrForbidden)
	}
	grouped := &domain.GroupedJoinRequests{}
	var err error
	if grouped.Pending, err = s.joinRepo.ListByStatus(ctx, domain.JoinRequestPending, 0); err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	if grouped.Approved, err = s.joinRepo.ListByStatus(ctx, domain.JoinRequestApproved, 0); err != nil {
		return nil, fmt.Errorf("list approved requests: %w", err)
	}
	if grouped.Rejected, err = s.joinRepo.ListByStatus(ctx, domain.JoinRequestRejected, 0); err != nil {
		return nil, fmt.Errorf("list rejected requests: %w", err)
	}
	return grouped, nil
}

func (s *participationService) ListMine(ctx context.Context, actor domain.Actor) ([]*domain.JoinRequestDetail, error) {
	requests, err := s.joinRepo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list my requests: %w", err)
	}
	if requests == nil {
		requests = []*domain.JoinRequestDetail{}
	}
	return requests, nil
}
