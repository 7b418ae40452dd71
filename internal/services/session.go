package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sportscheduler/internal/domain"
)

const defaultCancelReason = "Cancelled by admin"

type sessionService struct {
	sportRepo   domain.SportRepository
	sessionRepo domain.SessionRepository
	joinRepo    domain.JoinRequestRepository
}

// NewSessionService creates the session lifecycle manager with the given
// repositories.
func NewSessionService(sportRepo domain.SportRepository, sessionRepo domain.SessionRepository, joinRepo domain.JoinRequestRepository) domain.SessionService {
	return &sessionService{
		sportRepo:   sportRepo,
		sessionRepo: sessionRepo,
		joinRepo:    joinRepo,
	}
}

// Create schedules a session for any authenticated identity. Creation does
// not require the start time to be in the future; that is only checked at
// join time.
func (s *sessionService) Create(ctx context.Context, actor domain.Actor, sportID, venue string, startsAt time.Time, lookingForCount int) (*domain.PlaySession, error) {
	venue = strings.TrimSpace(venue)
	if venue == "" {
		return nil, fmt.Errorf("venue is required: %w", domain.ErrInvalidInput)
	}
	if startsAt.IsZero() {
		return nil, fmt.Errorf("start time is required: %w", domain.ErrInvalidInput)
	}
	if lookingForCount < 0 {
		lookingForCount = 0
	}
	if _, err := s.sportRepo.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("sport does not exist: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("get sport: %w", err)
	}

	now := time.Now()
	session := domain.NewPlaySession(sportID, actor.ID, venue, startsAt, lookingForCount, now, now)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *sessionService) Cancel(ctx context.Context, actor domain.Actor, sessionID, reason string) error {
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("only administrators can cancel sessions: %w", domain.ErrForbidden)
	}
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get session: %w", err)
	}
	if session.Status == domain.SessionCancelled {
		return &domain.InvalidStateError{Message: "session is already cancelled"}
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultCancelReason
	}
	cancelled, err := s.sessionRepo.Cancel(ctx, sessionID, reason, time.Now())
	if err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}
	// The guarded update lost a race with another cancel.
	if !cancelled {
		return &domain.InvalidStateError{Message: "session is already cancelled"}
	}
	return nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*domain.SessionDetail, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	sport, err := s.sportRepo.GetByID(ctx, session.SportID)
	if err != nil {
		return nil, fmt.Errorf("get sport for session: %w", err)
	}
	participants, err := s.joinRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.JoinRequestView{}
	}
	return &domain.SessionDetail{
		Session:      session,
		SportName:    sport.Name,
		Participants: participants,
	}, nil
}

func (s *sessionService) List(ctx context.Context, actor domain.Actor) (*domain.SessionLists, error) {
	available, err := s.sessionRepo.ListAvailable(ctx, time.Now(), 0)
	if err != nil {
		return nil, fmt.Errorf("list available sessions: %w", err)
	}
	mine, err := s.sessionRepo.ListByCreator(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list my sessions: %w", err)
	}
	joined, err := s.sessionRepo.ListByParticipant(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list joined sessions: %w", err)
	}
	lists := &domain.SessionLists{Available: available, Mine: mine, Joined: joined}
	if lists.Available == nil {
		lists.Available = []*domain.SessionWithSport{}
	}
	if lists.Mine == nil {
		lists.Mine = []*domain.SessionWithSport{}
	}
	if lists.Joined == nil {
		lists.Joined = []*domain.SessionWithSport{}
	}
	return lists, nil
}
