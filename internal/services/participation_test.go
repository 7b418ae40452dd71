package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportscheduler/internal/domain"
)

func futureSession(t *testing.T, repo *mockSessionRepository) *domain.PlaySession {
	t.Helper()
	now := time.Now()
	sess := domain.NewPlaySession("sport-1", "creator-1", "Court 1", now.Add(24*time.Hour), 4, now, now)
	require.NoError(t, repo.Create(context.Background(), sess))
	return sess
}

func TestParticipationService_RequestJoin(t *testing.T) {
	ctx := context.Background()
	player := domain.Actor{ID: "player-1", Role: domain.RolePlayer}
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	t.Run("success creates pending request", func(t *testing.T) {
		sessionRepo := newMockSessionRepository()
		joinRepo := newMockJoinRequestRepository()
		sess := futureSession(t, sessionRepo)

		svc := NewParticipationService(sessionRepo, joinRepo)
		req, err := svc.RequestJoin(ctx, player, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JoinRequestPending, req.Status)
		assert.Equal(t, player.ID, req.UserID)
		assert.Empty(t, req.TeamSlot)
		assert.Nil(t, req.ApprovedAt)
		assert.False(t, req.RequestedAt.IsZero())
	})

	t.Run("admins cannot join", func(t *testing.T) {
		sessionRepo := newMockSessionRepository()
		joinRepo := newMockJoinRequestRepository()
		sess := futureSession(t, sessionRepo)

		svc := NewParticipationService(sessionRepo, joinRepo)
		_, err := svc.RequestJoin(ctx, admin, sess.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, joinRepo.requests)
	})

	t.Run("session not found", func(t *testing.T) {
		svc := NewParticipationService(newMockSessionRepository(), newMockJoinRequestRepository())
		_, err := svc.RequestJoin(ctx, player, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("cancelled session rejected regardless of requester", func(t *testing.T) {
		sessionRepo := newMockSessionRepository()
		joinRepo := newMockJoinRequestRepository()
		sess := futureSession(t, sessionRepo)
		sess.Status = domain.SessionCancelled

		svc := NewParticipationService(sessionRepo, joinRepo)
		_, err := svc.RequestJoin(ctx, player, sess.ID)
		var stateErr *domain.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Contains(t, stateErr.Message, "cancelled")
		assert.Empty(t, joinRepo.requests)
	})

	t.Run("session already started", func(t *testing.T) {
		sessionRepo := newMockSessionRepository()
		joinRepo := newMockJoinRequestRepository()
		now := time.Now()
		sess := domain.NewPlaySession("sport-1", "creator-1", "Court 1", now.Add(-time.Hour), 4, now, now)
		require.NoError(t, sessionRepo.Create(ctx, sess))

		svc := NewParticipationService(sessionRepo, joinRepo)
		_, err := svc.RequestJoin(ctx, player, sess.ID)
		var stateErr *domain.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Contains(t, stateErr.Message, "past")
	})

	t.Run("duplicate request carries existing status", func(t *testing.T) {
		for _, status := range []domain.JoinRequestStatus{
			domain.JoinRequestPending,
			domain.JoinRequestApproved,
			domain.JoinRequestRejected,
		} {
			sessionRepo := newMockSessionRepository()
			joinRepo := newMockJoinRequestRepository()
			sess := futureSession(t, sessionRepo)
			existing := domain.NewJoinRequest(sess.ID, player.ID, time.Now())
			require.NoError(t, joinRepo.Create(ctx, existing))
			existing.Status = status

			svc := NewParticipationService(sessionRepo, joinRepo)
			_, err := svc.RequestJoin(ctx, player, sess.ID)
			var dupErr *domain.DuplicateRequestError
			require.ErrorAs(t, err, &dupErr, "status %s", status)
			assert.Equal(t, status, dupErr.Status)
			assert.Len(t, joinRepo.requests, 1, "store must still hold exactly one record")
		}
	})

	t.Run("concurrent duplicate surfaces DuplicateRequestError", func(t *testing.T) {
		sessionRepo := newMockSessionRepository()
		joinRepo := newMockJoinRequestRepository()
		sess := futureSession(t, sessionRepo)

		svc := NewParticipationService(sessionRepo, joinRepo)
		_, err := svc.RequestJoin(ctx, player, sess.ID)
		require.NoError(t, err)
		_, err = svc.RequestJoin(ctx, player, sess.ID)
		var dupErr *domain.DuplicateRequestError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, domain.JoinRequestPending, dupErr.Status)
		assert.Len(t, joinRepo.requests, 1)
	})
}

func TestParticipationService_ApproveReject(t *testing.T) {
	ctx := context.Background()
	player := domain.Actor{ID: "player-1", Role: domain.RolePlayer}
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	setup := func(t *testing.T) (*mockJoinRequestRepository, domain.ParticipationService, *domain.JoinRequest) {
		sessionRepo := newMockSessionRepository()
		joinRepo := newMockJoinRequestRepository()
		sess := futureSession(t, sessionRepo)
		req := domain.NewJoinRequest(sess.ID, player.ID, time.Now())
		require.NoError(t, joinRepo.Create(ctx, req))
		return joinRepo, NewParticipationService(sessionRepo, joinRepo), req
	}

	t.Run("approve sets approved_at and decided_by", func(t *testing.T) {
		joinRepo, svc, req := setup(t)
		decided, err := svc.Approve(ctx, admin, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JoinRequestApproved, decided.Status)
		assert.Equal(t, admin.ID, decided.DecidedByID)
		require.NotNil(t, decided.ApprovedAt)
		assert.Equal(t, domain.JoinRequestApproved, joinRepo.requests[req.ID].Status)
	})

	t.Run("reject records decider without approved_at", func(t *testing.T) {
		_, svc, req := setup(t)
		decided, err := svc.Reject(ctx, admin, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JoinRequestRejected, decided.Status)
		assert.Equal(t, admin.ID, decided.DecidedByID)
		assert.Nil(t, decided.ApprovedAt)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		_, svc, req := setup(t)
		_, err := svc.Approve(ctx, player, req.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
		_, err = svc.Reject(ctx, player, req.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("request not found", func(t *testing.T) {
		_, svc, _ := setup(t)
		_, err := svc.Approve(ctx, admin, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("deciding a non-pending request fails without mutation", func(t *testing.T) {
		joinRepo, svc, req := setup(t)
		_, err := svc.Approve(ctx, admin, req.ID)
		require.NoError(t, err)
		approvedAt := joinRepo.requests[req.ID].ApprovedAt

		_, err = svc.Reject(ctx, admin, req.ID)
		var stateErr *domain.InvalidStateError
		require.ErrorAs(t, err, &stateErr)

		_, err = svc.Approve(ctx, admin, req.ID)
		require.ErrorAs(t, err, &stateErr)

		stored := joinRepo.requests[req.ID]
		assert.Equal(t, domain.JoinRequestApproved, stored.Status)
		assert.Equal(t, approvedAt, stored.ApprovedAt)
	})
}

func TestParticipationService_CancelOwnRequest(t *testing.T) {
	ctx := context.Background()
	player := domain.Actor{ID: "player-1", Role: domain.RolePlayer}
	other := domain.Actor{ID: "player-2", Role: domain.RolePlayer}
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	setup := func(t *testing.T) (*mockJoinRequestRepository, domain.ParticipationService, *domain.JoinRequest) {
		sessionRepo := newMockSessionRepository()
		joinRepo := newMockJoinRequestRepository()
		sess := futureSession(t, sessionRepo)
		req := domain.NewJoinRequest(sess.ID, player.ID, time.Now())
		require.NoError(t, joinRepo.Create(ctx, req))
		return joinRepo, NewParticipationService(sessionRepo, joinRepo), req
	}

	t.Run("owner cancels pending request, record is gone", func(t *testing.T) {
		joinRepo, svc, req := setup(t)
		require.NoError(t, svc.CancelOwnRequest(ctx, player, req.ID))
		_, err := joinRepo.GetByID(ctx, req.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("cancel frees the pair for a new request", func(t *testing.T) {
		joinRepo, svc, req := setup(t)
		require.NoError(t, svc.CancelOwnRequest(ctx, player, req.ID))
		_, err := svc.RequestJoin(ctx, player, req.SessionID)
		require.NoError(t, err)
		assert.Len(t, joinRepo.requests, 1)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, svc, req := setup(t)
		err := svc.CancelOwnRequest(ctx, other, req.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		joinRepo, svc, req := setup(t)
		_, err := svc.Approve(ctx, admin, req.ID)
		require.NoError(t, err)

		err = svc.CancelOwnRequest(ctx, player, req.ID)
		var stateErr *domain.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		_, err = joinRepo.GetByID(ctx, req.ID)
		require.NoError(t, err, "record must survive")
	})

	t.Run("not found", func(t *testing.T) {
		_, svc, _ := setup(t)
		err := svc.CancelOwnRequest(ctx, player, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// Full lifecycle: request, approve, then the player can no longer cancel.
func TestParticipationService_ApprovedRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	player := domain.Actor{ID: "player-1", Role: domain.RolePlayer}
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	sessionRepo := newMockSessionRepository()
	joinRepo := newMockJoinRequestRepository()
	sess := futureSession(t, sessionRepo)
	svc := NewParticipationService(sessionRepo, joinRepo)

	req, err := svc.RequestJoin(ctx, player, sess.ID)
	require.NoError(t, err)
	require.Equal(t, domain.JoinRequestPending, req.Status)

	approved, err := svc.Approve(ctx, admin, req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.JoinRequestApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	require.Equal(t, admin.ID, approved.DecidedByID)

	err = svc.CancelOwnRequest(ctx, player, req.ID)
	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

// Cancelling a session blocks subsequent join requests and creates no record.
func TestParticipationService_JoinAfterSessionCancel(t *testing.T) {
	ctx := context.Background()
	playerB := domain.Actor{ID: "player-2", Role: domain.RolePlayer}
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	sportRepo := newMockSportRepository()
	sport := domain.NewSport("Tennis", admin.ID, time.Now(), time.Now())
	require.NoError(t, sportRepo.Create(ctx, sport))

	sessionRepo := newMockSessionRepository()
	joinRepo := newMockJoinRequestRepository()
	sessionSvc := NewSessionService(sportRepo, sessionRepo, joinRepo)
	participationSvc := NewParticipationService(sessionRepo, joinRepo)

	sess, err := sessionSvc.Create(ctx, admin, sport.ID, "Court 2", time.Now().Add(48*time.Hour), 2)
	require.NoError(t, err)

	require.NoError(t, sessionSvc.Cancel(ctx, admin, sess.ID, "venue flooded"))

	_, err = participationSvc.RequestJoin(ctx, playerB, sess.ID)
	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Contains(t, stateErr.Message, "cancelled")
	assert.Empty(t, joinRepo.requests)
}

func TestParticipationService_ListGrouped_requires_admin(t *testing.T) {
	svc := NewParticipationService(newMockSessionRepository(), newMockJoinRequestRepository())
	_, err := svc.ListGrouped(context.Background(), domain.Actor{ID: "p", Role: domain.RolePlayer})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestParticipationService_ListMine(t *testing.T) {
	ctx := context.Background()
	joinRepo := newMockJoinRequestRepository()
	req := domain.NewJoinRequest("sess-1", "player-1", time.Now())
	require.NoError(t, joinRepo.Create(ctx, req))

	svc := NewParticipationService(newMockSessionRepository(), joinRepo)
	mine, err := svc.ListMine(ctx, domain.Actor{ID: "player-1", Role: domain.RolePlayer})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	none, err := svc.ListMine(ctx, domain.Actor{ID: "player-9", Role: domain.RolePlayer})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestParticipationService_repo_error_wrapped(t *testing.T) {
	sessionRepo := newMockSessionRepository()
	sessionRepo.err = errors.New("connection refused")
	svc := NewParticipationService(sessionRepo, newMockJoinRequestRepository())
	_, err := svc.RequestJoin(context.Background(), domain.Actor{ID: "p", Role: domain.RolePlayer}, "sess-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrNotFound)
}
