package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sportscheduler/internal/domain"
)

type joinRequestRepository struct {
	DB *sql.DB
}

func NewJoinRequestRepository(db *sql.DB) domain.JoinRequestRepository {
	return &joinRequestRepository{DB: db}
}

func (r *joinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	query := `
		INSERT INTO join_requests (session_id, user_id, team_slot, status, requested_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	teamSlot := sql.NullString{String: req.TeamSlot, Valid: req.TeamSlot != ""}
	err := r.DB.QueryRowContext(ctx, query,
		req.SessionID, req.UserID, teamSlot, string(req.Status), req.RequestedAt, req.UpdatedAt,
	).Scan(&req.ID)
	if err != nil {
		if isUniqueViolation(err, "join_requests_session_id_user_id_key") {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id string) (*domain.JoinRequest, error) {
	query := `
		SELECT id, session_id, user_id, team_slot, status, requested_at, approved_at, decided_by_id, updated_at
		FROM join_requests
		WHERE id = $1
	`
	return scanJoinRequest(r.DB.QueryRowContext(ctx, query, id))
}

func (r *joinRequestRepository) GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*domain.JoinRequest, error) {
	query := `
		SELECT id, session_id, user_id, team_slot, status, requested_at, approved_at, decided_by_id, updated_at
		FROM join_requests
		WHERE session_id = $1 AND user_id = $2
	`
	return scanJoinRequest(r.DB.QueryRowContext(ctx, query, sessionID, userID))
}

// Decide is a status-guarded single statement: the transition only happens
// while the request is still pending, so concurrent deciders cannot both
// succeed and a decided request is never mutated.
func (r *joinRequestRepository) Decide(ctx context.Context, id string, status domain.JoinRequestStatus, decidedByID string, approvedAt *time.Time, now time.Time) (bool, error) {
	query := `
		UPDATE join_requests
		SET status = $2, decided_by_id = $3, approved_at = $4, updated_at = $5
		WHERE id = $1 AND status = 'pending'
	`
	var approved sql.NullTime
	if approvedAt != nil {
		approved = sql.NullTime{Time: *approvedAt, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, query, id, string(status), decidedByID, approved, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *joinRequestRepository) DeleteIfPending(ctx context.Context, id string) (bool, error) {
	query := `
		DELETE FROM join_requests
		WHERE id = $1 AND status = 'pending'
	`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

const joinRequestDetailColumns = `
	jr.id, jr.session_id, jr.user_id, jr.team_slot, jr.status, jr.requested_at, jr.approved_at, jr.decided_by_id, jr.updated_at,
	u.id, u.name, u.email,
	s.id, s.sport_id, s.created_by_id, s.starts_at, s.venue, s.looking_for_count, s.status, s.cancel_reason, s.created_at, s.updated_at,
	sp.name
`

const joinRequestDetailJoins = `
	FROM join_requests jr
	JOIN users u ON u.id = jr.user_id
	JOIN play_sessions s ON s.id = jr.session_id
	JOIN sports sp ON sp.id = s.sport_id
`

func (r *joinRequestRepository) ListByStatus(ctx context.Context, status domain.JoinRequestStatus, limit int) ([]*domain.JoinRequestDetail, error) {
	// Each status group has its own load-bearing order: pending by request
	// time, approved by decision time, rejected by last update.
	var order string
	switch status {
	case domain.JoinRequestApproved:
		order = "jr.approved_at DESC"
	case domain.JoinRequestRejected:
		order = "jr.updated_at DESC"
	default:
		order = "jr.requested_at DESC"
	}
	query := `SELECT ` + joinRequestDetailColumns + joinRequestDetailJoins + `
		WHERE jr.status = $1
		ORDER BY ` + order
	args := []any{string(status)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.queryDetails(ctx, query, args...)
}

func (r *joinRequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.JoinRequestDetail, error) {
	query := `SELECT ` + joinRequestDetailColumns + joinRequestDetailJoins + `
		WHERE jr.user_id = $1
		ORDER BY jr.requested_at DESC
	`
	return r.queryDetails(ctx, query, userID)
}

func (r *joinRequestRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.JoinRequestView, error) {
	query := `
		SELECT jr.id, jr.session_id, jr.user_id, jr.team_slot, jr.status, jr.requested_at, jr.approved_at, jr.decided_by_id, jr.updated_at,
			u.id, u.name, u.email
		FROM join_requests jr
		JOIN users u ON u.id = jr.user_id
		WHERE jr.session_id = $1
		ORDER BY jr.requested_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []*domain.JoinRequestView{}
	for rows.Next() {
		req := &domain.JoinRequest{}
		user := &domain.UserSummary{}
		var teamSlot, decidedBy sql.NullString
		var status string
		var approvedAt sql.NullTime
		if err := rows.Scan(
			&req.ID, &req.SessionID, &req.UserID, &teamSlot, &status, &req.RequestedAt, &approvedAt, &decidedBy, &req.UpdatedAt,
			&user.ID, &user.Name, &user.Email,
		); err != nil {
			return nil, err
		}
		fillJoinRequest(req, teamSlot, status, approvedAt, decidedBy)
		views = append(views, &domain.JoinRequestView{Request: req, User: user})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *joinRequestRepository) queryDetails(ctx context.Context, query string, args ...any) ([]*domain.JoinRequestDetail, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []*domain.JoinRequestDetail{}
	for rows.Next() {
		req := &domain.JoinRequest{}
		user := &domain.UserSummary{}
		sess := &domain.PlaySession{}
		var teamSlot, decidedBy, cancelReason sql.NullString
		var reqStatus, sessStatus, sportName string
		var approvedAt sql.NullTime
		if err := rows.Scan(
			&req.ID, &req.SessionID, &req.UserID, &teamSlot, &reqStatus, &req.RequestedAt, &approvedAt, &decidedBy, &req.UpdatedAt,
			&user.ID, &user.Name, &user.Email,
			&sess.ID, &sess.SportID, &sess.CreatedByID, &sess.StartsAt, &sess.Venue, &sess.LookingForCount, &sessStatus, &cancelReason, &sess.CreatedAt, &sess.UpdatedAt,
			&sportName,
		); err != nil {
			return nil, err
		}
		fillJoinRequest(req, teamSlot, reqStatus, approvedAt, decidedBy)
		sess.Status = domain.SessionStatus(sessStatus)
		sess.CancelReason = cancelReason.String
		details = append(details, &domain.JoinRequestDetail{
			Request: req,
			User:    user,
			Session: &domain.SessionWithSport{Session: sess, SportName: sportName},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

func scanJoinRequest(row *sql.Row) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	var teamSlot, decidedBy sql.NullString
	var status string
	var approvedAt sql.NullTime
	err := row.Scan(&req.ID, &req.SessionID, &req.UserID, &teamSlot, &status, &req.RequestedAt, &approvedAt, &decidedBy, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	fillJoinRequest(req, teamSlot, status, approvedAt, decidedBy)
	return req, nil
}

func fillJoinRequest(req *domain.JoinRequest, teamSlot sql.NullString, status string, approvedAt sql.NullTime, decidedBy sql.NullString) {
	req.TeamSlot = teamSlot.String
	req.Status = domain.JoinRequestStatus(status)
	if approvedAt.Valid {
		t := approvedAt.Time
		req.ApprovedAt = &t
	}
	req.DecidedByID = decidedBy.String
}
