package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sportscheduler/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

const sessionWithSportColumns = `
	s.id, s.sport_id, s.created_by_id, s.starts_at, s.venue,
	s.looking_for_count, s.status, s.cancel_reason, s.created_at, s.updated_at,
	sp.name
`

func (r *sessionRepository) Create(ctx context.Context, sess *domain.PlaySession) error {
	query := `
		INSERT INTO play_sessions (sport_id, created_by_id, starts_at, venue, looking_for_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		sess.SportID, sess.CreatedByID, sess.StartsAt, sess.Venue,
		sess.LookingForCount, string(sess.Status), sess.CreatedAt, sess.UpdatedAt,
	).Scan(&sess.ID)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.PlaySession, error) {
	query := `
		SELECT id, sport_id, created_by_id, starts_at, venue, looking_for_count, status, cancel_reason, created_at, updated_at
		FROM play_sessions
		WHERE id = $1
	`
	sess := &domain.PlaySession{}
	var status string
	var reason sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&sess.ID, &sess.SportID, &sess.CreatedByID, &sess.StartsAt, &sess.Venue,
		&sess.LookingForCount, &status, &reason, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	sess.Status = domain.SessionStatus(status)
	sess.CancelReason = reason.String
	return sess, nil
}

// Cancel is a status-guarded single statement: it only takes effect while the
// session is not already cancelled, so two concurrent cancels cannot both win.
func (r *sessionRepository) Cancel(ctx context.Context, id, reason string, now time.Time) (bool, error) {
	query := `
		UPDATE play_sessions
		SET status = 'cancelled', cancel_reason = $2, updated_at = $3
		WHERE id = $1 AND status <> 'cancelled'
	`
	res, err := r.DB.ExecContext(ctx, query, id, reason, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *sessionRepository) ListAvailable(ctx context.Context, now time.Time, limit int) ([]*domain.SessionWithSport, error) {
	query := `
		SELECT ` + sessionWithSportColumns + `
		FROM play_sessions s
		JOIN sports sp ON sp.id = s.sport_id
		WHERE s.status = 'scheduled' AND s.starts_at > $1
		ORDER BY s.starts_at ASC
	`
	args := []any{now}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.querySessions(ctx, query, args...)
}

func (r *sessionRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.SessionWithSport, error) {
	query := `
		SELECT ` + sessionWithSportColumns + `
		FROM play_sessions s
		JOIN sports sp ON sp.id = s.sport_id
		WHERE s.created_by_id = $1
		ORDER BY s.starts_at ASC
	`
	return r.querySessions(ctx, query, userID)
}

func (r *sessionRepository) ListByParticipant(ctx context.Context, userID string) ([]*domain.SessionWithSport, error) {
	query := `
		SELECT ` + sessionWithSportColumns + `
		FROM play_sessions s
		JOIN sports sp ON sp.id = s.sport_id
		JOIN join_requests jr ON jr.session_id = s.id
		WHERE jr.user_id = $1
		ORDER BY s.starts_at ASC
	`
	return r.querySessions(ctx, query, userID)
}

func (r *sessionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SessionWithSport, error) {
	query := `
		SELECT ` + sessionWithSportColumns + `
		FROM play_sessions s
		JOIN sports sp ON sp.id = s.sport_id
		ORDER BY s.created_at DESC
		LIMIT $1
	`
	return r.querySessions(ctx, query, limit)
}

func (r *sessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]*domain.SessionWithSport, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*domain.SessionWithSport{}
	for rows.Next() {
		sess := &domain.PlaySession{}
		var status string
		var reason sql.NullString
		var sportName string
		if err := rows.Scan(
			&sess.ID, &sess.SportID, &sess.CreatedByID, &sess.StartsAt, &sess.Venue,
			&sess.LookingForCount, &status, &reason, &sess.CreatedAt, &sess.UpdatedAt,
			&sportName,
		); err != nil {
			return nil, err
		}
		sess.Status = domain.SessionStatus(status)
		sess.CancelReason = reason.String
		sessions = append(sessions, &domain.SessionWithSport{Session: sess, SportName: sportName})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
