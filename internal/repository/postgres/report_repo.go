package postgres

import (
	"context"
	"database/sql"

	"sportscheduler/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{DB: db}
}

func (r *reportRepository) CountUsers(ctx context.Context) (domain.UserStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE role = 'admin'),
			COUNT(*) FILTER (WHERE role = 'player')
		FROM users
	`
	var stats domain.UserStats
	err := r.DB.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Admins, &stats.Players)
	if err != nil {
		return domain.UserStats{}, err
	}
	return stats, nil
}

func (r *reportRepository) CountSessions(ctx context.Context) (domain.SessionStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'scheduled'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE status = 'completed')
		FROM play_sessions
	`
	var stats domain.SessionStats
	err := r.DB.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Scheduled, &stats.Cancelled, &stats.Completed)
	if err != nil {
		return domain.SessionStats{}, err
	}
	return stats, nil
}

func (r *reportRepository) CountSports(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM sports`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reportRepository) CountSessionsBySport(ctx context.Context) ([]*domain.SportSessionCount, error) {
	query := `
		SELECT sp.id, sp.name, COUNT(s.id)
		FROM sports sp
		LEFT JOIN play_sessions s ON s.sport_id = sp.id
		GROUP BY sp.id, sp.name
		ORDER BY sp.name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []*domain.SportSessionCount{}
	for rows.Next() {
		c := &domain.SportSessionCount{}
		if err := rows.Scan(&c.SportID, &c.Name, &c.SessionCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
