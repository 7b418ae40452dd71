package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sportscheduler/internal/domain"
)

type sportRepository struct {
	DB *sql.DB
}

func NewSportRepository(db *sql.DB) domain.SportRepository {
	return &sportRepository{DB: db}
}

func (r *sportRepository) Create(ctx context.Context, s *domain.Sport) error {
	query := `
		INSERT INTO sports (name, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.Name, s.CreatedByID, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

func (r *sportRepository) GetByID(ctx context.Context, id string) (*domain.Sport, error) {
	query := `
		SELECT id, name, created_by_id, created_at, updated_at
		FROM sports
		WHERE id = $1
	`
	s := &domain.Sport{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.CreatedByID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sportRepository) Update(ctx context.Context, s *domain.Sport) error {
	query := `
		UPDATE sports
		SET name = $2, updated_at = $3
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, s.ID, s.Name, s.UpdatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sportRepository) ListByName(ctx context.Context) ([]*domain.Sport, error) {
	query := `
		SELECT id, name, created_by_id, created_at, updated_at
		FROM sports
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := []*domain.Sport{}
	for rows.Next() {
		s := &domain.Sport{}
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedByID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sports = append(sports, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *sportRepository) ListWithCreators(ctx context.Context) ([]*domain.SportWithCreator, error) {
	query := `
		SELECT s.id, s.name, s.created_by_id, s.created_at, s.updated_at, u.name
		FROM sports s
		JOIN users u ON u.id = s.created_by_id
		ORDER BY s.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*domain.SportWithCreator{}
	for rows.Next() {
		s := &domain.Sport{}
		var creator string
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedByID, &s.CreatedAt, &s.UpdatedAt, &creator); err != nil {
			return nil, err
		}
		result = append(result, &domain.SportWithCreator{Sport: s, CreatorName: creator})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
