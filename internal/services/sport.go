package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sportscheduler/internal/domain"
)

type sportService struct {
	sportRepo domain.SportRepository
}

// NewSportService creates a SportService with the given repository.
func NewSportService(sportRepo domain.SportRepository) domain.SportService {
	return &sportService{sportRepo: sportRepo}
}

func (s *sportService) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Sport, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators can create sports: %w", domain.ErrForbidden)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("sport name is required: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	sport := domain.NewSport(name, actor.ID, now, now)
	if err := s.sportRepo.Create(ctx, sport); err != nil {
		return nil, fmt.Errorf("create sport: %w", err)
	}
	return sport, nil
}

func (s *sportService) Rename(ctx context.Context, actor domain.Actor, sportID, name string) (*domain.Sport, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators can edit sports: %w", domain.ErrForbidden)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("sport name is required: %w", domain.ErrInvalidInput)
	}
	sport, err := s.sportRepo.GetByID(ctx, sportID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sport: %w", err)
	}
	sport.Name = name
	sport.UpdatedAt = time.Now()
	if err := s.sportRepo.Update(ctx, sport); err != nil {
		return nil, fmt.Errorf("update sport: %w", err)
	}
	return sport, nil
}

func (s *sportService) List(ctx context.Context) ([]*domain.Sport, error) {
	sports, err := s.sportRepo.ListByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}
	return sports, nil
}

func (s *sportService) ListWithCreators(ctx context.Context, actor domain.Actor) ([]*domain.SportWithCreator, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators can view the sport catalog: %w", domain.ErrForbidden)
	}
	sports, err := s.sportRepo.ListWithCreators(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sports with creators: %w", err)
	}
	return sports, nil
}
