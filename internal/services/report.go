package services

import (
	"context"
	"fmt"
	"time"

	"sportscheduler/internal/domain"
)

const (
	dashboardPendingLimit   = 10
	dashboardRecentLimit    = 5
	dashboardAvailableLimit = 5
	reportRecentLimit       = 10
)

type reportService struct {
	reportRepo  domain.ReportRepository
	sessionRepo domain.SessionRepository
	joinRepo    domain.JoinRequestRepository
}

// NewReportService creates the dashboard/report aggregator with the given
// repositories.
func NewReportService(reportRepo domain.ReportRepository, sessionRepo domain.SessionRepository, joinRepo domain.JoinRequestRepository) domain.ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		sessionRepo: sessionRepo,
		joinRepo:    joinRepo,
	}
}

func (s *reportService) AdminDashboard(ctx context.Context, actor domain.Actor) (*domain.AdminDashboard, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators can view the admin dashboard: %w", domain.ErrForbidden)
	}
	users, err := s.reportRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	sessions, err := s.reportRepo.CountSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	sportCount, err := s.reportRepo.CountSports(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sports: %w", err)
	}
	pending, err := s.joinRepo.ListByStatus(ctx, domain.JoinRequestPending, dashboardPendingLimit)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	recent, err := s.sessionRepo.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	sportStats, err := s.reportRepo.CountSessionsBySport(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sessions by sport: %w", err)
	}
	return &domain.AdminDashboard{
		Users:           users,
		Sessions:        sessions,
		SportCount:      sportCount,
		PendingRequests: pending,
		RecentSessions:  recent,
		SportStats:      sportStats,
	}, nil
}

func (s *reportService) PlayerDashboard(ctx context.Context, actor domain.Actor) (*domain.PlayerDashboard, error) {
	if actor.Role != domain.RolePlayer {
		return nil, fmt.Errorf("only players can view the player dashboard: %w", domain.ErrForbidden)
	}
	available, err := s.sessionRepo.ListAvailable(ctx, time.Now(), dashboardAvailableLimit)
	if err != nil {
		return nil, fmt.Errorf("list available sessions: %w", err)
	}
	myRequests, err := s.joinRepo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list my requests: %w", err)
	}
	if available == nil {
		available = []*domain.SessionWithSport{}
	}
	if myRequests == nil {
		myRequests = []*domain.JoinRequestDetail{}
	}
	return &domain.PlayerDashboard{Available: available, MyRequests: myRequests}, nil
}

func (s *reportService) Report(ctx context.Context, actor domain.Actor) (*domain.Report, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators can view reports: %w", domain.ErrForbidden)
	}
	users, err := s.reportRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	sessions, err := s.reportRepo.CountSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	sportStats, err := s.reportRepo.CountSessionsBySport(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sessions by sport: %w", err)
	}
	recent, err := s.sessionRepo.ListRecent(ctx, reportRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	return &domain.Report{
		Users:          users,
		Sessions:       sessions,
		SportStats:     sportStats,
		RecentSessions: recent,
	}, nil
}
