package services

import (
	"context"
	"fmt"
	"time"

	"sportscheduler/internal/domain"
)

// In-memory repository fakes shared by the service tests. They enforce the
// same guards as the real store (uniqueness on (session,user), status-guarded
// decide/delete) so the state machine tests exercise realistic behavior.

type mockUserRepository struct {
	users  map[string]*domain.User
	nextID int
	err    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*domain.User{}}
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	m.nextID++
	u.ID = fmt.Sprintf("user-%d", m.nextID)
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range m.users {
		if id != u.ID && existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.User, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, len(users), nil
}

type mockSportRepository struct {
	sports map[string]*domain.Sport
	nextID int
	err    error
}

func newMockSportRepository() *mockSportRepository {
	return &mockSportRepository{sports: map[string]*domain.Sport{}}
}

func (m *mockSportRepository) Create(ctx context.Context, s *domain.Sport) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	s.ID = fmt.Sprintf("sport-%d", m.nextID)
	m.sports[s.ID] = s
	return nil
}

func (m *mockSportRepository) GetByID(ctx context.Context, id string) (*domain.Sport, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSportRepository) Update(ctx context.Context, s *domain.Sport) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.sports[s.ID]; !ok {
		return domain.ErrNotFound
	}
	m.sports[s.ID] = s
	return nil
}

func (m *mockSportRepository) ListByName(ctx context.Context) ([]*domain.Sport, error) {
	if m.err != nil {
		return nil, m.err
	}
	sports := make([]*domain.Sport, 0, len(m.sports))
	for _, s := range m.sports {
		sports = append(sports, s)
	}
	return sports, nil
}

func (m *mockSportRepository) ListWithCreators(ctx context.Context) ([]*domain.SportWithCreator, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.SportWithCreator, 0, len(m.sports))
	for _, s := range m.sports {
		result = append(result, &domain.SportWithCreator{Sport: s, CreatorName: "creator"})
	}
	return result, nil
}

type mockSessionRepository struct {
	sessions map[string]*domain.PlaySession
	nextID   int
	err      error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: map[string]*domain.PlaySession{}}
}

func (m *mockSessionRepository) Create(ctx context.Context, sess *domain.PlaySession) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	sess.ID = fmt.Sprintf("sess-%d", m.nextID)
	m.sessions[sess.ID] = sess
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*domain.PlaySession, error) {
	if m.err != nil {
		return nil, m.err
	}
	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (m *mockSessionRepository) Cancel(ctx context.Context, id, reason string, now time.Time) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	sess, ok := m.sessions[id]
	if !ok || sess.Status == domain.SessionCancelled {
		return false, nil
	}
	sess.Status = domain.SessionCancelled
	sess.CancelReason = reason
	sess.UpdatedAt = now
	return true, nil
}

func (m *mockSessionRepository) ListAvailable(ctx context.Context, now time.Time, limit int) ([]*domain.SessionWithSport, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []*domain.SessionWithSport{}
	for _, sess := range m.sessions {
		if sess.Status == domain.SessionScheduled && sess.StartsAt.After(now) {
			result = append(result, &domain.SessionWithSport{Session: sess})
			if limit > 0 && len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockSessionRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.SessionWithSport, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []*domain.SessionWithSport{}
	for _, sess := range m.sessions {
		if sess.CreatedByID == userID {
			result = append(result, &domain.SessionWithSport{Session: sess})
		}
	}
	return result, nil
}

func (m *mockSessionRepository) ListByParticipant(ctx context.Context, userID string) ([]*domain.SessionWithSport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.SessionWithSport{}, nil
}

func (m *mockSessionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SessionWithSport, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []*domain.SessionWithSport{}
	for _, sess := range m.sessions {
		result = append(result, &domain.SessionWithSport{Session: sess})
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

type mockJoinRequestRepository struct {
	requests map[string]*domain.JoinRequest
	nextID   int
	err      error
}

func newMockJoinRequestRepository() *mockJoinRequestRepository {
	return &mockJoinRequestRepository{requests: map[string]*domain.JoinRequest{}}
}

func (m *mockJoinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.requests {
		if existing.SessionID == req.SessionID && existing.UserID == req.UserID {
			return domain.ErrDuplicate
		}
	}
	m.nextID++
	req.ID = fmt.Sprintf("req-%d", m.nextID)
	m.requests[req.ID] = req
	return nil
}

func (m *mockJoinRequestRepository) GetByID(ctx context.Context, id string) (*domain.JoinRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	req, ok := m.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

func (m *mockJoinRequestRepository) GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*domain.JoinRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, req := range m.requests {
		if req.SessionID == sessionID && req.UserID == userID {
			return req, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockJoinRequestRepository) Decide(ctx context.Context, id string, status domain.JoinRequestStatus, decidedByID string, approvedAt *time.Time, now time.Time) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	req, ok := m.requests[id]
	if !ok || req.Status != domain.JoinRequestPending {
		return false, nil
	}
	req.Status = status
	req.DecidedByID = decidedByID
	req.ApprovedAt = approvedAt
	req.UpdatedAt = now
	return true, nil
}

func (m *mockJoinRequestRepository) DeleteIfPending(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	req, ok := m.requests[id]
	if !ok || req.Status != domain.JoinRequestPending {
		return false, nil
	}
	delete(m.requests, id)
	return true, nil
}

func (m *mockJoinRequestRepository) ListByStatus(ctx context.Context, status domain.JoinRequestStatus, limit int) ([]*domain.JoinRequestDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []*domain.JoinRequestDetail{}
	for _, req := range m.requests {
		if req.Status == status {
			result = append(result, &domain.JoinRequestDetail{Request: req})
			if limit > 0 && len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockJoinRequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.JoinRequestDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []*domain.JoinRequestDetail{}
	for _, req := range m.requests {
		if req.UserID == userID {
			result = append(result, &domain.JoinRequestDetail{Request: req})
		}
	}
	return result, nil
}

func (m *mockJoinRequestRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.JoinRequestView, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []*domain.JoinRequestView{}
	for _, req := range m.requests {
		if req.SessionID == sessionID {
			result = append(result, &domain.JoinRequestView{Request: req})
		}
	}
	return result, nil
}

type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "hashed:" + salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hashed:"+salt+":"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID, email string, role domain.Role, expiry time.Duration) (string, error) {
	return "token-" + userID, nil
}
