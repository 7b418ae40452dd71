package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportscheduler/internal/delivery/http/helpers"
	"sportscheduler/internal/domain"
)

const testRequestID = "33333333-3333-3333-3333-333333333333"

type mockParticipationService struct {
	request *domain.JoinRequest
	grouped *domain.GroupedJoinRequests
	mine    []*domain.JoinRequestDetail
	err     error

	decidedID   string
	cancelledID string
}

func (m *mockParticipationService) RequestJoin(_ context.Context, _ domain.Actor, _ string) (*domain.JoinRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.request, nil
}

func (m *mockParticipationService) Approve(_ context.Context, _ domain.Actor, requestID string) (*domain.JoinRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.decidedID = requestID
	return m.request, nil
}

func (m *mockParticipationService) Reject(_ context.Context, _ domain.Actor, requestID string) (*domain.JoinRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.decidedID = requestID
	return m.request, nil
}

func (m *mockParticipationService) CancelOwnRequest(_ context.Context, _ domain.Actor, requestID string) error {
	if m.err != nil {
		return m.err
	}
	m.cancelledID = requestID
	return nil
}

func (m *mockParticipationService) ListGrouped(_ context.Context, _ domain.Actor) (*domain.GroupedJoinRequests, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.grouped, nil
}

func (m *mockParticipationService) ListMine(_ context.Context, _ domain.Actor) ([]*domain.JoinRequestDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.mine, nil
}

func TestRequestController_Join_Success(t *testing.T) {
	svc := &mockParticipationService{request: &domain.JoinRequest{
		ID:        testRequestID,
		SessionID: testSessionID,
		UserID:    "u1",
		Status:    domain.JoinRequestPending,
	}}
	ctrl := NewRequestController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+testSessionID+"/join", nil)
	req.SetPathValue("sessionID", testSessionID)
	req = withActor(req, domain.Actor{ID: "u1", Role: domain.RolePlayer})
	w := httptest.NewRecorder()

	ctrl.Join(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestRequestController_Join_Unauthorized(t *testing.T) {
	ctrl := NewRequestController(testLogger(), &mockParticipationService{})

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+testSessionID+"/join", nil)
	req.SetPathValue("sessionID", testSessionID)
	w := httptest.NewRecorder()

	ctrl.Join(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestRequestController_Join_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "duplicate pending request",
			err:     &domain.DuplicateRequestError{Status: domain.JoinRequestPending},
			wantMsg: "you have already requested to join this session, please wait for approval",
		},
		{
			name:    "already approved",
			err:     &domain.DuplicateRequestError{Status: domain.JoinRequestApproved},
			wantMsg: "you are already approved for this session",
		},
		{
			name:    "previously rejected",
			err:     &domain.DuplicateRequestError{Status: domain.JoinRequestRejected},
			wantMsg: "your request to join this session was rejected",
		},
		{
			name:    "cancelled session",
			err:     &domain.InvalidStateError{Message: "cannot join cancelled sessions"},
			wantMsg: "cannot join cancelled sessions",
		},
		{
			name:    "past session",
			err:     &domain.InvalidStateError{Message: "cannot join past sessions"},
			wantMsg: "cannot join past sessions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRequestController(testLogger(), &mockParticipationService{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/sessions/"+testSessionID+"/join", nil)
			req.SetPathValue("sessionID", testSessionID)
			req = withActor(req, domain.Actor{ID: "u1", Role: domain.RolePlayer})
			w := httptest.NewRecorder()

			ctrl.Join(w, req)

			if w.Code != http.StatusConflict {
				t.Fatalf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Error == nil || resp.Error.Message != tt.wantMsg {
				t.Fatalf("expected error message %q, got %v", tt.wantMsg, resp.Error)
			}
		})
	}
}

func TestRequestController_Approve_Success(t *testing.T) {
	svc := &mockParticipationService{request: &domain.JoinRequest{
		ID:     testRequestID,
		Status: domain.JoinRequestApproved,
	}}
	ctrl := NewRequestController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/requests/"+testRequestID+"/approve", nil)
	req.SetPathValue("requestID", testRequestID)
	req = withActor(req, domain.Actor{ID: "a1", Role: domain.RoleAdmin})
	w := httptest.NewRecorder()

	ctrl.Approve(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if svc.decidedID != testRequestID {
		t.Fatalf("expected decision for request %q, got %q", testRequestID, svc.decidedID)
	}
}

func TestRequestController_Approve_NotPending(t *testing.T) {
	svc := &mockParticipationService{err: &domain.InvalidStateError{Message: "request is not pending"}}
	ctrl := NewRequestController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/requests/"+testRequestID+"/approve", nil)
	req.SetPathValue("requestID", testRequestID)
	req = withActor(req, domain.Actor{ID: "a1", Role: domain.RoleAdmin})
	w := httptest.NewRecorder()

	ctrl.Approve(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestRequestController_Reject_Forbidden(t *testing.T) {
	svc := &mockParticipationService{err: domain.ErrForbidden}
	ctrl := NewRequestController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/requests/"+testRequestID+"/reject", nil)
	req.SetPathValue("requestID", testRequestID)
	req = withActor(req, domain.Actor{ID: "u1", Role: domain.RolePlayer})
	w := httptest.NewRecorder()

	ctrl.Reject(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestRequestController_Cancel_Success(t *testing.T) {
	svc := &mockParticipationService{}
	ctrl := NewRequestController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/requests/"+testRequestID+"/cancel", nil)
	req.SetPathValue("requestID", testRequestID)
	req = withActor(req, domain.Actor{ID: "u1", Role: domain.RolePlayer})
	w := httptest.NewRecorder()

	ctrl.Cancel(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if svc.cancelledID != testRequestID {
		t.Fatalf("expected cancel for request %q, got %q", testRequestID, svc.cancelledID)
	}
}

func TestRequestController_Cancel_InvalidID(t *testing.T) {
	ctrl := NewRequestController(testLogger(), &mockParticipationService{})

	req := httptest.NewRequest(http.MethodPost, "/requests/nope/cancel", nil)
	req.SetPathValue("requestID", "nope")
	req = withActor(req, domain.Actor{ID: "u1", Role: domain.RolePlayer})
	w := httptest.NewRecorder()

	ctrl.Cancel(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestRequestController_ListGrouped_Success(t *testing.T) {
	svc := &mockParticipationService{grouped: &domain.GroupedJoinRequests{
		Pending:  []*domain.JoinRequestDetail{},
		Approved: []*domain.JoinRequestDetail{},
		Rejected: []*domain.JoinRequestDetail{},
	}}
	ctrl := NewRequestController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	req = withActor(req, domain.Actor{ID: "a1", Role: domain.RoleAdmin})
	w := httptest.NewRecorder()

	ctrl.ListGrouped(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	for _, key := range []string{"pending", "approved", "rejected"} {
		if _, ok := data[key]; !ok {
			t.Fatalf("expected %q in response data", key)
		}
	}
}

func TestRequestController_ListMine_EmptyIsArray(t *testing.T) {
	ctrl := NewRequestController(testLogger(), &mockParticipationService{})

	req := httptest.NewRequest(http.MethodGet, "/requests/my", nil)
	req = withActor(req, domain.Actor{ID: "u1", Role: domain.RolePlayer})
	w := httptest.NewRecorder()

	ctrl.ListMine(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := resp.Data.([]any); !ok {
		t.Fatalf("expected array data, got %T", resp.Data)
	}
}
