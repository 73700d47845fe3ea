package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/procurehub/procurehub-backend/api/middleware"
	"github.com/procurehub/procurehub-backend/internal/requests"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
	"github.com/procurehub/procurehub-backend/pkg/pagination"
)

type stubRequestService struct {
	detail     *requests.RequestDetail
	err        error
	lastCreate requests.CreateRequestInput
}

func (s *stubRequestService) CreateRequest(_ context.Context, input requests.CreateRequestInput) (*requests.RequestDetail, error) {
	s.lastCreate = input
	return s.detail, s.err
}

func (s *stubRequestService) ManagerDecision(_ context.Context, _ requests.ManagerDecisionInput) (*requests.RequestDetail, error) {
	return s.detail, s.err
}

func (s *stubRequestService) AdminProcess(_ context.Context, _ requests.AdminProcessInput) (*requests.RequestDetail, error) {
	return s.detail, s.err
}

func (s *stubRequestService) GetRequest(_ context.Context, _ uuid.UUID) (*requests.RequestDetail, error) {
	return s.detail, s.err
}

func (s *stubRequestService) ListRequests(_ context.Context, _ requests.RequestFilters, _ pagination.Params) (*requests.RequestList, error) {
	return &requests.RequestList{Requests: []requests.RequestDetail{}}, s.err
}

func (s *stubRequestService) ListPendingRequests(_ context.Context) ([]requests.RequestDetail, error) {
	return []requests.RequestDetail{}, s.err
}

func (s *stubRequestService) ListStaffRequests(_ context.Context, _ uuid.UUID) ([]requests.RequestDetail, error) {
	return []requests.RequestDetail{}, s.err
}

func actorContext(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := middleware.WithUserID(req.Context(), userID.String())
	return req.WithContext(ctx)
}

func TestCreateRequestSuccess(t *testing.T) {
	staffID := uuid.New()
	itemID := uuid.New()
	svc := &stubRequestService{detail: &requests.RequestDetail{
		ID:     uuid.New(),
		Title:  "Office chairs",
		Status: enums.RequestStatusPending,
	}}
	handler := CreateRequest(svc, nil)

	payload := map[string]any{
		"title": "Office chairs",
		"items": []map[string]any{
			{"item_id": itemID.String(), "quantity": 4},
		},
	}
	body, _ := json.Marshal(payload)
	req := actorContext(httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader(body)), staffID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastCreate.StaffID != staffID {
		t.Fatalf("expected staff id from context, got %s", svc.lastCreate.StaffID)
	}
	if len(svc.lastCreate.Items) != 1 || svc.lastCreate.Items[0].ItemID != itemID {
		t.Fatalf("unexpected line items: %+v", svc.lastCreate.Items)
	}
}

func TestCreateRequestRejectsEmptyItems(t *testing.T) {
	svc := &stubRequestService{}
	handler := CreateRequest(svc, nil)

	body := []byte(`{"title":"Nothing","items":[]}`)
	req := actorContext(httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCreateRequestRequiresActor(t *testing.T) {
	svc := &stubRequestService{}
	handler := CreateRequest(svc, nil)

	body := []byte(`{"title":"No actor","items":[{"item_id":"` + uuid.NewString() + `","quantity":1}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestGetRequestNotFound(t *testing.T) {
	svc := &stubRequestService{detail: nil}
	handler := GetRequest(svc, nil)

	requestID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/"+requestID.String(), nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("requestId", requestID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestManagerDecisionInvalidAction(t *testing.T) {
	svc := &stubRequestService{}
	handler := ManagerDecision(svc, nil)

	requestID := uuid.New()
	body := []byte(`{"action":"escalate"}`)
	req := actorContext(httptest.NewRequest(http.MethodPost, "/api/v1/requests/"+requestID.String()+"/decision", bytes.NewReader(body)), uuid.New())
	rc := chi.NewRouteContext()
	rc.URLParams.Add("requestId", requestID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListRequestsRejectsBadStatusFilter(t *testing.T) {
	svc := &stubRequestService{}
	handler := ListRequests(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests?status=bogus", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
