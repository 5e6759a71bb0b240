package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/ports"
)

type stubPropertyService struct {
	listOwnedFn    func(ctx context.Context, agentID string) (*ports.OwnedListings, error)
	createFn       func(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error)
	setPublishedFn func(ctx context.Context, id string, value bool, agentID string) (*domain.Property, error)
	deleteFn       func(ctx context.Context, id, agentID string) error
	listActivityFn func(ctx context.Context, id, agentID string) ([]*domain.PropertyEvent, error)
}

func (s *stubPropertyService) ListOwned(ctx context.Context, agentID string) (*ports.OwnedListings, error) {
	return s.listOwnedFn(ctx, agentID)
}

func (s *stubPropertyService) Create(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error) {
	return s.createFn(ctx, input)
}

func (s *stubPropertyService) SetPublished(ctx context.Context, id string, value bool, agentID string) (*domain.Property, error) {
	return s.setPublishedFn(ctx, id, value, agentID)
}

func (s *stubPropertyService) Delete(ctx context.Context, id, agentID string) error {
	return s.deleteFn(ctx, id, agentID)
}

func (s *stubPropertyService) ListActivity(ctx context.Context, id, agentID string) ([]*domain.PropertyEvent, error) {
	return s.listActivityFn(ctx, id, agentID)
}

func asAgent(c echo.Context) {
	c.Set("user_id", "agent-1")
	c.Set("role", domain.RoleAgent)
}

func TestPropertyHandler_Create_CoercesPriceText(t *testing.T) {
	stub := &stubPropertyService{
		createFn: func(_ context.Context, input ports.CreatePropertyInput) (*domain.Property, error) {
			if input.Price != 250000 {
				t.Fatalf("price: expected 250000, got %v", input.Price)
			}
			if input.AgentID != "agent-1" {
				t.Fatalf("agent_id must come from the session, got %q", input.AgentID)
			}
			if input.Role != domain.RoleAgent {
				t.Fatalf("role must come from the session, got %q", input.Role)
			}
			return &domain.Property{
				ID:      "p1",
				Title:   input.Title,
				Price:   input.Price,
				City:    input.City,
				AgentID: input.AgentID,
			}, nil
		},
	}
	handler := NewPropertyHandler(stub)

	// agent_id in the payload must be ignored; the session wins.
	c, rec := newTestContext(http.MethodPost, "/v1/my/properties",
		`{"title":"Appartement T3","price":"250000","city":"Lyon","agent_id":"intruder"}`)
	asAgent(c)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp propertyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Price != 250000 {
		t.Errorf("response price: expected numeric 250000, got %v", resp.Price)
	}
	if resp.AgentID != "agent-1" {
		t.Errorf("response agent_id: expected agent-1, got %q", resp.AgentID)
	}
	if resp.IsPublished {
		t.Error("new listing must be a draft")
	}
}

func TestPropertyHandler_Create_NonNumericPrice(t *testing.T) {
	stub := &stubPropertyService{
		createFn: func(_ context.Context, _ ports.CreatePropertyInput) (*domain.Property, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	handler := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/my/properties",
		`{"title":"Appartement T3","price":"beaucoup","city":"Lyon"}`)
	asAgent(c)

	_ = handler.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPropertyHandler_Create_MissingFields(t *testing.T) {
	stub := &stubPropertyService{
		createFn: func(_ context.Context, _ ports.CreatePropertyInput) (*domain.Property, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	handler := NewPropertyHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/v1/my/properties", `{"title":"Appartement T3"}`)
	asAgent(c)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTP error, got %v", err)
	}
}

func TestPropertyHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewPropertyHandler(&stubPropertyService{})

	c, _ := newTestContext(http.MethodPost, "/v1/my/properties",
		`{"title":"Appartement T3","price":"250000","city":"Lyon"}`)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTP error, got %v", err)
	}
}

func TestPropertyHandler_ListOwned_Success(t *testing.T) {
	stub := &stubPropertyService{
		listOwnedFn: func(_ context.Context, agentID string) (*ports.OwnedListings, error) {
			if agentID != "agent-1" {
				t.Fatalf("unexpected agent id: %s", agentID)
			}
			return &ports.OwnedListings{
				Properties: []*domain.Property{
					{ID: "p1", AgentID: agentID, IsPublished: true},
					{ID: "p2", AgentID: agentID},
				},
				Published: 1,
				Drafts:    1,
			}, nil
		},
	}
	handler := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/my/properties", "")
	asAgent(c)

	if err := handler.ListOwned(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ownedListingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 || resp.Published != 1 || resp.Drafts != 1 {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestPropertyHandler_SetPublished_Success(t *testing.T) {
	stub := &stubPropertyService{
		setPublishedFn: func(_ context.Context, id string, value bool, agentID string) (*domain.Property, error) {
			if id != "p1" || !value || agentID != "agent-1" {
				t.Fatalf("unexpected args: %s %v %s", id, value, agentID)
			}
			return &domain.Property{ID: id, AgentID: agentID, IsPublished: value}, nil
		},
	}
	handler := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPatch, "/v1/my/properties/p1/publish",
		`{"is_published":true}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAgent(c)

	if err := handler.SetPublished(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp propertyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.IsPublished {
		t.Error("expected is_published=true in response")
	}
}

func TestPropertyHandler_SetPublished_FalseIsValid(t *testing.T) {
	called := false
	stub := &stubPropertyService{
		setPublishedFn: func(_ context.Context, id string, value bool, _ string) (*domain.Property, error) {
			called = true
			if value {
				t.Fatal("expected value=false")
			}
			return &domain.Property{ID: id}, nil
		},
	}
	handler := NewPropertyHandler(stub)

	// Explicit false must pass validation; only a missing field fails.
	c, rec := newTestContext(http.MethodPatch, "/v1/my/properties/p1/publish",
		`{"is_published":false}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAgent(c)

	if err := handler.SetPublished(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("service must be called for an explicit false")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPropertyHandler_SetPublished_Conflict(t *testing.T) {
	stub := &stubPropertyService{
		setPublishedFn: func(_ context.Context, _ string, _ bool, _ string) (*domain.Property, error) {
			return nil, domain.ErrMutationInFlight
		},
	}
	handler := NewPropertyHandler(stub)

	c, _ := newTestContext(http.MethodPatch, "/v1/my/properties/p1/publish",
		`{"is_published":true}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAgent(c)

	err := handler.SetPublished(c)
	if !errors.Is(err, domain.ErrMutationInFlight) {
		t.Fatalf("expected ErrMutationInFlight to propagate, got %v", err)
	}
}

func TestPropertyHandler_Delete_Success(t *testing.T) {
	stub := &stubPropertyService{
		deleteFn: func(_ context.Context, id, agentID string) error {
			if id != "p1" || agentID != "agent-1" {
				t.Fatalf("unexpected args: %s %s", id, agentID)
			}
			return nil
		},
	}
	handler := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/v1/my/properties/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAgent(c)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestPropertyHandler_Activity_Success(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubPropertyService{
		listActivityFn: func(_ context.Context, id, agentID string) ([]*domain.PropertyEvent, error) {
			if id != "p1" || agentID != "agent-1" {
				t.Fatalf("unexpected args: %s %s", id, agentID)
			}
			return []*domain.PropertyEvent{
				{PropertyID: id, AgentID: agentID, Action: domain.ActionCreated, At: at},
				{PropertyID: id, AgentID: agentID, Action: domain.ActionPublished, At: at.Add(time.Minute)},
			}, nil
		},
	}
	handler := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/my/properties/p1/activity", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAgent(c)

	if err := handler.Activity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []activityEventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].Action != "created" || resp[1].Action != "published" {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestPropertyHandler_Activity_NotOwnerPropagates(t *testing.T) {
	stub := &stubPropertyService{
		listActivityFn: func(_ context.Context, _, _ string) ([]*domain.PropertyEvent, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewPropertyHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/v1/my/properties/p1/activity", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAgent(c)

	if err := handler.Activity(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestPropertyHandler_Delete_NotOwnerPropagates(t *testing.T) {
	stub := &stubPropertyService{
		deleteFn: func(_ context.Context, _, _ string) error {
			return domain.ErrForbidden
		},
	}
	handler := NewPropertyHandler(stub)

	c, _ := newTestContext(http.MethodDelete, "/v1/my/properties/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAgent(c)

	if err := handler.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}
