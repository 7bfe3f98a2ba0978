package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brackenhill/bakehouse/internal/domain"
	"github.com/brackenhill/bakehouse/internal/notify"
	"github.com/brackenhill/bakehouse/internal/service"
)

type mockSubmitter struct {
	SubmitOrderFunc func(ctx context.Context, payload domain.OrderPayload) (domain.Ack, error)
	payloads        []domain.OrderPayload
}

func (m *mockSubmitter) SubmitOrder(ctx context.Context, payload domain.OrderPayload) (domain.Ack, error) {
	m.payloads = append(m.payloads, payload)
	if m.SubmitOrderFunc != nil {
		return m.SubmitOrderFunc(ctx, payload)
	}
	return domain.Ack{OK: true, Message: notify.MsgOrderReceived}, nil
}

func newOrderHandler(t *testing.T, submitter service.Submitter) *OrderHandler {
	t.Helper()
	catalog := domain.DefaultCatalog()
	pricer, err := service.NewPricer(catalog)
	if err != nil {
		t.Fatalf("failed to create pricer: %v", err)
	}
	return NewOrderHandler(catalog, pricer, submitter, nil, nil)
}

func postOrder(t *testing.T, h *OrderHandler, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	var resp apiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rec, resp
}

func TestOrderSubmit_Success(t *testing.T) {
	submitter := &mockSubmitter{}
	h := newOrderHandler(t, submitter)

	rec, resp := postOrder(t, h, `{
		"name": "June Bracken",
		"email": "june@example.com",
		"items": [{"id": 1, "quantity": 5}, {"id": 3, "quantity": 1}],
		"deliveryOption": "pickup"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !resp.Success {
		t.Error("expected success response")
	}
	if resp.Message != notify.MsgOrderReceived {
		t.Errorf("message = %q, want %q", resp.Message, notify.MsgOrderReceived)
	}

	if len(submitter.payloads) != 1 {
		t.Fatalf("submitter received %d payloads, want 1", len(submitter.payloads))
	}
	payload := submitter.payloads[0]
	if payload.SubtotalCents != 3700 {
		t.Errorf("subtotal = %d, want 3700 (server-side pricing)", payload.SubtotalCents)
	}
	if payload.SavingsCents != 300 {
		t.Errorf("savings = %d, want 300", payload.SavingsCents)
	}
	if payload.Reference == "" {
		t.Error("payload reference must be set")
	}
	if len(payload.Items) != 2 {
		t.Errorf("payload items = %d, want 2", len(payload.Items))
	}
}

func TestOrderSubmit_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "malformed json",
			body:        `{"name": `,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name:        "no items",
			body:        `{"name": "June", "email": "june@example.com", "items": []}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please select at least one item to order",
		},
		{
			name:        "all quantities zero",
			body:        `{"name": "June", "email": "june@example.com", "items": [{"id": 1, "quantity": 0}]}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please select at least one item to order",
		},
		{
			name:        "missing name",
			body:        `{"email": "june@example.com", "items": [{"id": 1, "quantity": 1}]}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please enter your name",
		},
		{
			name:        "no contact info",
			body:        `{"name": "June", "items": [{"id": 1, "quantity": 1}]}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please provide either an email or phone number",
		},
		{
			name:        "invalid email",
			body:        `{"name": "June", "email": "not-an-email", "items": [{"id": 1, "quantity": 1}]}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please enter a valid email address",
		},
		{
			name:        "invalid phone",
			body:        `{"name": "June", "phone": "12-34", "items": [{"id": 1, "quantity": 1}]}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please enter a valid phone number (e.g., 123-456-7890)",
		},
		{
			name:        "delivery without address",
			body:        `{"name": "June", "email": "june@example.com", "items": [{"id": 1, "quantity": 1}], "deliveryOption": "delivery"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please provide a delivery address",
		},
		{
			name:        "unknown delivery option",
			body:        `{"name": "June", "email": "june@example.com", "items": [{"id": 1, "quantity": 1}], "deliveryOption": "drone"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Unknown delivery option",
		},
		{
			name:        "negative quantity",
			body:        `{"name": "June", "email": "june@example.com", "items": [{"id": 1, "quantity": -1}]}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Quantity cannot be negative",
		},
		{
			name:        "unknown item",
			body:        `{"name": "June", "email": "june@example.com", "items": [{"id": 99, "quantity": 1}]}`,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Item not found in catalog",
		},
		{
			name:        "unavailable item",
			body:        `{"name": "June", "email": "june@example.com", "items": [{"id": 5, "quantity": 1}]}`,
			wantStatus:  http.StatusConflict,
			wantMessage: "Item is not available for ordering",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter := &mockSubmitter{}
			h := newOrderHandler(t, submitter)

			rec, resp := postOrder(t, h, tt.body)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if resp.Success {
				t.Error("expected failure response")
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
			if len(submitter.payloads) != 0 {
				t.Error("invalid order must never reach the submitter")
			}
		})
	}
}

func TestOrderSubmit_DefaultsToPickup(t *testing.T) {
	submitter := &mockSubmitter{}
	h := newOrderHandler(t, submitter)

	rec, _ := postOrder(t, h, `{"name": "June", "email": "june@example.com", "items": [{"id": 1, "quantity": 1}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := submitter.payloads[0].DeliveryOption; got != domain.FulfillmentPickup {
		t.Errorf("delivery option = %q, want %q", got, domain.FulfillmentPickup)
	}
}

func TestOrderSubmit_CollaboratorRejection(t *testing.T) {
	submitter := &mockSubmitter{
		SubmitOrderFunc: func(ctx context.Context, payload domain.OrderPayload) (domain.Ack, error) {
			return domain.Ack{OK: false, Message: notify.MsgOrderFailed}, nil
		},
	}
	h := newOrderHandler(t, submitter)

	rec, resp := postOrder(t, h, `{"name": "June", "email": "june@example.com", "items": [{"id": 1, "quantity": 1}]}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if resp.Success {
		t.Error("expected failure response")
	}
	if resp.Message != notify.MsgOrderFailed {
		t.Errorf("message = %q, want %q", resp.Message, notify.MsgOrderFailed)
	}
}

func TestOrderSubmit_CollaboratorError(t *testing.T) {
	submitter := &mockSubmitter{
		SubmitOrderFunc: func(ctx context.Context, payload domain.OrderPayload) (domain.Ack, error) {
			return domain.Ack{}, errors.New("dial tcp: connection refused")
		},
	}
	h := newOrderHandler(t, submitter)

	rec, resp := postOrder(t, h, `{"name": "June", "email": "june@example.com", "items": [{"id": 1, "quantity": 1}]}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if resp.Message != "Network error. Please try again later." {
		t.Errorf("message = %q, want the network error message", resp.Message)
	}
}
