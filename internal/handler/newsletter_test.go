package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brackenhill/bakehouse/internal/sheets"
)

func postNewsletter(t *testing.T, h *NewsletterHandler, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Subscribe(rec, req)

	var resp apiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rec, resp
}

func TestNewsletterSubscribe_Success(t *testing.T) {
	sheet := sheets.NewMockAppender()
	h := NewNewsletterHandler(sheet, nil, nil)

	rec, resp := postNewsletter(t, h, `{"email": "  june@example.com "}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !resp.Success {
		t.Error("expected success response")
	}
	if resp.Message != msgSubscribed {
		t.Errorf("message = %q, want %q", resp.Message, msgSubscribed)
	}
	if len(sheet.Subscribers) != 1 || sheet.Subscribers[0] != "june@example.com" {
		t.Errorf("subscribers = %v, want the trimmed address recorded once", sheet.Subscribers)
	}
}

func TestNewsletterSubscribe_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email"`},
		{"empty email", `{"email": ""}`},
		{"whitespace email", `{"email": "   "}`},
		{"not an email", `{"email": "june_at_example"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := sheets.NewMockAppender()
			h := NewNewsletterHandler(sheet, nil, nil)

			rec, resp := postNewsletter(t, h, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if resp.Message != msgInvalidSubscriberEmail {
				t.Errorf("message = %q, want %q", resp.Message, msgInvalidSubscriberEmail)
			}
			if len(sheet.Subscribers) != 0 {
				t.Error("invalid email must not be recorded")
			}
		})
	}
}

func TestNewsletterSubscribe_AppendFailure(t *testing.T) {
	sheet := sheets.NewMockAppender()
	sheet.AppendSubscriberFunc = func(ctx context.Context, email string, subscribedAt time.Time) error {
		return errors.New("quota exceeded")
	}
	h := NewNewsletterHandler(sheet, nil, nil)

	rec, resp := postNewsletter(t, h, `{"email": "june@example.com"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if resp.Message != msgSubscribeFailed {
		t.Errorf("message = %q, want %q", resp.Message, msgSubscribeFailed)
	}
}
