package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brackenhill/bakehouse/internal/sheets"
	"github.com/brackenhill/bakehouse/internal/telemetry"
	"github.com/go-playground/validator/v10"
)

// Newsletter messages shown to the subscriber.
const (
	msgInvalidSubscriberEmail = "Please provide a valid email address"
	msgSubscribed             = "Thank you for subscribing to our newsletter!"
	msgSubscribeFailed        = "Error processing your subscription. Please try again."
)

// NewsletterHandler records newsletter signups. No cart or discount
// logic lives here; it shares only the email-shape check with checkout.
type NewsletterHandler struct {
	sheet    sheets.Appender
	validate *validator.Validate
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// NewNewsletterHandler creates the newsletter signup handler.
func NewNewsletterHandler(sheet sheets.Appender, metrics *telemetry.Metrics, logger *slog.Logger) *NewsletterHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsletterHandler{
		sheet:    sheet,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger,
	}
}

type newsletterRequest struct {
	Email string `json:"email"`
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, false, msgInvalidSubscriberEmail)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || h.validate.Var(strings.ToLower(email), "email") != nil {
		respondJSON(w, http.StatusBadRequest, false, msgInvalidSubscriberEmail)
		return
	}

	if err := h.sheet.AppendSubscriber(r.Context(), email, time.Now()); err != nil {
		h.logger.Error("newsletter signup failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, false, msgSubscribeFailed)
		return
	}

	if h.metrics != nil {
		h.metrics.NewsletterSignup()
	}
	respondJSON(w, http.StatusOK, true, msgSubscribed)
}
