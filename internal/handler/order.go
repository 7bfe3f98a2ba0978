package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/brackenhill/bakehouse/internal/domain"
	"github.com/brackenhill/bakehouse/internal/service"
	"github.com/brackenhill/bakehouse/internal/telemetry"
)

// OrderHandler accepts finished order forms from the storefront.
//
// The browser keeps its own working cart; what arrives here is the full
// form in one request. The handler replays it through a fresh cart and
// checkout so the server enforces every step guard itself and re-prices
// the order from the catalog, never trusting client-side totals.
type OrderHandler struct {
	catalog   domain.Catalog
	pricer    *service.Pricer
	submitter service.Submitter
	metrics   *telemetry.Metrics
	logger    *slog.Logger

	// noticeDelay is how long a discount notice stays up before it
	// self-clears; zero picks the cart service default.
	noticeDelay time.Duration
}

// NewOrderHandler creates the order submission handler.
func NewOrderHandler(catalog domain.Catalog, pricer *service.Pricer, submitter service.Submitter, metrics *telemetry.Metrics, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		catalog:   catalog,
		pricer:    pricer,
		submitter: submitter,
		metrics:   metrics,
		logger:    logger,
	}
}

// WithNoticeDelay overrides the discount-notice display window.
func (h *OrderHandler) WithNoticeDelay(d time.Duration) *OrderHandler {
	h.noticeDelay = d
	return h
}

// orderRequest mirrors the storefront form payload.
type orderRequest struct {
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Items          []orderItemRequest `json:"items"`
	Comments       string             `json:"comments"`
	DeliveryOption string             `json:"deliveryOption"`
	Address        string             `json:"address"`
}

type orderItemRequest struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// Submit handles POST /api/orders.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	fulfillment := domain.Fulfillment(req.DeliveryOption)
	if fulfillment == "" {
		fulfillment = domain.FulfillmentPickup
	}
	if fulfillment != domain.FulfillmentPickup && fulfillment != domain.FulfillmentDelivery {
		respondJSON(w, http.StatusBadRequest, false, "Unknown delivery option")
		return
	}

	// Replay the form through the wizard. onNotice only feeds the
	// discount counter; this cart lives for one request.
	cart, err := service.NewCartService(h.catalog, h.noticeDelay, func(n service.Notice) {
		if n.Kind == service.NoticeStarted && h.metrics != nil {
			h.metrics.DiscountNotice()
		}
	}, h.logger)
	if err != nil {
		h.logger.Error("failed to open cart", "error", err)
		respondJSON(w, http.StatusInternalServerError, false, "Error processing your order. Please try again.")
		return
	}

	for _, item := range req.Items {
		if _, err := cart.SetQuantity(item.ID, item.Quantity); err != nil {
			respondError(w, err)
			return
		}
	}

	checkout := service.NewCheckoutService(cart, h.pricer, h.submitter, h.logger)
	if err := checkout.UpdateDraft(domain.OrderDraft{
		Contact:     domain.Contact{Name: req.Name, Email: req.Email, Phone: req.Phone},
		Fulfillment: fulfillment,
		Address:     req.Address,
		Comments:    req.Comments,
	}); err != nil {
		respondError(w, err)
		return
	}

	// Items -> Details -> Review, then submit.
	if err := checkout.Next(); err != nil {
		respondError(w, err)
		return
	}
	if err := checkout.Next(); err != nil {
		respondError(w, err)
		return
	}

	ack, err := checkout.Submit(ctx)
	if err != nil {
		if h.metrics != nil {
			h.metrics.OrderFailed()
		}
		if domain.IsCode(err, domain.EINTERNAL) {
			respondJSON(w, http.StatusInternalServerError, false, ack.Message)
			return
		}
		respondError(w, err)
		return
	}
	if !ack.OK {
		if h.metrics != nil {
			h.metrics.OrderFailed()
		}
		respondJSON(w, http.StatusInternalServerError, false, ack.Message)
		return
	}

	if h.metrics != nil {
		h.metrics.OrderSubmitted()
	}
	respondJSON(w, http.StatusOK, true, ack.Message)
}
