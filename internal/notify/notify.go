// Package notify implements the order-notification collaborator: the
// boundary the checkout hands a finalized order to. It emails the order
// and records a spreadsheet row, and answers with a customer-facing
// success or failure message.
package notify

import (
	"context"
	"log/slog"

	"github.com/brackenhill/bakehouse/internal/domain"
	"github.com/brackenhill/bakehouse/internal/email"
	"github.com/brackenhill/bakehouse/internal/sheets"
)

// Customer-facing acknowledgment messages.
const (
	MsgOrderReceived = "Order received! We will contact you soon."
	MsgOrderFailed   = "Error processing your order. Please try again."
)

// Notifier delivers submitted orders: email first, spreadsheet second.
type Notifier struct {
	email  *email.Service
	sheet  sheets.Appender
	logger *slog.Logger
}

// NewNotifier creates the production order collaborator.
func NewNotifier(emailService *email.Service, sheet sheets.Appender, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{email: emailService, sheet: sheet, logger: logger}
}

// SubmitOrder emails the order and appends the order row.
//
// The email is the channel the bakery actually works from, so its
// failure is a failure acknowledgment and the customer may retry. A
// sheet failure after the email went out is logged but not surfaced:
// failing here would invite a resubmission and a duplicate order email.
// The returned error is reserved for transport-level breakage; an email
// provider rejection is a normal failure Ack.
func (n *Notifier) SubmitOrder(ctx context.Context, payload domain.OrderPayload) (domain.Ack, error) {
	if err := n.email.SendOrderNotification(ctx, payload); err != nil {
		n.logger.Error("order email failed",
			slog.String("reference", payload.Reference),
			slog.Any("error", err),
		)
		return domain.Ack{OK: false, Message: MsgOrderFailed}, nil
	}

	if err := n.sheet.AppendOrder(ctx, payload); err != nil {
		n.logger.Warn("order row append failed, order already emailed",
			slog.String("reference", payload.Reference),
			slog.Any("error", err),
		)
	}

	return domain.Ack{OK: true, Message: MsgOrderReceived}, nil
}
