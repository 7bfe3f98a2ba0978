package sheets

import (
	"context"
	"time"

	"github.com/brackenhill/bakehouse/internal/domain"
)

// Appender records rows in the back-office spreadsheet. One tab holds
// submitted orders, another newsletter subscribers.
type Appender interface {
	// AppendOrder appends one row describing a submitted order.
	AppendOrder(ctx context.Context, payload domain.OrderPayload) error

	// AppendSubscriber appends a newsletter signup row.
	AppendSubscriber(ctx context.Context, email string, subscribedAt time.Time) error
}
