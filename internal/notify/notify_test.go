package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/brackenhill/bakehouse/internal/domain"
	"github.com/brackenhill/bakehouse/internal/email"
	"github.com/brackenhill/bakehouse/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() domain.OrderPayload {
	return domain.OrderPayload{
		Reference: "ref-123",
		Name:      "June Bracken",
		Email:     "june@example.com",
		Items: []domain.PayloadItem{
			{ID: 1, Name: "Crunchy Round Loaf", Quantity: 2, PriceCents: 1800},
		},
		DeliveryOption: domain.FulfillmentPickup,
		SubtotalCents:  1800,
		SavingsCents:   200,
	}
}

func TestSubmitOrder_Success(t *testing.T) {
	sender := email.NewMockSender()
	sheet := sheets.NewMockAppender()
	notifier := NewNotifier(email.NewService(sender, "orders@bakehouse.test", "Bakehouse", "kitchen@bakehouse.test"), sheet, nil)

	ack, err := notifier.SubmitOrder(context.Background(), testPayload())
	require.NoError(t, err)
	assert.True(t, ack.OK)
	assert.Equal(t, MsgOrderReceived, ack.Message)

	assert.Len(t, sender.Sent(), 1)
	require.Len(t, sheet.Orders, 1)
	assert.Equal(t, "ref-123", sheet.Orders[0].Reference)
}

func TestSubmitOrder_EmailFailure(t *testing.T) {
	sender := email.NewMockSender()
	sender.SendFunc = func(ctx context.Context, e *email.Email) (string, error) {
		return "", errors.New("provider down")
	}
	sheet := sheets.NewMockAppender()
	notifier := NewNotifier(email.NewService(sender, "orders@bakehouse.test", "Bakehouse", "kitchen@bakehouse.test"), sheet, nil)

	ack, err := notifier.SubmitOrder(context.Background(), testPayload())

	// An email failure is a normal failure acknowledgment, not an error:
	// the caller surfaces ack.Message and the customer can retry.
	require.NoError(t, err)
	assert.False(t, ack.OK)
	assert.Equal(t, MsgOrderFailed, ack.Message)
	assert.Empty(t, sheet.Orders, "no sheet row when the email never went out")
}

func TestSubmitOrder_SheetFailureAfterEmail(t *testing.T) {
	sender := email.NewMockSender()
	sheet := sheets.NewMockAppender()
	sheet.AppendOrderFunc = func(ctx context.Context, payload domain.OrderPayload) error {
		return errors.New("quota exceeded")
	}
	notifier := NewNotifier(email.NewService(sender, "orders@bakehouse.test", "Bakehouse", "kitchen@bakehouse.test"), sheet, nil)

	ack, err := notifier.SubmitOrder(context.Background(), testPayload())

	// The email already reached the bakery; surfacing the sheet failure
	// would invite a duplicate resubmission.
	require.NoError(t, err)
	assert.True(t, ack.OK)
	assert.Equal(t, MsgOrderReceived, ack.Message)
	assert.Len(t, sender.Sent(), 1)
}
