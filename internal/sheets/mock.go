package sheets

import (
	"context"
	"sync"
	"time"

	"github.com/brackenhill/bakehouse/internal/domain"
)

// MockAppender implements Appender for testing.
type MockAppender struct {
	mu          sync.Mutex
	Orders      []domain.OrderPayload
	Subscribers []string

	AppendOrderFunc      func(ctx context.Context, payload domain.OrderPayload) error
	AppendSubscriberFunc func(ctx context.Context, email string, subscribedAt time.Time) error
}

// NewMockAppender creates a recording mock.
func NewMockAppender() *MockAppender {
	return &MockAppender{}
}

func (m *MockAppender) AppendOrder(ctx context.Context, payload domain.OrderPayload) error {
	if m.AppendOrderFunc != nil {
		if err := m.AppendOrderFunc(ctx, payload); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Orders = append(m.Orders, payload)
	m.mu.Unlock()
	return nil
}

func (m *MockAppender) AppendSubscriber(ctx context.Context, email string, subscribedAt time.Time) error {
	if m.AppendSubscriberFunc != nil {
		if err := m.AppendSubscriberFunc(ctx, email, subscribedAt); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Subscribers = append(m.Subscribers, email)
	m.mu.Unlock()
	return nil
}
