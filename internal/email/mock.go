package email

import (
	"context"
	"sync"
)

// MockSender implements Sender for testing. It records every email and
// can be pointed at a custom send function to simulate failures.
type MockSender struct {
	mu       sync.Mutex
	sent     []*Email
	SendFunc func(ctx context.Context, email *Email) (string, error)
}

// NewMockSender creates a mock sender that records sent emails.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the email and invokes SendFunc if set.
func (m *MockSender) Send(ctx context.Context, email *Email) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, email)
	}
	return "mock-message-id", nil
}

// Sent returns the emails recorded so far.
func (m *MockSender) Sent() []*Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Email, len(m.sent))
	copy(out, m.sent)
	return out
}
