package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendGridSender_BuildMessage(t *testing.T) {
	s := NewSendGridSender("test-key", "orders@bakehouse.test", "Brackenhill Bakehouse", nil)

	msg := s.buildMessage(&Email{
		To:       []string{"kitchen@bakehouse.test", "june@example.com"},
		From:     "Brackenhill Bakehouse <orders@bakehouse.test>",
		Subject:  "New order 7f3c2a10 from June Bracken",
		TextBody: "Items:",
		HTMLBody: "<h2>New order</h2>",
	})

	// The v3 payload's from.email must be the bare address, never the
	// display form, or the API rejects the send.
	require.NotNil(t, msg.From)
	assert.Equal(t, "orders@bakehouse.test", msg.From.Address)
	assert.NotContains(t, msg.From.Address, "<")
	assert.Equal(t, "Brackenhill Bakehouse", msg.From.Name)

	require.Len(t, msg.Personalizations, 1)
	p := msg.Personalizations[0]
	require.Len(t, p.To, 2)
	assert.Equal(t, "kitchen@bakehouse.test", p.To[0].Address)
	assert.Equal(t, "june@example.com", p.To[1].Address)
	assert.Equal(t, "New order 7f3c2a10 from June Bracken", p.Subject)

	require.Len(t, msg.Content, 2)
	assert.Equal(t, "text/plain", msg.Content[0].Type)
	assert.Equal(t, "text/html", msg.Content[1].Type)
}

func TestSendGridSender_BuildMessage_FromForms(t *testing.T) {
	s := NewSendGridSender("test-key", "orders@bakehouse.test", "Brackenhill Bakehouse", nil)

	tests := []struct {
		name     string
		from     string
		wantName string
		wantAddr string
	}{
		{
			name:     "empty from falls back to configured sender",
			from:     "",
			wantName: "Brackenhill Bakehouse",
			wantAddr: "orders@bakehouse.test",
		},
		{
			name:     "bare address keeps configured name",
			from:     "hello@bakehouse.test",
			wantName: "Brackenhill Bakehouse",
			wantAddr: "hello@bakehouse.test",
		},
		{
			name:     "display form is split",
			from:     "Front Counter <counter@bakehouse.test>",
			wantName: "Front Counter",
			wantAddr: "counter@bakehouse.test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := s.buildMessage(&Email{To: []string{"june@example.com"}, From: tt.from, TextBody: "hi"})

			require.NotNil(t, msg.From)
			assert.Equal(t, tt.wantName, msg.From.Name)
			assert.Equal(t, tt.wantAddr, msg.From.Address)
			assert.NotContains(t, msg.From.Address, "<")
		})
	}
}
