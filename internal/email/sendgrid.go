package email

import (
	"context"
	"fmt"
	"log/slog"
	netmail "net/mail"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender implements Sender using the SendGrid v3 API.
type SendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
	logger   *slog.Logger
}

// NewSendGridSender creates a SendGrid-backed email sender.
func NewSendGridSender(apiKey, from, fromName string, logger *slog.Logger) *SendGridSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

// Send sends an email via SendGrid.
func (s *SendGridSender) Send(ctx context.Context, email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", ErrNoRecipients
	}

	message := s.buildMessage(email)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("sendgrid: failed to send email", "error", err)
		return "", SendFailed(err)
	}
	if response.StatusCode >= 400 {
		s.logger.Error("sendgrid: send rejected", "status", response.StatusCode)
		return "", SendFailed(fmt.Errorf("status code %d", response.StatusCode))
	}

	s.logger.Info("sendgrid: email sent", "to", email.To)

	messageID := ""
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}
	return messageID, nil
}

// buildMessage assembles the v3 payload. From may arrive in RFC 5322
// display form ("Name <addr>"); the API wants the bare address and the
// display name as separate fields, so it is split here.
func (s *SendGridSender) buildMessage(email *Email) *mail.SGMailV3 {
	name, addr := s.fromName, s.from
	if email.From != "" {
		if parsed, err := netmail.ParseAddress(email.From); err == nil {
			addr = parsed.Address
			if parsed.Name != "" {
				name = parsed.Name
			}
		} else {
			addr = email.From
		}
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(name, addr))

	personalization := mail.NewPersonalization()
	for _, to := range email.To {
		personalization.AddTos(mail.NewEmail("", to))
	}
	personalization.Subject = email.Subject
	message.AddPersonalizations(personalization)

	if email.TextBody != "" {
		message.AddContent(mail.NewContent("text/plain", email.TextBody))
	}
	if email.HTMLBody != "" {
		message.AddContent(mail.NewContent("text/html", email.HTMLBody))
	}

	return message
}
