package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/brackenhill/bakehouse/internal/domain"
)

// Service composes and sends order notification emails.
type Service struct {
	sender      Sender
	fromAddress string
	fromName    string
	// orderTo is the bakery inbox that receives every order.
	orderTo string
}

// NewService creates a new email service.
func NewService(sender Sender, fromAddress, fromName, orderTo string) *Service {
	return &Service{
		sender:      sender,
		fromAddress: fromAddress,
		fromName:    fromName,
		orderTo:     orderTo,
	}
}

// orderEmailData is the template context for order emails.
type orderEmailData struct {
	domain.OrderPayload
	Subtotal string
	Savings  string
	Lines    []orderEmailLine
}

type orderEmailLine struct {
	Quantity int
	Name     string
	Price    string
}

// SendOrderNotification emails the order to the bakery inbox, and a
// confirmation copy to the customer when they left an email address.
func (s *Service) SendOrderNotification(ctx context.Context, payload domain.OrderPayload) error {
	data := buildOrderEmailData(payload)

	htmlBody, textBody, err := renderOrderEmail(data)
	if err != nil {
		return fmt.Errorf("failed to render order email: %w", err)
	}

	// The bakery inbox is unset in dev; never hand the sender an empty
	// recipient.
	to := make([]string, 0, 2)
	if s.orderTo != "" {
		to = append(to, s.orderTo)
	}
	if payload.Email != "" {
		to = append(to, payload.Email)
	}
	if len(to) == 0 {
		return fmt.Errorf("failed to send order notification: %w", ErrNoRecipients)
	}

	msg := &Email{
		To:       to,
		From:     fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress),
		Subject:  fmt.Sprintf("New order %s from %s", shortRef(payload.Reference), payload.Name),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}

	if _, err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send order notification: %w", err)
	}
	return nil
}

func buildOrderEmailData(payload domain.OrderPayload) orderEmailData {
	lines := make([]orderEmailLine, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, orderEmailLine{
			Quantity: item.Quantity,
			Name:     item.Name,
			Price:    FormatCents(item.PriceCents),
		})
	}
	return orderEmailData{
		OrderPayload: payload,
		Subtotal:     FormatCents(payload.SubtotalCents),
		Savings:      FormatCents(payload.SavingsCents),
		Lines:        lines,
	}
}

// FormatCents renders an integer-cents amount as dollars, e.g. 1850 -> "$18.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func shortRef(reference string) string {
	if i := strings.IndexByte(reference, '-'); i > 0 {
		return reference[:i]
	}
	return reference
}

const orderTextTemplate = `New order {{.Reference}}

Customer: {{.Name}}
{{if .Email}}Email: {{.Email}}
{{end}}{{if .Phone}}Phone: {{.Phone}}
{{end}}
Items:
{{range .Lines}}  {{.Quantity}} x {{.Name}} - {{.Price}}
{{end}}
Subtotal: {{.Subtotal}}
{{if ne .SavingsCents 0}}Bulk discount savings: {{.Savings}}
{{end}}
{{if eq .DeliveryOption "delivery"}}Delivery to: {{.Address}}
{{else}}Pickup at store
{{end}}{{if .Comments}}
Special instructions:
{{.Comments}}
{{end}}`

const orderHTMLTemplate = `<h2>New order {{.Reference}}</h2>
<p><strong>{{.Name}}</strong>
{{if .Email}}<br>{{.Email}}{{end}}
{{if .Phone}}<br>{{.Phone}}{{end}}</p>
<table>
{{range .Lines}}  <tr><td>{{.Quantity}} x {{.Name}}</td><td align="right">{{.Price}}</td></tr>
{{end}}  <tr><td><strong>Subtotal</strong></td><td align="right"><strong>{{.Subtotal}}</strong></td></tr>
{{if ne .SavingsCents 0}}  <tr><td>You saved</td><td align="right">{{.Savings}}</td></tr>
{{end}}</table>
{{if eq .DeliveryOption "delivery"}}<p>Delivery to: {{.Address}}</p>{{else}}<p>Pickup at store</p>{{end}}
{{if .Comments}}<p><em>{{.Comments}}</em></p>{{end}}`

var (
	orderText = texttemplate.Must(texttemplate.New("order_text").Parse(orderTextTemplate))
	orderHTML = htmltemplate.Must(htmltemplate.New("order_html").Parse(orderHTMLTemplate))
)

func renderOrderEmail(data orderEmailData) (htmlBody, textBody string, err error) {
	var html, text bytes.Buffer
	if err := orderHTML.Execute(&html, data); err != nil {
		return "", "", err
	}
	if err := orderText.Execute(&text, data); err != nil {
		return "", "", err
	}
	return html.String(), text.String(), nil
}
