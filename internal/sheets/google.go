package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brackenhill/bakehouse/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleConfig identifies the target spreadsheet and tabs.
type GoogleConfig struct {
	SpreadsheetID    string
	OrdersSheet      string
	SubscribersSheet string
	CredentialsJSON  string // service-account key, raw JSON
}

// GoogleAppender implements Appender against the Google Sheets API using
// a service account.
type GoogleAppender struct {
	svc    *sheets.Service
	config GoogleConfig
	logger *slog.Logger
}

// NewGoogleAppender creates a Sheets client from service-account credentials.
func NewGoogleAppender(ctx context.Context, config GoogleConfig, logger *slog.Logger) (*GoogleAppender, error) {
	if config.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(config.CredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &GoogleAppender{svc: svc, config: config, logger: logger}, nil
}

// AppendOrder appends one row per order:
// reference, timestamp, name, email, phone, items, fulfillment, address, subtotal, savings, comments.
func (g *GoogleAppender) AppendOrder(ctx context.Context, payload domain.OrderPayload) error {
	items := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, fmt.Sprintf("%d x %s", item.Quantity, item.Name))
	}

	row := []interface{}{
		payload.Reference,
		time.Now().Format(time.RFC3339),
		payload.Name,
		payload.Email,
		payload.Phone,
		strings.Join(items, ", "),
		string(payload.DeliveryOption),
		payload.Address,
		centsToDollars(payload.SubtotalCents),
		centsToDollars(payload.SavingsCents),
		payload.Comments,
	}

	if err := g.append(ctx, g.config.OrdersSheet, row); err != nil {
		return fmt.Errorf("failed to append order row: %w", err)
	}

	g.logger.Info("order row appended", slog.String("reference", payload.Reference))
	return nil
}

// AppendSubscriber appends [email, subscription date] to the subscribers tab.
func (g *GoogleAppender) AppendSubscriber(ctx context.Context, email string, subscribedAt time.Time) error {
	row := []interface{}{email, subscribedAt.Format(time.RFC3339)}

	if err := g.append(ctx, g.config.SubscribersSheet, row); err != nil {
		return fmt.Errorf("failed to append subscriber row: %w", err)
	}

	g.logger.Info("subscriber row appended")
	return nil
}

func (g *GoogleAppender) append(ctx context.Context, sheet string, row []interface{}) error {
	valueRange := &sheets.ValueRange{Values: [][]interface{}{row}}

	_, err := g.svc.Spreadsheets.Values.
		Append(g.config.SpreadsheetID, sheet+"!A:Z", valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// centsToDollars renders cents as a plain decimal string so the sheet
// gets a numeric cell, not a float artifact.
func centsToDollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
