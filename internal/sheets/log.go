package sheets

import (
	"context"
	"log/slog"
	"time"

	"github.com/brackenhill/bakehouse/internal/domain"
)

// LogAppender is the development stand-in: it logs rows instead of
// writing a spreadsheet. Used when no spreadsheet is configured.
type LogAppender struct {
	logger *slog.Logger
}

// NewLogAppender creates a log-only appender.
func NewLogAppender(logger *slog.Logger) *LogAppender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogAppender{logger: logger}
}

func (l *LogAppender) AppendOrder(ctx context.Context, payload domain.OrderPayload) error {
	l.logger.Info("order row (log only)",
		slog.String("reference", payload.Reference),
		slog.String("name", payload.Name),
		slog.Int64("subtotal_cents", payload.SubtotalCents),
	)
	return nil
}

func (l *LogAppender) AppendSubscriber(ctx context.Context, email string, subscribedAt time.Time) error {
	l.logger.Info("subscriber row (log only)", slog.String("email", email))
	return nil
}
