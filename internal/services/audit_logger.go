package services

import (
	"context"
	"log/slog"
	"time"

	"pouparia/internal/models"

)

type traceIDKey struct{}

// ContextWithTraceID attaches the request trace ID so audit lines can be correlated with access logs
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

// AuditLoggerInterface records ledger mutations as structured events
type AuditLoggerInterface interface {
	LogTransactionRecorded(ctx context.Context, userID string, transaction *models.Transaction, duration time.Duration)
	LogTransactionEdited(ctx context.Context, userID string, before, after *models.Transaction, duration time.Duration)
	LogTransactionRemoved(ctx context.Context, userID string, transaction *models.Transaction, duration time.Duration)
	LogWriteRolledBack(ctx context.Context, userID, operation string, err error)
}

type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) AuditLoggerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger: logger,
	}
}

func (al *AuditLogger) LogTransactionRecorded(ctx context.Context, userID string, transaction *models.Transaction, duration time.Duration) {
	al.logger.InfoContext(ctx, "transaction recorded",
		slog.String("event_type", "transaction_recorded"),
		slog.String("user_id", userID),
		slog.String("transaction_id", transaction.ID.String()),
		slog.String("type", transaction.Type),
		slog.String("amount", transaction.Amount.StringFixed(2)),
		slog.String("date", transaction.Date.Format(dateOnlyLayout)),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogTransactionEdited(ctx context.Context, userID string, before, after *models.Transaction, duration time.Duration) {
	al.logger.InfoContext(ctx, "transaction edited",
		slog.String("event_type", "transaction_edited"),
		slog.String("user_id", userID),
		slog.String("transaction_id", after.ID.String()),
		slog.String("old_amount", before.SignedAmount().StringFixed(2)),
		slog.String("new_amount", after.SignedAmount().StringFixed(2)),
		slog.String("old_date", before.Date.Format(dateOnlyLayout)),
		slog.String("new_date", after.Date.Format(dateOnlyLayout)),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogTransactionRemoved(ctx context.Context, userID string, transaction *models.Transaction, duration time.Duration) {
	al.logger.InfoContext(ctx, "transaction removed",
		slog.String("event_type", "transaction_removed"),
		slog.String("user_id", userID),
		slog.String("transaction_id", transaction.ID.String()),
		slog.String("amount", transaction.SignedAmount().StringFixed(2)),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogWriteRolledBack(ctx context.Context, userID, operation string, err error) {
	al.logger.ErrorContext(ctx, "transaction write rolled back",
		slog.String("event_type", "transaction_write_rolled_back"),
		slog.String("user_id", userID),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}
