package gateway

import (
	"context"
	"time"
)

// AuditLog is one stored copy of a transaction.recorded event.
type AuditLog struct {
	EventID            string
	TransactionID      int64
	Type               string
	Amount             string
	Currency           string
	SenderAccountID    int64
	RecipientAccountID int64
	OccurredAt         time.Time
}

type AuditRepository interface {
	Save(ctx context.Context, log AuditLog) error
}
