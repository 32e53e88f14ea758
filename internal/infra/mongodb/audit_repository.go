package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/clever-bank/ledger/internal/gateway"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const auditCollection = "audit_logs"

// auditDocument is the stored form; the event id doubles as _id so a
// redelivered event is written once.
type auditDocument struct {
	EventID            string    `bson:"_id"`
	TransactionID      int64     `bson:"transaction_id"`
	Type               string    `bson:"type"`
	Amount             string    `bson:"amount"`
	Currency           string    `bson:"currency"`
	SenderAccountID    int64     `bson:"sender_account_id"`
	RecipientAccountID int64     `bson:"recipient_account_id"`
	OccurredAt         time.Time `bson:"occurred_at"`
	ProcessedAt        time.Time `bson:"processed_at"`
}

type AuditRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	return &AuditRepository{
		collection: client.Database(dbName).Collection(auditCollection),
		now:        time.Now,
	}
}

func (r *AuditRepository) Save(ctx context.Context, log gateway.AuditLog) error {
	_, err := r.collection.InsertOne(ctx, toDocument(log, r.now()))
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

func toDocument(log gateway.AuditLog, processedAt time.Time) auditDocument {
	return auditDocument{
		EventID:            log.EventID,
		TransactionID:      log.TransactionID,
		Type:               log.Type,
		Amount:             log.Amount,
		Currency:           log.Currency,
		SenderAccountID:    log.SenderAccountID,
		RecipientAccountID: log.RecipientAccountID,
		OccurredAt:         log.OccurredAt,
		ProcessedAt:        processedAt,
	}
}
