package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
)

// ErrMalformedEvent means the message can never be processed; consumers
// should drop it instead of requeueing.
var ErrMalformedEvent = errors.New("malformed transaction event")

type AuditTransactionUseCase struct {
	auditRepository gateway.AuditRepository
}

func NewAuditTransaction(auditRepo gateway.AuditRepository) *AuditTransactionUseCase {
	return &AuditTransactionUseCase{auditRepository: auditRepo}
}

// Execute stores one transaction.recorded message body.
func (uc *AuditTransactionUseCase) Execute(ctx context.Context, body []byte) error {
	var event domain.TransactionRecordedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if event.TransactionID == 0 || event.EventID == "" {
		return fmt.Errorf("%w: missing transaction or event id", ErrMalformedEvent)
	}

	err := uc.auditRepository.Save(ctx, gateway.AuditLog{
		EventID:            event.EventID,
		TransactionID:      event.TransactionID,
		Type:               event.Type,
		Amount:             event.Amount,
		Currency:           event.Currency,
		SenderAccountID:    event.SenderAccountID,
		RecipientAccountID: event.RecipientAccountID,
		OccurredAt:         event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}
