package domain

import "time"

const (
	LedgerExchange           = "ledger_events"
	TransactionRecordedTopic = "transaction.recorded"
)

// TransactionRecordedEvent is published after a transaction commits.
// Amount travels as a string so no precision is lost in JSON.
type TransactionRecordedEvent struct {
	EventID            string    `json:"event_id"`
	TransactionID      int64     `json:"transaction_id"`
	Type               string    `json:"type"`
	Amount             string    `json:"amount"`
	Currency           string    `json:"currency"`
	SenderAccountID    int64     `json:"sender_account_id"`
	RecipientAccountID int64     `json:"recipient_account_id"`
	OccurredAt         time.Time `json:"occurred_at"`
}
