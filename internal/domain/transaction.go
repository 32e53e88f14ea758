package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors the fixed rows of the types table.
type TransactionType int32

const (
	Deposit    TransactionType = 1
	Withdrawal TransactionType = 2
	Transfer   TransactionType = 3
)

func (t TransactionType) String() string {
	switch t {
	case Deposit:
		return "Deposit"
	case Withdrawal:
		return "Withdrawal"
	case Transfer:
		return "Transfer"
	default:
		return fmt.Sprintf("TransactionType(%d)", int32(t))
	}
}

func (t TransactionType) Valid() bool {
	return t == Deposit || t == Withdrawal || t == Transfer
}

// ParseTransactionType accepts the type name (any case) or its numeric id.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit", "1":
		return Deposit, nil
	case "withdrawal", "withdraw", "2":
		return Withdrawal, nil
	case "transfer", "3":
		return Transfer, nil
	}
	return 0, ErrInvalidTransactionType
}

// AllTransactionTypes lists the rows seeded into the types table.
func AllTransactionTypes() []TransactionType {
	return []TransactionType{Deposit, Withdrawal, Transfer}
}

// Transaction is an immutable record of a money movement.
// For Deposit and Withdrawal sender and recipient are the same account.
type Transaction struct {
	ID                 int64
	Type               TransactionType
	Date               time.Time
	SenderAccountID    int64
	RecipientAccountID int64
	Amount             decimal.Decimal

	// Filled by read use cases; nil on freshly recorded transactions.
	Sender    *Account
	Recipient *Account
}

// Normalize validates the request shape. For deposits and withdrawals it
// sets the sender to the recipient.
func (t *Transaction) Normalize() error {
	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	switch t.Type {
	case Transfer:
		if t.SenderAccountID == t.RecipientAccountID {
			return ErrSameAccount
		}
	default:
		if t.SenderAccountID != 0 && t.SenderAccountID != t.RecipientAccountID {
			return ErrInvalidTransaction
		}
		t.SenderAccountID = t.RecipientAccountID
	}
	return nil
}

// IsOutgoingFor reports whether the transaction reduces the balance of accountID.
func (t *Transaction) IsOutgoingFor(accountID int64) bool {
	switch t.Type {
	case Withdrawal:
		return t.RecipientAccountID == accountID
	case Transfer:
		return t.SenderAccountID == accountID
	}
	return false
}
