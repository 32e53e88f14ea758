package domain

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionNormalize(t *testing.T) {
	ten := decimal.NewFromInt(10)

	tests := []struct {
		name       string
		tx         Transaction
		wantErr    error
		wantSender int64
	}{
		{"deposit without sender", Transaction{Type: Deposit, Amount: ten, RecipientAccountID: 7}, nil, 7},
		{"withdrawal with same sender", Transaction{Type: Withdrawal, Amount: ten, SenderAccountID: 7, RecipientAccountID: 7}, nil, 7},
		{"deposit with foreign sender", Transaction{Type: Deposit, Amount: ten, SenderAccountID: 3, RecipientAccountID: 7}, ErrInvalidTransaction, 0},
		{"transfer", Transaction{Type: Transfer, Amount: ten, SenderAccountID: 3, RecipientAccountID: 7}, nil, 3},
		{"transfer to self", Transaction{Type: Transfer, Amount: ten, SenderAccountID: 7, RecipientAccountID: 7}, ErrSameAccount, 0},
		{"zero amount", Transaction{Type: Deposit, Amount: decimal.Zero, RecipientAccountID: 7}, ErrInvalidAmount, 0},
		{"negative amount", Transaction{Type: Transfer, Amount: ten.Neg(), SenderAccountID: 1, RecipientAccountID: 7}, ErrInvalidAmount, 0},
		{"unknown type", Transaction{Type: 9, Amount: ten, RecipientAccountID: 7}, ErrInvalidTransactionType, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := tt.tx
			err := tx.Normalize()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSender, tx.SenderAccountID)
		})
	}
}

func TestParseTransactionType(t *testing.T) {
	for in, want := range map[string]TransactionType{
		"deposit": Deposit, "Withdrawal": Withdrawal, "withdraw": Withdrawal, " TRANSFER ": Transfer, "3": Transfer,
	} {
		got, err := ParseTransactionType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTransactionType("interest")
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
	assert.Equal(t, "TransactionType(9)", TransactionType(9).String())
}

func TestIsOutgoingFor(t *testing.T) {
	transfer := Transaction{Type: Transfer, SenderAccountID: 1, RecipientAccountID: 2}
	assert.True(t, transfer.IsOutgoingFor(1))
	assert.False(t, transfer.IsOutgoingFor(2))

	withdrawal := Transaction{Type: Withdrawal, SenderAccountID: 1, RecipientAccountID: 1}
	assert.True(t, withdrawal.IsOutgoingFor(1))

	deposit := Transaction{Type: Deposit, SenderAccountID: 1, RecipientAccountID: 1}
	assert.False(t, deposit.IsOutgoingFor(1))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(fmt.Errorf("wrap: %w", ErrCurrencyMismatch)))
	assert.False(t, IsValidationError(fmt.Errorf("%w: boom", ErrStorage)))
}
