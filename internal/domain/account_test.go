package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCreditDebit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("100.50"), Currency: "BYN"}

	next, err := acc.Credit(decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	assert.True(t, next.Equal(decimal.RequireFromString("150.50")))

	next, err = acc.Debit(decimal.RequireFromString("20.00"), false)
	require.NoError(t, err)
	assert.True(t, next.Equal(decimal.RequireFromString("80.50")))

	_, err = acc.Debit(decimal.RequireFromString("100.51"), false)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	next, err = acc.Debit(decimal.RequireFromString("100.51"), true)
	require.NoError(t, err)
	assert.True(t, next.Equal(decimal.RequireFromString("-0.01")))

	_, err = acc.Credit(decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = acc.Debit(decimal.NewFromInt(-1), true)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency("BYN"))
	assert.NoError(t, ValidateCurrency("USD"))
	for _, bad := range []string{"", "usd", "US", "USDT", "U$D"} {
		assert.ErrorIs(t, ValidateCurrency(bad), ErrInvalidCurrency, bad)
	}
}
