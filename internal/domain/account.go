package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bank struct {
	ID   int64
	Name string
}

type Customer struct {
	ID   int64
	Name string
}

// Account is a customer's balance in one currency at one bank.
// Bank and Customer are snapshots read together with the account row.
type Account struct {
	ID           int64
	Number       string
	Balance      decimal.Decimal
	Currency     string
	OpenDate     time.Time
	InterestDate *time.Time
	Bank         Bank
	Customer     Customer
}

// Credit returns the balance after receiving amount.
func (a *Account) Credit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return a.Balance, ErrInvalidAmount
	}
	return a.Balance.Add(amount), nil
}

// Debit returns the balance after paying amount. With allowOverdraft=false
// a result below zero is refused.
func (a *Account) Debit(amount decimal.Decimal, allowOverdraft bool) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return a.Balance, ErrInvalidAmount
	}
	next := a.Balance.Sub(amount)
	if next.IsNegative() && !allowOverdraft {
		return a.Balance, ErrInsufficientFunds
	}
	return next, nil
}

func (a *Account) SameCurrency(other *Account) bool {
	return a.Currency == other.Currency
}

// ValidateCurrency accepts ISO-4217 style codes: three upper-case letters.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ErrInvalidCurrency
		}
	}
	return nil
}
