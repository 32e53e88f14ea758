package domain

import "errors"

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidAmount          = errors.New("transaction amount must be greater than zero")
	ErrInvalidTransactionType = errors.New("unknown transaction type")
	ErrInvalidTransaction     = errors.New("deposit and withdrawal must reference a single account")
	ErrSameAccount            = errors.New("cannot transfer to the same account")
	ErrCurrencyMismatch       = errors.New("accounts have different currencies")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidCurrency        = errors.New("currency must be a three-letter code")
	ErrInvalidPeriod          = errors.New("period end is before its start")
	ErrOwnerNotFound          = errors.New("bank or customer not found")
	ErrDuplicateNumber        = errors.New("account number already taken")

	// ErrStorage marks failures of the ledger store (connectivity, query, commit).
	// Everything else in this list is a validation error and leaves no state behind.
	ErrStorage = errors.New("storage error")
)

// IsValidationError reports whether err is one of the recoverable domain errors.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrAccountNotFound,
		ErrTransactionNotFound,
		ErrInvalidAmount,
		ErrInvalidTransactionType,
		ErrInvalidTransaction,
		ErrSameAccount,
		ErrCurrencyMismatch,
		ErrInsufficientFunds,
		ErrInvalidCurrency,
		ErrInvalidPeriod,
		ErrOwnerNotFound,
		ErrDuplicateNumber,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
