package gateway

import (
	"context"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// NewAccount carries the columns written when an account is opened.
type NewAccount struct {
	Number     string
	Balance    decimal.Decimal
	Currency   string
	BankID     int64
	CustomerID int64
}

// AccountRepository is the persistence contract for accounts. Every read
// returns the committed state at call time; implementations must not cache.
type AccountRepository interface {
	Create(ctx context.Context, account NewAccount) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Account, error)

	// GetByIDForUpdate locks the row until the surrounding unit ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error

	// WithTx binds the repository to a unit started by the TransactionManager.
	WithTx(tx TransactionObject) AccountRepository
}
