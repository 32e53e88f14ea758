package gateway

import (
	"context"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	// Create inserts the record and fills in ID (and Date when zero).
	Create(ctx context.Context, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// SumReceived totals deposits into accountID and transfers it received, start <= date <= end.
	SumReceived(ctx context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error)
	// SumWithdrawn totals withdrawals from accountID and transfers it sent, start <= date <= end.
	SumWithdrawn(ctx context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error)
	// ListForAccountInPeriod returns every transaction touching accountID, oldest first.
	ListForAccountInPeriod(ctx context.Context, accountID int64, start, end time.Time) ([]*domain.Transaction, error)

	WithTx(tx TransactionObject) TransactionRepository
}
