package statement

import (
	"context"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Queries is the read side the reports are built from.
type Queries interface {
	ReadTransaction(ctx context.Context, id int64) (*domain.Transaction, error)
	ReceivedMoney(ctx context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error)
	WithdrawnMoney(ctx context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error)
	PeriodTransactions(ctx context.Context, accountID int64, start, end time.Time) ([]*domain.Transaction, error)
}

type Reporter struct {
	queries Queries
	now     func() time.Time
}

func NewReporter(queries Queries, now func() time.Time) *Reporter {
	if now == nil {
		now = time.Now
	}
	return &Reporter{queries: queries, now: now}
}

func (r *Reporter) Receipt(ctx context.Context, transactionID int64) (Document, error) {
	tx, err := r.queries.ReadTransaction(ctx, transactionID)
	if err != nil {
		return Document{}, err
	}
	return Receipt(tx, r.now()), nil
}

func (r *Reporter) AccountStatement(ctx context.Context, account *domain.Account, period Period) (Document, error) {
	transactions, err := r.queries.PeriodTransactions(ctx, account.ID, period.Start, period.End)
	if err != nil {
		return Document{}, err
	}
	return AccountStatement(account, period, transactions, r.now()), nil
}

func (r *Reporter) MoneyStatement(ctx context.Context, account *domain.Account, period Period) (Document, error) {
	received, err := r.queries.ReceivedMoney(ctx, account.ID, period.Start, period.End)
	if err != nil {
		return Document{}, err
	}
	withdrawn, err := r.queries.WithdrawnMoney(ctx, account.ID, period.Start, period.End)
	if err != nil {
		return Document{}, err
	}
	return MoneyStatement(account, period, received, withdrawn, r.now()), nil
}
