package usecase

import (
	"context"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/shopspring/decimal"
)

// TransactionQueries is the read side of the transaction engine. Reporting
// uses it and never writes.
type TransactionQueries struct {
	transactionRepository gateway.TransactionRepository
	accountRepository     gateway.AccountRepository
}

func NewTransactionQueries(transactionRepo gateway.TransactionRepository, accountRepo gateway.AccountRepository) *TransactionQueries {
	return &TransactionQueries{
		transactionRepository: transactionRepo,
		accountRepository:     accountRepo,
	}
}

// ReadTransaction returns the transaction with sender and recipient attached.
func (q *TransactionQueries) ReadTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	transaction, err := q.transactionRepository.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("read transaction", err)
	}
	if err := q.hydrate(ctx, map[int64]*domain.Account{}, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (q *TransactionQueries) ReceivedMoney(ctx context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, domain.ErrInvalidPeriod
	}
	sum, err := q.transactionRepository.SumReceived(ctx, accountID, start, end)
	if err != nil {
		return decimal.Zero, storageError("sum received money", err)
	}
	return sum, nil
}

func (q *TransactionQueries) WithdrawnMoney(ctx context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, domain.ErrInvalidPeriod
	}
	sum, err := q.transactionRepository.SumWithdrawn(ctx, accountID, start, end)
	if err != nil {
		return decimal.Zero, storageError("sum withdrawn money", err)
	}
	return sum, nil
}

// PeriodTransactions lists the account's transactions, oldest first.
func (q *TransactionQueries) PeriodTransactions(ctx context.Context, accountID int64, start, end time.Time) ([]*domain.Transaction, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidPeriod
	}
	transactions, err := q.transactionRepository.ListForAccountInPeriod(ctx, accountID, start, end)
	if err != nil {
		return nil, storageError("list period transactions", err)
	}

	// seen is per call.
	seen := make(map[int64]*domain.Account)
	for _, transaction := range transactions {
		if err := q.hydrate(ctx, seen, transaction); err != nil {
			return nil, err
		}
	}
	return transactions, nil
}

func (q *TransactionQueries) hydrate(ctx context.Context, seen map[int64]*domain.Account, transaction *domain.Transaction) error {
	load := func(id int64) (*domain.Account, error) {
		if account, ok := seen[id]; ok {
			return account, nil
		}
		account, err := q.accountRepository.GetByID(ctx, id)
		if err != nil {
			return nil, storageError("load transaction account", err)
		}
		seen[id] = account
		return account, nil
	}

	var err error
	if transaction.Sender, err = load(transaction.SenderAccountID); err != nil {
		return err
	}
	if transaction.Recipient, err = load(transaction.RecipientAccountID); err != nil {
		return err
	}
	return nil
}
