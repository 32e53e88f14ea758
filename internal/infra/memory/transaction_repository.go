package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	store *Store
	inTx  bool
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) Create(_ context.Context, tx *domain.Transaction) error {
	var err error
	r.store.locked(r.inTx, func() {
		// Same foreign keys as the transactions table.
		if _, ok := r.store.accounts[tx.SenderAccountID]; !ok {
			err = fmt.Errorf("sender %d: %w", tx.SenderAccountID, domain.ErrAccountNotFound)
			return
		}
		if _, ok := r.store.accounts[tx.RecipientAccountID]; !ok {
			err = fmt.Errorf("recipient %d: %w", tx.RecipientAccountID, domain.ErrAccountNotFound)
			return
		}
		if !tx.Type.Valid() {
			err = domain.ErrInvalidTransactionType
			return
		}
		if tx.Date.IsZero() {
			tx.Date = r.store.now()
		}
		r.store.nextTransactionID++
		tx.ID = r.store.nextTransactionID

		stored := *tx
		stored.Sender, stored.Recipient = nil, nil
		r.store.transactions = append(r.store.transactions, stored)
	})
	return err
}

func (r *TransactionRepository) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	var found *domain.Transaction
	r.store.locked(r.inTx, func() {
		for i := range r.store.transactions {
			if r.store.transactions[i].ID == id {
				tx := r.store.transactions[i]
				found = &tx
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return found, nil
}

func inPeriod(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

func (r *TransactionRepository) SumReceived(_ context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.store.locked(r.inTx, func() {
		for _, tx := range r.store.transactions {
			if tx.RecipientAccountID != accountID || !inPeriod(tx.Date, start, end) {
				continue
			}
			if tx.Type == domain.Deposit || tx.Type == domain.Transfer {
				sum = sum.Add(tx.Amount)
			}
		}
	})
	return sum, nil
}

func (r *TransactionRepository) SumWithdrawn(_ context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.store.locked(r.inTx, func() {
		for _, tx := range r.store.transactions {
			if tx.SenderAccountID != accountID || !inPeriod(tx.Date, start, end) {
				continue
			}
			if tx.Type == domain.Withdrawal || tx.Type == domain.Transfer {
				sum = sum.Add(tx.Amount)
			}
		}
	})
	return sum, nil
}

// ListForAccountInPeriod orders by date, then id, like the SQL query.
func (r *TransactionRepository) ListForAccountInPeriod(_ context.Context, accountID int64, start, end time.Time) ([]*domain.Transaction, error) {
	out := make([]*domain.Transaction, 0)
	r.store.locked(r.inTx, func() {
		for _, tx := range r.store.transactions {
			if tx.SenderAccountID != accountID && tx.RecipientAccountID != accountID {
				continue
			}
			if !inPeriod(tx.Date, start, end) {
				continue
			}
			cp := tx
			out = append(out, &cp)
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TransactionRepository) WithTx(tx gateway.TransactionObject) gateway.TransactionRepository {
	store, ok := tx.(*Store)
	if !ok || store != r.store {
		return r
	}
	return &TransactionRepository{store: r.store, inTx: true}
}
