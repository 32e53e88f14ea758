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

type AccountRepository struct {
	store *Store
	inTx  bool
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(_ context.Context, account gateway.NewAccount) (*domain.Account, error) {
	var (
		created *domain.Account
		err     error
	)
	r.store.locked(r.inTx, func() {
		_, bankOK := r.store.banks[account.BankID]
		_, customerOK := r.store.customers[account.CustomerID]
		if !bankOK || !customerOK {
			err = domain.ErrOwnerNotFound
			return
		}
		if r.store.numberTaken(account.Number) {
			err = fmt.Errorf("account %q: %w", account.Number, domain.ErrDuplicateNumber)
			return
		}
		r.store.nextAccountID++
		today := r.store.now().UTC().Truncate(24 * time.Hour)
		row := accountRow{
			id:           r.store.nextAccountID,
			number:       account.Number,
			balance:      account.Balance,
			currency:     account.Currency,
			openDate:     today,
			interestDate: &today,
			bankID:       account.BankID,
			customerID:   account.CustomerID,
		}
		r.store.accounts[row.id] = row
		created = r.store.toDomain(row)
	})
	return created, err
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	var account *domain.Account
	r.store.locked(r.inTx, func() {
		if row, ok := r.store.accounts[id]; ok {
			account = r.store.toDomain(row)
		}
	})
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// GetByIDForUpdate needs no extra locking: inside a unit the store mutex is already held.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *AccountRepository) GetByNumber(_ context.Context, number string) (*domain.Account, error) {
	var account *domain.Account
	r.store.locked(r.inTx, func() {
		for _, row := range r.store.accounts {
			if row.number == number {
				account = r.store.toDomain(row)
				return
			}
		}
	})
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepository) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0)
	r.store.locked(r.inTx, func() {
		for _, row := range r.store.accounts {
			if row.customerID == customerID {
				accounts = append(accounts, r.store.toDomain(row))
			}
		}
	})
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *AccountRepository) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	found := false
	r.store.locked(r.inTx, func() {
		row, ok := r.store.accounts[id]
		if !ok {
			return
		}
		row.balance = balance
		r.store.accounts[id] = row
		found = true
	})
	if !found {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) WithTx(tx gateway.TransactionObject) gateway.AccountRepository {
	store, ok := tx.(*Store)
	if !ok || store != r.store {
		return r
	}
	return &AccountRepository{store: r.store, inTx: true}
}
