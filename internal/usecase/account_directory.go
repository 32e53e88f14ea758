package usecase

import (
	"context"
	"strings"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/shopspring/decimal"
)

// AccountDirectory is the read/write access layer for accounts. It never
// caches: the transaction engine relies on reads seeing committed state.
type AccountDirectory struct {
	accountRepository gateway.AccountRepository
}

func NewAccountDirectory(accountRepo gateway.AccountRepository) *AccountDirectory {
	return &AccountDirectory{accountRepository: accountRepo}
}

func (d *AccountDirectory) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := d.accountRepository.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get account", err)
	}
	return account, nil
}

// GetAccountByNumber ignores surrounding whitespace in the number.
func (d *AccountDirectory) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.ErrAccountNotFound
	}
	account, err := d.accountRepository.GetByNumber(ctx, number)
	if err != nil {
		return nil, storageError("get account by number", err)
	}
	return account, nil
}

// UpdateBalance overwrites the stored balance outside of any engine unit.
// Money movements must go through RecordTransactionUseCase instead.
func (d *AccountDirectory) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	return storageError("update balance", d.accountRepository.UpdateBalance(ctx, id, balance))
}

func (d *AccountDirectory) ListCustomerAccounts(ctx context.Context, customerID int64) ([]*domain.Account, error) {
	accounts, err := d.accountRepository.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, storageError("list customer accounts", err)
	}
	return accounts, nil
}
