// Package memory is an in-process ledger store with the same semantics as
// the Postgres one. Every unit of work holds the store mutex for its whole
// duration, so units are serializable.
package memory

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type accountRow struct {
	id           int64
	number       string
	balance      decimal.Decimal
	currency     string
	openDate     time.Time
	interestDate *time.Time
	bankID       int64
	customerID   int64
}

type Store struct {
	mu sync.Mutex

	banks        map[int64]domain.Bank
	customers    map[int64]domain.Customer
	accounts     map[int64]accountRow
	transactions []domain.Transaction

	nextAccountID     int64
	nextTransactionID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		banks:     make(map[int64]domain.Bank),
		customers: make(map[int64]domain.Customer),
		accounts:  make(map[int64]accountRow),
		now:       time.Now,
	}
}

// snapshot is what a failed unit of work restores.
type snapshot struct {
	accounts          map[int64]accountRow
	transactions      []domain.Transaction
	nextAccountID     int64
	nextTransactionID int64
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		accounts:          maps.Clone(s.accounts),
		transactions:      slices.Clone(s.transactions),
		nextAccountID:     s.nextAccountID,
		nextTransactionID: s.nextTransactionID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.nextAccountID = snap.nextAccountID
	s.nextTransactionID = snap.nextTransactionID
}

// locked runs fn under the store mutex unless the caller already holds it
// through a unit of work.
func (s *Store) locked(inTx bool, fn func()) {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

// toDomain assembles the account with its bank and customer snapshots.
func (s *Store) toDomain(row accountRow) *domain.Account {
	account := &domain.Account{
		ID:       row.id,
		Number:   row.number,
		Balance:  row.balance,
		Currency: row.currency,
		OpenDate: row.openDate,
		Bank:     s.banks[row.bankID],
		Customer: s.customers[row.customerID],
	}
	if row.interestDate != nil {
		d := *row.interestDate
		account.InterestDate = &d
	}
	return account
}

// AddBank and AddCustomer upsert reference rows.
func (s *Store) AddBank(bank domain.Bank) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banks[bank.ID] = bank
}

func (s *Store) AddCustomer(customer domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
}

// AccountSeed describes a pre-existing account. A zero ID takes the next free one.
type AccountSeed struct {
	ID         int64
	Number     string
	Balance    decimal.Decimal
	Currency   string
	OpenDate   time.Time
	BankID     int64
	CustomerID int64
}

// numberTaken must be called with the store locked.
func (s *Store) numberTaken(number string) bool {
	for _, row := range s.accounts {
		if row.number == number {
			return true
		}
	}
	return false
}

// AddAccount stores a pre-existing account. Numbers are unique across the store.
func (s *Store) AddAccount(seed AccountSeed) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.numberTaken(seed.Number) {
		return 0, fmt.Errorf("account %q: %w", seed.Number, domain.ErrDuplicateNumber)
	}
	id := seed.ID
	if id == 0 {
		id = s.nextAccountID + 1
	}
	if id > s.nextAccountID {
		s.nextAccountID = id
	}
	openDate := seed.OpenDate
	if openDate.IsZero() {
		openDate = s.now().UTC().Truncate(24 * time.Hour)
	}
	interestDate := openDate
	s.accounts[id] = accountRow{
		id:           id,
		number:       seed.Number,
		balance:      seed.Balance,
		currency:     seed.Currency,
		openDate:     openDate,
		interestDate: &interestDate,
		bankID:       seed.BankID,
		customerID:   seed.CustomerID,
	}
	return id, nil
}

// TransactionCount is used by tests to assert that nothing was left behind.
func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}
