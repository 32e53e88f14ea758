package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/clever-bank/ledger/internal/infra/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

type ledger struct {
	store        *memory.Store
	accounts     *memory.AccountRepository
	transactions *memory.TransactionRepository
	uow          *memory.Uow
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store)
	return &ledger{
		store:        store,
		accounts:     memory.NewAccountRepository(store),
		transactions: memory.NewTransactionRepository(store),
		uow:          memory.NewUow(store),
	}
}

func (l *ledger) balance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	acc, err := l.accounts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return acc.Balance
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// failingAccounts fails every balance write, inside or outside a unit.
type failingAccounts struct {
	gateway.AccountRepository
}

func (f failingAccounts) UpdateBalance(context.Context, int64, decimal.Decimal) error {
	return errDiskFull
}

func (f failingAccounts) WithTx(tx gateway.TransactionObject) gateway.AccountRepository {
	return failingAccounts{f.AccountRepository.WithTx(tx)}
}

// failingTransactions fails every insert.
type failingTransactions struct {
	gateway.TransactionRepository
}

func (f failingTransactions) Create(context.Context, *domain.Transaction) error {
	return errDiskFull
}

func (f failingTransactions) WithTx(tx gateway.TransactionObject) gateway.TransactionRepository {
	return failingTransactions{f.TransactionRepository.WithTx(tx)}
}

type publishedEvent struct {
	exchange, routingKey string
	body                 interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, exchange, routingKey string, body interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{exchange, routingKey, body})
	return p.err
}

// addAccount opens an extra account for customer 3 at bank 3.
func (l *ledger) addAccount(t *testing.T, number, balance, currency string) int64 {
	t.Helper()
	id, err := l.store.AddAccount(memory.AccountSeed{Number: number, Balance: dec(balance), Currency: currency, BankID: 3, CustomerID: 3})
	require.NoError(t, err)
	return id
}
