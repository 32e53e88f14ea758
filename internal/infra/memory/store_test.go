package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) (*Store, *AccountRepository, *TransactionRepository) {
	t.Helper()
	store := NewStore()
	SeedDemo(store)
	return store, NewAccountRepository(store), NewTransactionRepository(store)
}

func TestUowRollsBackOnError(t *testing.T) {
	store, accounts, transactions := newSeededStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := NewUow(store).Run(ctx, func(ctx context.Context) error {
		tx := ctx.Value(gateway.TransactionKey)
		require.NotNil(t, tx)

		require.NoError(t, transactions.WithTx(tx).Create(ctx, &domain.Transaction{
			Type: domain.Deposit, Amount: decimal.NewFromInt(5), SenderAccountID: 1, RecipientAccountID: 1,
		}))
		require.NoError(t, accounts.WithTx(tx).UpdateBalance(ctx, 1, decimal.NewFromInt(1)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	acc, err := accounts.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("100.50")))
	assert.Equal(t, 0, store.TransactionCount())
}

func TestUowCommits(t *testing.T) {
	store, accounts, _ := newSeededStore(t)
	ctx := context.Background()

	err := NewUow(store).Run(ctx, func(ctx context.Context) error {
		return accounts.WithTx(ctx.Value(gateway.TransactionKey)).UpdateBalance(ctx, 2, decimal.NewFromInt(42))
	})
	require.NoError(t, err)

	acc, err := accounts.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(42)))
}

func TestUowRespectsCancelledContext(t *testing.T) {
	store, _, _ := newSeededStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewUow(store).Run(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAccountRepositoryReads(t *testing.T) {
	_, accounts, _ := newSeededStore(t)
	ctx := context.Background()

	acc, err := accounts.GetByNumber(ctx, "G5H6 8J9K L0P1 Q2W3 E4R5 T6Y7 U8I9")
	require.NoError(t, err)
	assert.Equal(t, int64(3), acc.ID)
	assert.Equal(t, "Clever-Bank", acc.Bank.Name)
	assert.Equal(t, "Jessica Parker", acc.Customer.Name)
	assert.Equal(t, "BYN", acc.Currency)

	_, err = accounts.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = accounts.GetByNumber(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.ErrorIs(t, accounts.UpdateBalance(ctx, 999, decimal.Zero), domain.ErrAccountNotFound)

	_, err = accounts.Create(ctx, gateway.NewAccount{Number: "X", Currency: "BYN", BankID: 99, CustomerID: 1})
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)

	created, err := accounts.Create(ctx, gateway.NewAccount{Number: "NEW1", Balance: decimal.NewFromInt(3), Currency: "BYN", BankID: 1, CustomerID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(6), created.ID)

	_, err = accounts.Create(ctx, gateway.NewAccount{Number: "NEW1", Currency: "BYN", BankID: 2, CustomerID: 2})
	assert.ErrorIs(t, err, domain.ErrDuplicateNumber)
	_, err = accounts.Create(ctx, gateway.NewAccount{Number: "G5H6 8J9K L0P1 Q2W3 E4R5 T6Y7 U8I9", Currency: "BYN", BankID: 1, CustomerID: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicateNumber)

	owned, err := accounts.ListByCustomer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, int64(1), owned[0].ID)
	assert.Equal(t, int64(6), owned[1].ID)
}

func TestAddAccountRejectsTakenNumber(t *testing.T) {
	store, accounts, _ := newSeededStore(t)

	id, err := store.AddAccount(AccountSeed{Number: "DUPL 0000 0000 0000 0000 0000 0000", Currency: "BYN", BankID: 1, CustomerID: 1})
	require.NoError(t, err)
	_, err = store.AddAccount(AccountSeed{Number: "DUPL 0000 0000 0000 0000 0000 0000", Currency: "USD", BankID: 2, CustomerID: 2})
	assert.ErrorIs(t, err, domain.ErrDuplicateNumber)

	acc, err := accounts.GetByNumber(context.Background(), "DUPL 0000 0000 0000 0000 0000 0000")
	require.NoError(t, err)
	assert.Equal(t, id, acc.ID)
	assert.Equal(t, "BYN", acc.Currency)
}

func TestTransactionRepositorySums(t *testing.T) {
	_, _, transactions := newSeededStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, tx := range []domain.Transaction{
		{Type: domain.Deposit, Amount: decimal.NewFromInt(10), SenderAccountID: 1, RecipientAccountID: 1},
		{Type: domain.Withdrawal, Amount: decimal.NewFromInt(3), SenderAccountID: 1, RecipientAccountID: 1},
		{Type: domain.Transfer, Amount: decimal.NewFromInt(4), SenderAccountID: 1, RecipientAccountID: 3},
		{Type: domain.Transfer, Amount: decimal.NewFromInt(6), SenderAccountID: 3, RecipientAccountID: 1},
	} {
		tx.Date = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, transactions.Create(ctx, &tx))
	}

	start, end := base, base.Add(3*time.Hour)
	received, err := transactions.SumReceived(ctx, 1, start, end)
	require.NoError(t, err)
	assert.True(t, received.Equal(decimal.NewFromInt(16)), received.String())

	withdrawn, err := transactions.SumWithdrawn(ctx, 1, start, end)
	require.NoError(t, err)
	assert.True(t, withdrawn.Equal(decimal.NewFromInt(7)), withdrawn.String())

	list, err := transactions.ListForAccountInPeriod(ctx, 1, start, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, domain.Transfer, list[2].Type)

	none, err := transactions.SumReceived(ctx, 5, start, end)
	require.NoError(t, err)
	assert.True(t, none.IsZero())

	_, err = transactions.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	err = transactions.Create(ctx, &domain.Transaction{Type: domain.Deposit, Amount: decimal.NewFromInt(1), SenderAccountID: 77, RecipientAccountID: 77})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
