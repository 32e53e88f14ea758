package usecase

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDirectory(t *testing.T) {
	l := newLedger(t)
	dir := NewAccountDirectory(l.accounts)
	ctx := context.Background()

	acc, err := dir.GetAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "BYN", acc.Currency)
	assert.Equal(t, "Belarusbank", acc.Bank.Name)
	assert.Equal(t, "Kokotov Artem Semenovich", acc.Customer.Name)

	byNumber, err := dir.GetAccountByNumber(ctx, "  "+acc.Number+"\n")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byNumber.ID)

	_, err = dir.GetAccount(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = dir.GetAccountByNumber(ctx, "")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = dir.GetAccountByNumber(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.NoError(t, dir.UpdateBalance(ctx, 1, dec("7.77")))
	acc, err = dir.GetAccount(ctx, 1)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(dec("7.77")))

	assert.ErrorIs(t, dir.UpdateBalance(ctx, 404, dec("1")), domain.ErrAccountNotFound)
}

func TestAccountDirectoryTagsStorageFailures(t *testing.T) {
	l := newLedger(t)
	dir := NewAccountDirectory(failingAccounts{l.accounts})

	err := dir.UpdateBalance(context.Background(), 1, dec("1"))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, errDiskFull)
}

func TestOpenAccount(t *testing.T) {
	l := newLedger(t)
	uc := NewOpenAccount(l.accounts)
	ctx := context.Background()

	acc, err := uc.Execute(ctx, OpenAccountInput{BankID: 3, CustomerID: 4, Currency: " eur ", InitialBalance: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, "EUR", acc.Currency)
	assert.True(t, acc.Balance.Equal(dec("10")))
	assert.Equal(t, "Clever-Bank", acc.Bank.Name)
	assert.Equal(t, "Joe Smith", acc.Customer.Name)
	assert.Regexp(t, regexp.MustCompile(`^([A-Z0-9]{4} ){6}[A-Z0-9]{4}$`), acc.Number)

	accounts, err := NewAccountDirectory(l.accounts).ListCustomerAccounts(ctx, 4)
	require.NoError(t, err)
	assert.Contains(t, accountIDs(accounts), acc.ID)
}

func TestOpenAccountRejectsBadInput(t *testing.T) {
	l := newLedger(t)
	uc := NewOpenAccount(l.accounts)
	ctx := context.Background()

	_, err := uc.Execute(ctx, OpenAccountInput{BankID: 1, CustomerID: 1, Currency: "rubles"})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)

	_, err = uc.Execute(ctx, OpenAccountInput{BankID: 1, CustomerID: 1, Currency: "BYN", InitialBalance: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.Execute(ctx, OpenAccountInput{BankID: 99, CustomerID: 1, Currency: "BYN"})
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
}

func TestOpenAccountRetriesTakenNumbers(t *testing.T) {
	l := newLedger(t)
	taken, err := l.accounts.GetByID(context.Background(), 1)
	require.NoError(t, err)

	numbers := []string{taken.Number, "FREE 0000 0000 0000 0000 0000 0001"}
	uc := NewOpenAccount(l.accounts)
	uc.generateNumber = func() (string, error) {
		n := numbers[0]
		numbers = numbers[1:]
		return n, nil
	}

	acc, err := uc.Execute(context.Background(), OpenAccountInput{BankID: 1, CustomerID: 1, Currency: "BYN"})
	require.NoError(t, err)
	assert.Equal(t, "FREE 0000 0000 0000 0000 0000 0001", acc.Number)
}

func TestOpenAccountGivesUpAfterRepeatedCollisions(t *testing.T) {
	l := newLedger(t)
	taken, err := l.accounts.GetByID(context.Background(), 1)
	require.NoError(t, err)

	uc := NewOpenAccount(l.accounts)
	uc.generateNumber = func() (string, error) { return taken.Number, nil }

	_, err = uc.Execute(context.Background(), OpenAccountInput{BankID: 1, CustomerID: 1, Currency: "BYN"})
	assert.ErrorIs(t, err, domain.ErrStorage)

	uc.generateNumber = func() (string, error) { return "", errors.New("entropy exhausted") }
	_, err = uc.Execute(context.Background(), OpenAccountInput{BankID: 1, CustomerID: 1, Currency: "BYN"})
	assert.Error(t, err)
}

// racingAccounts loses the first insert to a concurrent account with the same number.
type racingAccounts struct {
	gateway.AccountRepository
	lost bool
}

func (r *racingAccounts) Create(ctx context.Context, account gateway.NewAccount) (*domain.Account, error) {
	if !r.lost {
		r.lost = true
		return nil, domain.ErrDuplicateNumber
	}
	return r.AccountRepository.Create(ctx, account)
}

func TestOpenAccountRetriesInsertConflict(t *testing.T) {
	l := newLedger(t)
	repo := &racingAccounts{AccountRepository: l.accounts}

	numbers := []string{"RACE 0000 0000 0000 0000 0000 0001", "RACE 0000 0000 0000 0000 0000 0002"}
	uc := NewOpenAccount(repo)
	uc.generateNumber = func() (string, error) {
		n := numbers[0]
		numbers = numbers[1:]
		return n, nil
	}

	acc, err := uc.Execute(context.Background(), OpenAccountInput{BankID: 1, CustomerID: 1, Currency: "BYN"})
	require.NoError(t, err)
	assert.True(t, repo.lost)
	assert.Equal(t, "RACE 0000 0000 0000 0000 0000 0002", acc.Number)

	byNumber, err := l.accounts.GetByNumber(context.Background(), acc.Number)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byNumber.ID)
}

func TestAccountNumberSkipsBiasedBytes(t *testing.T) {
	random := make([]byte, 64)
	random[0] = 255 // discarded
	random[1] = 252 // discarded
	random[2] = 251 // 251 % 36 = 35 -> '9'
	random[3] = 37  // 'B'

	n, err := accountNumberFrom(bytes.NewReader(random))
	require.NoError(t, err)
	assert.Equal(t, "9BAA AAAA AAAA AAAA AAAA AAAA AAAA", n)

	_, err = accountNumberFrom(bytes.NewReader(bytes.Repeat([]byte{255}, 32)))
	assert.Error(t, err)
}

func TestGenerateAccountNumberShape(t *testing.T) {
	pattern := regexp.MustCompile(`^([A-Z0-9]{4} ){6}[A-Z0-9]{4}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		n, err := GenerateAccountNumber()
		require.NoError(t, err)
		assert.Regexp(t, pattern, n)
		seen[n] = true
	}
	assert.Len(t, seen, 50)
}

func accountIDs(accounts []*domain.Account) []int64 {
	ids := make([]int64, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}
