package statement

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/infra/memory"
	"github.com/clever-bank/ledger/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2024, 4, 1, 9, 30, 15, 0, time.UTC)

func accounts() (*domain.Account, *domain.Account) {
	a := &domain.Account{
		ID: 1, Number: "AS12 ASDG 1200 2132 ASDA 353A 213W", Balance: decimal.RequireFromString("100.5"), Currency: "BYN",
		OpenDate: time.Date(2019, 8, 5, 0, 0, 0, 0, time.UTC),
		Bank:     domain.Bank{ID: 1, Name: "Belarusbank"}, Customer: domain.Customer{ID: 1, Name: "Kokotov Artem Semenovich"},
	}
	b := &domain.Account{
		ID: 3, Number: "G5H6 8J9K L0P1 Q2W3 E4R5 T6Y7 U8I9", Balance: decimal.RequireFromString("500.25"), Currency: "BYN",
		Bank: domain.Bank{ID: 3, Name: "Clever-Bank"}, Customer: domain.Customer{ID: 3, Name: "Jessica Parker"},
	}
	return a, b
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "50.00", Money(decimal.RequireFromString("50")))
	assert.Equal(t, "100.50", Money(decimal.RequireFromString("100.5")))
	assert.Equal(t, "1.234", Money(decimal.RequireFromString("1.234")))
}

func TestReceipt(t *testing.T) {
	a, b := accounts()
	tx := &domain.Transaction{
		ID: 42, Type: domain.Transfer, Amount: decimal.RequireFromString("30"),
		Date:            time.Date(2024, 3, 15, 13, 4, 5, 0, time.UTC),
		SenderAccountID: a.ID, RecipientAccountID: b.ID, Sender: a, Recipient: b,
	}

	doc := Receipt(tx, generatedAt)
	assert.Equal(t, KindReceipt, doc.Kind)

	lines := strings.Split(strings.TrimRight(doc.Text, "\n"), "\n")
	require.Len(t, lines, 11)
	for _, line := range lines {
		assert.Len(t, line, 58, line)
	}
	assert.Contains(t, doc.Text, "Bank receipt")
	assert.Regexp(t, `\| Receipt:\s+42 \|`, doc.Text)
	assert.Regexp(t, `\| 15-03-2024\s+13:04:05 \|`, doc.Text)
	assert.Regexp(t, `\| Transaction type:\s+Transfer \|`, doc.Text)
	assert.Regexp(t, `\| Sender bank:\s+Belarusbank \|`, doc.Text)
	assert.Regexp(t, `\| Recipient account:\s+G5H6 8J9K L0P1 Q2W3 E4R5 T6Y7 U8I9 \|`, doc.Text)
	assert.Regexp(t, `\| Amount:\s+30.00 BYN \|`, doc.Text)
}

func TestAccountStatement(t *testing.T) {
	a, b := accounts()
	period := Period{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), End: generatedAt}
	day := func(d int) time.Time { return time.Date(2024, 3, d, 10, 0, 0, 0, time.UTC) }

	transactions := []*domain.Transaction{
		{ID: 1, Type: domain.Deposit, Amount: decimal.RequireFromString("50"), Date: day(1), SenderAccountID: 1, RecipientAccountID: 1, Sender: a, Recipient: a},
		{ID: 2, Type: domain.Withdrawal, Amount: decimal.RequireFromString("20"), Date: day(2), SenderAccountID: 1, RecipientAccountID: 1, Sender: a, Recipient: a},
		{ID: 3, Type: domain.Transfer, Amount: decimal.RequireFromString("30"), Date: day(3), SenderAccountID: 1, RecipientAccountID: 3, Sender: a, Recipient: b},
		{ID: 4, Type: domain.Transfer, Amount: decimal.RequireFromString("5"), Date: day(4), SenderAccountID: 3, RecipientAccountID: 1, Sender: b, Recipient: a},
	}

	doc := AccountStatement(a, period, transactions, generatedAt)
	assert.Equal(t, KindStatement, doc.Kind)
	assert.Contains(t, doc.Text, "Statement")
	assert.Contains(t, doc.Text, "Customer                  | Kokotov Artem Semenovich\n")
	assert.Contains(t, doc.Text, "Open date                 | 05.08.2019\n")
	assert.Contains(t, doc.Text, "Period                    | 01.03.2024 - 01.04.2024\n")
	assert.Contains(t, doc.Text, "Generated at              | 01.04.2024, 09.30\n")
	assert.Contains(t, doc.Text, "Balance                   | 100.50 BYN\n")

	assert.Regexp(t, `01\.03\.2024 \| Deposit\s+\| 50\.00 BYN\n`, doc.Text)
	assert.Regexp(t, `02\.03\.2024 \| Withdrawal\s+\| -20\.00 BYN\n`, doc.Text)
	assert.Regexp(t, `03\.03\.2024 \| Transfer to -> Jessica Parker\s+\| -30\.00 BYN\n`, doc.Text)
	assert.Regexp(t, `04\.03\.2024 \| Transfer from <- Jessica Parker\s+\| 5\.00 BYN\n`, doc.Text)
	assert.NotContains(t, doc.Text, "No transactions")
}

func TestAccountStatementEmptyPeriod(t *testing.T) {
	a, _ := accounts()
	period := Period{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), End: generatedAt}

	doc := AccountStatement(a, period, nil, generatedAt)
	assert.True(t, strings.HasSuffix(doc.Text, "No transactions from 01.03.2024 to 01.04.2024\n"))
}

func TestMoneyStatement(t *testing.T) {
	a, _ := accounts()
	doc := MoneyStatement(a, LastMonth(generatedAt), decimal.RequireFromString("45"), decimal.RequireFromString("40"), generatedAt)

	assert.Equal(t, KindMoneyStatement, doc.Kind)
	assert.Contains(t, doc.Text, "Money statement")
	assert.Regexp(t, `Received \| Withdrawn\n`, doc.Text)
	assert.Regexp(t, `45\.00 BYN \| -40\.00 BYN\n`, doc.Text)
}

func TestPeriods(t *testing.T) {
	a, _ := accounts()
	assert.Equal(t, Period{Start: time.Date(2024, 3, 1, 9, 30, 15, 0, time.UTC), End: generatedAt}, LastMonth(generatedAt))
	assert.Equal(t, Period{Start: time.Date(2023, 4, 1, 9, 30, 15, 0, time.UTC), End: generatedAt}, LastYear(generatedAt))
	assert.Equal(t, a.OpenDate, SinceOpening(a, generatedAt).Start)

	young := &domain.Account{OpenDate: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, young.OpenDate, ClampToAccount(LastMonth(generatedAt), young).Start)
	assert.Equal(t, LastMonth(generatedAt), ClampToAccount(LastMonth(generatedAt), a))
}

func TestPDFWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewPDFWriter(dir)
	a, _ := accounts()

	doc := AccountStatement(a, LastMonth(generatedAt), nil, generatedAt)
	path, err := w.Write(doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "statement", "Statement_01-04-2024_09-30-15.pdf"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF"))

	assert.Equal(t, filepath.Join(dir, "check", "Check_01-04-2024_09-30-15.pdf"),
		w.Path(Document{Kind: KindReceipt, CreatedAt: generatedAt}))
	assert.Equal(t, filepath.Join(dir, "statement-money", "MoneyStatement_01-04-2024_09-30-15.pdf"),
		w.Path(Document{Kind: KindMoneyStatement, CreatedAt: generatedAt}))
}

func TestPDFWriterUnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewPDFWriter(file).Write(Document{Kind: KindReceipt, Text: "x", CreatedAt: generatedAt})
	assert.Error(t, err)
}

func TestReporterOverLedger(t *testing.T) {
	store := memory.NewStore()
	memory.SeedDemo(store)
	accountRepo := memory.NewAccountRepository(store)
	transactionRepo := memory.NewTransactionRepository(store)

	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	engine := usecase.NewRecordTransaction(accountRepo, transactionRepo, memory.NewUow(store), nil,
		usecase.WithClock(func() time.Time { return at }))
	out, err := engine.Execute(context.Background(), usecase.RecordTransactionInput{
		Type: domain.Transfer, Amount: decimal.RequireFromString("30"), SenderAccountID: 1, RecipientAccountID: 3,
	})
	require.NoError(t, err)

	reporter := NewReporter(usecase.NewTransactionQueries(transactionRepo, accountRepo), func() time.Time { return generatedAt })
	ctx := context.Background()

	receipt, err := reporter.Receipt(ctx, out.TransactionID)
	require.NoError(t, err)
	assert.Regexp(t, `Sender bank:\s+Belarusbank`, receipt.Text)
	assert.Regexp(t, `Recipient bank:\s+Clever-Bank`, receipt.Text)

	_, err = reporter.Receipt(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	account, err := accountRepo.GetByID(ctx, 1)
	require.NoError(t, err)

	statement, err := reporter.AccountStatement(ctx, account, LastMonth(generatedAt))
	require.NoError(t, err)
	assert.Regexp(t, `10\.03\.2024 \| Transfer to -> Jessica Parker\s+\| -30\.00 BYN`, statement.Text)
	assert.Contains(t, statement.Text, "Balance                   | 70.50 BYN")

	money, err := reporter.MoneyStatement(ctx, account, SinceOpening(account, generatedAt))
	require.NoError(t, err)
	assert.Regexp(t, `0\.00 BYN \| -30\.00 BYN`, money.Text)

	_, err = reporter.AccountStatement(ctx, account, Period{Start: generatedAt, End: at})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
