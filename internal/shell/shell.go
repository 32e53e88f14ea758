package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/statement"
	"github.com/clever-bank/ledger/internal/usecase"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Engine interface {
	Execute(ctx context.Context, input usecase.RecordTransactionInput) (*usecase.RecordTransactionOutput, error)
}

type Directory interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error)
}

type Reports interface {
	Receipt(ctx context.Context, transactionID int64) (statement.Document, error)
	AccountStatement(ctx context.Context, account *domain.Account, period statement.Period) (statement.Document, error)
	MoneyStatement(ctx context.Context, account *domain.Account, period statement.Period) (statement.Document, error)
}

type DocumentWriter interface {
	Write(doc statement.Document) (string, error)
}

// errInputClosed ends the session when the input runs out.
var errInputClosed = errors.New("input closed")

// Shell is the menu-driven console over the ledger.
type Shell struct {
	in        *bufio.Scanner
	out       io.Writer
	engine    Engine
	directory Directory
	reports   Reports
	writer    DocumentWriter
	now       func() time.Time
}

// New builds a shell reading commands from in. writer may be nil to skip PDF output.
func New(in io.Reader, out io.Writer, engine Engine, directory Directory, reports Reports, writer DocumentWriter) *Shell {
	return &Shell{
		in:        bufio.NewScanner(in),
		out:       out,
		engine:    engine,
		directory: directory,
		reports:   reports,
		writer:    writer,
		now:       time.Now,
	}
}

// Run serves one session until the user stops or the input ends.
func (sh *Shell) Run(ctx context.Context) error {
	session := &Session{}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := sh.step(ctx, session)
		if errors.Is(err, errInputClosed) {
			sh.println("No more input.")
			return nil
		}
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (sh *Shell) println(a ...interface{}) {
	fmt.Fprintln(sh.out, a...)
}

func (sh *Shell) printf(format string, a ...interface{}) {
	fmt.Fprintf(sh.out, format, a...)
}

func (sh *Shell) readLine() (string, error) {
	if !sh.in.Scan() {
		if err := sh.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(sh.in.Text()), nil
}

// step handles one menu round. It returns false when the user asked to quit.
func (sh *Shell) step(ctx context.Context, session *Session) (bool, error) {
	if !session.Selected() {
		sh.println("\nEnter your account number or type stop:")
		input, err := sh.readLine()
		if err != nil {
			return false, err
		}
		if strings.EqualFold(input, "stop") {
			return false, nil
		}
		account, err := sh.directory.GetAccountByNumber(ctx, input)
		if err != nil {
			sh.report(err)
			return true, nil
		}
		session.Select(account.ID)
	}

	account, err := sh.directory.GetAccount(ctx, session.AccountID)
	if err != nil {
		sh.report(err)
		session.Clear()
		return true, nil
	}

	sh.printf("\n%s (%s)\n", account.Customer.Name, account.Bank.Name)
	sh.printf("Balance: %s %s\n", statement.Money(account.Balance), account.Currency)
	sh.println("What would you like to do?")
	sh.println("1. Deposit")
	sh.println("2. Withdraw")
	sh.println("3. Transfer to another account")
	sh.println("4. Account statement")
	sh.println("5. Money statement (received and withdrawn)")
	sh.println("6. Switch account")
	sh.println("7. Exit")

	choice, err := sh.readLine()
	if err != nil {
		return false, err
	}
	switch choice {
	case "1":
		err = sh.deposit(ctx, account)
	case "2":
		err = sh.withdraw(ctx, account)
	case "3":
		err = sh.transfer(ctx, account)
	case "4":
		err = sh.statement(ctx, account, statement.KindStatement)
	case "5":
		err = sh.statement(ctx, account, statement.KindMoneyStatement)
	case "6":
		session.Clear()
	case "7":
		return false, nil
	default:
		sh.println("No such menu option")
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// readAmount prompts until it gets a positive decimal.
func (sh *Shell) readAmount() (decimal.Decimal, error) {
	for {
		input, err := sh.readLine()
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(input)
		if err != nil {
			sh.println("Invalid number, try again:")
			continue
		}
		if !amount.IsPositive() {
			sh.println("The amount must be greater than 0, try again:")
			continue
		}
		return amount, nil
	}
}

func (sh *Shell) deposit(ctx context.Context, account *domain.Account) error {
	sh.println("\nEnter the amount to deposit:")
	amount, err := sh.readAmount()
	if err != nil {
		return err
	}
	sh.record(ctx, usecase.RecordTransactionInput{Type: domain.Deposit, Amount: amount, RecipientAccountID: account.ID},
		fmt.Sprintf("You deposited %s %s", statement.Money(amount), account.Currency))
	return nil
}

func (sh *Shell) withdraw(ctx context.Context, account *domain.Account) error {
	sh.println("\nEnter the amount to withdraw:")
	amount, err := sh.readAmount()
	if err != nil {
		return err
	}
	sh.record(ctx, usecase.RecordTransactionInput{Type: domain.Withdrawal, Amount: amount, RecipientAccountID: account.ID},
		fmt.Sprintf("You withdrew %s %s", statement.Money(amount), account.Currency))
	return nil
}

func (sh *Shell) transfer(ctx context.Context, account *domain.Account) error {
	sh.println("\nEnter the recipient account number:")
	number, err := sh.readLine()
	if err != nil {
		return err
	}
	recipient, err := sh.directory.GetAccountByNumber(ctx, number)
	if err != nil {
		sh.report(err)
		return nil
	}
	if recipient.ID == account.ID {
		sh.printf("Cannot transfer %s -> %s\n", account.Number, recipient.Number)
		return nil
	}
	if !account.SameCurrency(recipient) {
		sh.printf("The recipient account is in another currency (%s); cross-currency transfers are not supported\n", recipient.Currency)
		return nil
	}

	sh.println("Enter the amount:")
	amount, err := sh.readAmount()
	if err != nil {
		return err
	}
	sh.record(ctx, usecase.RecordTransactionInput{
		Type:               domain.Transfer,
		Amount:             amount,
		SenderAccountID:    account.ID,
		RecipientAccountID: recipient.ID,
	}, fmt.Sprintf("You sent %s %s -> %s", statement.Money(amount), account.Currency, recipient.Customer.Name))
	return nil
}

// record runs the engine and prints the outcome with the receipt.
func (sh *Shell) record(ctx context.Context, input usecase.RecordTransactionInput, done string) {
	output, err := sh.engine.Execute(ctx, input)
	if err != nil {
		sh.report(err)
		return
	}
	sh.println(done)
	if balance, ok := output.Balances[input.RecipientAccountID]; ok && input.Type != domain.Transfer {
		sh.printf("Balance: %s\n", statement.Money(balance))
	}

	receipt, err := sh.reports.Receipt(ctx, output.TransactionID)
	if err != nil {
		sh.report(err)
		return
	}
	sh.emit(receipt, "Receipt saved")
}

func (sh *Shell) statement(ctx context.Context, account *domain.Account, kind statement.Kind) error {
	sh.println("1. Last month")
	sh.println("2. Last year")
	sh.println("3. All time")
	choice, err := sh.readLine()
	if err != nil {
		return err
	}

	now := sh.now()
	var period statement.Period
	switch choice {
	case "1":
		period = statement.ClampToAccount(statement.LastMonth(now), account)
	case "2":
		period = statement.ClampToAccount(statement.LastYear(now), account)
	default:
		period = statement.SinceOpening(account, now)
	}

	var doc statement.Document
	if kind == statement.KindMoneyStatement {
		doc, err = sh.reports.MoneyStatement(ctx, account, period)
	} else {
		doc, err = sh.reports.AccountStatement(ctx, account, period)
	}
	if err != nil {
		sh.report(err)
		return nil
	}
	sh.emit(doc, "Statement saved")
	return nil
}

func (sh *Shell) emit(doc statement.Document, saved string) {
	sh.printf("%s", doc.Text)
	if sh.writer == nil {
		return
	}
	path, err := sh.writer.Write(doc)
	if err != nil {
		log.Error().Err(err).Str("kind", string(doc.Kind)).Msg("failed to save document")
		sh.println("Could not save the document")
		return
	}
	sh.printf("%s: %s\n", saved, path)
}

// report prints a user-facing message; storage failures are also logged.
func (sh *Shell) report(err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		sh.println("No such account number")
	case domain.IsValidationError(err):
		sh.printf("Operation rejected: %v\n", err)
	default:
		log.Error().Err(err).Msg("shell operation failed")
		sh.println("Operation failed, please try again later")
	}
}
