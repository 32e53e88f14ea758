package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind names a document type; it is also the output sub-directory.
type Kind string

const (
	KindReceipt        Kind = "check"
	KindStatement      Kind = "statement"
	KindMoneyStatement Kind = "statement-money"
)

// filePrefix is the base of the PDF file name for each kind.
var filePrefix = map[Kind]string{
	KindReceipt:        "Check",
	KindStatement:      "Statement",
	KindMoneyStatement: "MoneyStatement",
}

// Document is a rendered, printable report.
type Document struct {
	Kind      Kind
	Text      string
	CreatedAt time.Time
}

const (
	receiptWidth = 54
	headerWidth  = 60
	noteWidth    = 50

	dateLayout      = "02.01.2006"
	receiptDate     = "02-01-2006"
	receiptTime     = "15:04:05"
	generatedLayout = "02.01.2006, 15.04"
)

// Money prints amounts with at least two decimals.
func Money(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}

func receiptRow(label, value string) string {
	pad := receiptWidth - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	return "| " + label + strings.Repeat(" ", pad) + value + " |\n"
}

func centered(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// Receipt renders the bank check for one hydrated transaction.
func Receipt(tx *domain.Transaction, now time.Time) Document {
	date := tx.Date.UTC()
	currency := tx.Recipient.Currency

	var b strings.Builder
	b.WriteString(strings.Repeat("_", receiptWidth+4) + "\n")
	title := centered("Bank receipt", receiptWidth)
	b.WriteString("| " + title + strings.Repeat(" ", receiptWidth-len(title)) + " |\n")
	b.WriteString(receiptRow("Receipt:", fmt.Sprint(tx.ID)))
	b.WriteString(receiptRow(date.Format(receiptDate), date.Format(receiptTime)))
	b.WriteString(receiptRow("Transaction type:", tx.Type.String()))
	b.WriteString(receiptRow("Sender bank:", tx.Sender.Bank.Name))
	b.WriteString(receiptRow("Recipient bank:", tx.Recipient.Bank.Name))
	b.WriteString(receiptRow("Sender account:", tx.Sender.Number))
	b.WriteString(receiptRow("Recipient account:", tx.Recipient.Number))
	b.WriteString(receiptRow("Amount:", Money(tx.Amount)+" "+currency))
	b.WriteString("|" + strings.Repeat("_", receiptWidth+2) + "|\n")

	return Document{Kind: KindReceipt, Text: b.String(), CreatedAt: now}
}

func header(title string, account *domain.Account, period Period, now time.Time) string {
	field := func(label, value string) string {
		return fmt.Sprintf("%-26s| %s\n", label, value)
	}

	var b strings.Builder
	b.WriteString(centered(title, headerWidth) + "\n")
	b.WriteString(centered(account.Bank.Name, headerWidth) + "\n")
	b.WriteString(field("Customer", account.Customer.Name))
	b.WriteString(field("Account", account.Number))
	b.WriteString(field("Currency", account.Currency))
	b.WriteString(field("Open date", account.OpenDate.UTC().Format(dateLayout)))
	b.WriteString(field("Period", period.Start.UTC().Format(dateLayout)+" - "+period.End.UTC().Format(dateLayout)))
	b.WriteString(field("Generated at", now.UTC().Format(generatedLayout)))
	b.WriteString(field("Balance", Money(account.Balance)+" "+account.Currency))
	return b.String()
}

// note describes a transaction from the point of view of account.
func note(tx *domain.Transaction, account *domain.Account) string {
	if tx.Type != domain.Transfer {
		return tx.Type.String()
	}
	if tx.RecipientAccountID == account.ID {
		return "Transfer from <- " + tx.Sender.Customer.Name
	}
	return "Transfer to -> " + tx.Recipient.Customer.Name
}

// AccountStatement lists transactions of a period; outgoing amounts are negative.
func AccountStatement(account *domain.Account, period Period, transactions []*domain.Transaction, now time.Time) Document {
	var b strings.Builder
	b.WriteString(header("Statement", account, period, now))

	if len(transactions) == 0 {
		fmt.Fprintf(&b, "No transactions from %s to %s\n",
			period.Start.UTC().Format(dateLayout), period.End.UTC().Format(dateLayout))
	}
	for _, tx := range transactions {
		amount := Money(tx.Amount) + " " + account.Currency
		if tx.IsOutgoingFor(account.ID) {
			amount = "-" + amount
		}
		fmt.Fprintf(&b, "%s | %-*s | %s\n", tx.Date.UTC().Format(dateLayout), noteWidth, note(tx, account), amount)
	}
	return Document{Kind: KindStatement, Text: b.String(), CreatedAt: now}
}

// MoneyStatement shows the received and withdrawn totals of a period.
func MoneyStatement(account *domain.Account, period Period, received, withdrawn decimal.Decimal, now time.Time) Document {
	var b strings.Builder
	b.WriteString(header("Money statement", account, period, now))
	fmt.Fprintf(&b, "%20s | %s\n", "Received", "Withdrawn")
	b.WriteString(strings.Repeat(" ", 10) + strings.Repeat("-", 24) + "\n")
	fmt.Fprintf(&b, "%20s | -%s\n", Money(received)+" "+account.Currency, Money(withdrawn)+" "+account.Currency)
	return Document{Kind: KindMoneyStatement, Text: b.String(), CreatedAt: now}
}
