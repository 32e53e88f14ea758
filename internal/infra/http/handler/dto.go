package handler

import (
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/statement"
)

type AccountResponse struct {
	ID           int64    `json:"id"`
	Number       string   `json:"number"`
	Balance      string   `json:"balance"`
	Currency     string   `json:"currency"`
	OpenDate     string   `json:"open_date"`
	InterestDate *string  `json:"interest_date,omitempty"`
	Bank         NamedRef `json:"bank"`
	Customer     NamedRef `json:"customer"`
}

type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TransactionResponse struct {
	ID                 int64     `json:"id"`
	Type               string    `json:"type"`
	Date               time.Time `json:"date"`
	Amount             string    `json:"amount"`
	SenderAccountID    int64     `json:"sender_account_id"`
	RecipientAccountID int64     `json:"recipient_account_id"`
	SenderNumber       string    `json:"sender_number,omitempty"`
	RecipientNumber    string    `json:"recipient_number,omitempty"`
}

func toAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:       a.ID,
		Number:   a.Number,
		Balance:  statement.Money(a.Balance),
		Currency: a.Currency,
		OpenDate: a.OpenDate.Format(time.DateOnly),
		Bank:     NamedRef{ID: a.Bank.ID, Name: a.Bank.Name},
		Customer: NamedRef{ID: a.Customer.ID, Name: a.Customer.Name},
	}
	if a.InterestDate != nil {
		d := a.InterestDate.Format(time.DateOnly)
		resp.InterestDate = &d
	}
	return resp
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                 tx.ID,
		Type:               tx.Type.String(),
		Date:               tx.Date,
		Amount:             statement.Money(tx.Amount),
		SenderAccountID:    tx.SenderAccountID,
		RecipientAccountID: tx.RecipientAccountID,
	}
	if tx.Sender != nil {
		resp.SenderNumber = tx.Sender.Number
	}
	if tx.Recipient != nil {
		resp.RecipientNumber = tx.Recipient.Number
	}
	return resp
}
