package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/clever-bank/ledger/internal/statement"
	"github.com/clever-bank/ledger/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// AccountHandler exposes the account directory and the per-account reports.
type AccountHandler struct {
	openAccount *usecase.OpenAccountUseCase
	directory   *usecase.AccountDirectory
	queries     *usecase.TransactionQueries
	reporter    *statement.Reporter
	now         func() time.Time
}

func NewAccountHandler(
	openAccount *usecase.OpenAccountUseCase,
	directory *usecase.AccountDirectory,
	queries *usecase.TransactionQueries,
	reporter *statement.Reporter,
) *AccountHandler {
	return &AccountHandler{
		openAccount: openAccount,
		directory:   directory,
		queries:     queries,
		reporter:    reporter,
		now:         time.Now,
	}
}

type CreateAccountRequest struct {
	BankID         int64           `json:"bank_id"`
	CustomerID     int64           `json:"customer_id"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	account, err := h.openAccount.Execute(r.Context(), usecase.OpenAccountInput{
		BankID:         req.BankID,
		CustomerID:     req.CustomerID,
		Currency:       req.Currency,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.directory.GetAccount(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := url.PathUnescape(chi.URLParam(r, "number"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account number")
		return
	}
	account, err := h.directory.GetAccountByNumber(r.Context(), number)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponse(account))
}

type TurnoverResponse struct {
	AccountID int64     `json:"account_id"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Received  string    `json:"received"`
	Withdrawn string    `json:"withdrawn"`
	Currency  string    `json:"currency"`
}

// Turnover returns the received and withdrawn totals for ?from=&to=.
func (h *AccountHandler) Turnover(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	period, err := periodQuery(r, h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.directory.GetAccount(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	received, err := h.queries.ReceivedMoney(r.Context(), id, period.Start, period.End)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	withdrawn, err := h.queries.WithdrawnMoney(r.Context(), id, period.Start, period.End)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, TurnoverResponse{
		AccountID: id,
		From:      period.Start,
		To:        period.End,
		Received:  statement.Money(received),
		Withdrawn: statement.Money(withdrawn),
		Currency:  account.Currency,
	})
}

func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	period, err := periodQuery(r, h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.directory.GetAccount(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}

	transactions, err := h.queries.PeriodTransactions(r.Context(), id, period.Start, period.End)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	resp := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, toTransactionResponse(tx))
	}
	respondJSON(w, http.StatusOK, resp)
}

// Statement renders the account statement as plain text.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	period, err := periodQuery(r, h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.directory.GetAccount(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	doc, err := h.reporter.AccountStatement(r.Context(), account, period)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondText(w, http.StatusOK, doc.Text)
}
