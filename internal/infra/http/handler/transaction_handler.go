package handler

import (
	"encoding/json"
	"net/http"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/statement"
	"github.com/clever-bank/ledger/internal/usecase"
	"github.com/shopspring/decimal"
)

// TransactionHandler exposes the transaction engine over HTTP.
type TransactionHandler struct {
	recordTransaction *usecase.RecordTransactionUseCase
	queries           *usecase.TransactionQueries
	reporter          *statement.Reporter
}

func NewTransactionHandler(
	recordTransaction *usecase.RecordTransactionUseCase,
	queries *usecase.TransactionQueries,
	reporter *statement.Reporter,
) *TransactionHandler {
	return &TransactionHandler{
		recordTransaction: recordTransaction,
		queries:           queries,
		reporter:          reporter,
	}
}

// CreateTransactionRequest takes the type by name ("transfer") or id ("3").
type CreateTransactionRequest struct {
	Type               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	SenderAccountID    int64           `json:"sender_account_id"`
	RecipientAccountID int64           `json:"recipient_account_id"`
}

type CreateTransactionResponse struct {
	TransactionID int64               `json:"transaction_id"`
	Transaction   TransactionResponse `json:"transaction"`
	Balances      map[int64]string    `json:"balances"`
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	txType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	output, err := h.recordTransaction.Execute(r.Context(), usecase.RecordTransactionInput{
		Type:               txType,
		Amount:             req.Amount,
		SenderAccountID:    req.SenderAccountID,
		RecipientAccountID: req.RecipientAccountID,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	balances := make(map[int64]string, len(output.Balances))
	for id, balance := range output.Balances {
		balances[id] = statement.Money(balance)
	}
	respondJSON(w, http.StatusCreated, CreateTransactionResponse{
		TransactionID: output.TransactionID,
		Transaction:   toTransactionResponse(output.Transaction),
		Balances:      balances,
	})
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := h.queries.ReadTransaction(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// Receipt renders the bank check of one transaction as plain text.
func (h *TransactionHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.reporter.Receipt(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondText(w, http.StatusOK, doc.Text)
}
