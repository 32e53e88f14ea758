package handler

import (
	"net/http"
	"time"

	"github.com/clever-bank/ledger/internal/gateway"
	internalMiddleware "github.com/clever-bank/ledger/internal/infra/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// NewRouter wires every route. idempotency may be nil, in which case
// POST /transactions is served without replay protection.
func NewRouter(accounts *AccountHandler, transactions *TransactionHandler, idempotency gateway.IdempotencyRepository) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})

	router.Route("/accounts", func(r chi.Router) {
		r.Post("/", accounts.Create)
		r.Get("/number/{number}", accounts.GetByNumber)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", accounts.Get)
			r.Get("/transactions", accounts.Transactions)
			r.Get("/turnover", accounts.Turnover)
			r.Get("/statement", accounts.Statement)
		})
	})

	router.Route("/transactions", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if idempotency != nil {
				r.Use(internalMiddleware.Idempotency(idempotency))
			}
			r.Post("/", transactions.Create)
		})
		r.Get("/{id}", transactions.Get)
		r.Get("/{id}/receipt", transactions.Receipt)
	})

	return router
}
