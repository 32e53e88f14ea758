package gateway

import "context"

// TransactionObject is the opaque handle of a running store transaction
// (pgx.Tx for Postgres, the store itself for the in-memory ledger).
type TransactionObject interface{}

// TransactionManager runs fn inside one atomic unit (UoW).
// fn returning an error rolls the unit back; nil commits it.
type TransactionManager interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactionKeyType avoids key collisions in the context.
type TransactionKeyType string

const TransactionKey TransactionKeyType = "transaction"
