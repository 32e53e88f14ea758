package memory

import (
	"context"

	"github.com/clever-bank/ledger/internal/gateway"
)

// Uow implements gateway.TransactionManager over a Store.
type Uow struct {
	store *Store
}

func NewUow(store *Store) *Uow {
	return &Uow{store: store}
}

// Run holds the store lock for the whole of fn. On error, or when ctx ends
// before fn returns, every change fn made is discarded.
func (u *Uow) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snap := u.store.snapshot()
	ctxWithTx := context.WithValue(ctx, gateway.TransactionKey, u.store)

	if err := fn(ctxWithTx); err != nil {
		u.store.restore(snap)
		return err
	}
	if err := ctx.Err(); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}
