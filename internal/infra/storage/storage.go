package storage

import (
	"context"
	"fmt"

	"github.com/clever-bank/ledger/internal/config"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/clever-bank/ledger/internal/infra/memory"
	"github.com/clever-bank/ledger/internal/infra/postgres"
	"github.com/rs/zerolog/log"
)

// Ledger is the set of repositories one process works with.
type Ledger struct {
	Accounts     gateway.AccountRepository
	Transactions gateway.TransactionRepository
	TxManager    gateway.TransactionManager
	close        func()
}

func (l *Ledger) Close() {
	if l.close != nil {
		l.close()
	}
}

// Open connects to the store selected by cfg.Store. The memory store is
// seeded with the demo accounts.
func Open(ctx context.Context, cfg *config.Config) (*Ledger, error) {
	if cfg.Store == config.StoreMemory {
		store := memory.NewStore()
		memory.SeedDemo(store)
		log.Info().Msg("using in-memory store with demo accounts")
		return &Ledger{
			Accounts:     memory.NewAccountRepository(store),
			Transactions: memory.NewTransactionRepository(store),
			TxManager:    memory.NewUow(store),
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB.URL())
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		log.Info().Msg("schema applied")
	}
	log.Info().Str("host", cfg.DB.Host).Str("database", cfg.DB.Name).Msg("connected to PostgreSQL")
	return &Ledger{
		Accounts:     postgres.NewAccountRepository(pool),
		Transactions: postgres.NewTransactionRepository(pool),
		TxManager:    postgres.NewUow(pool),
		close:        pool.Close,
	}, nil
}
