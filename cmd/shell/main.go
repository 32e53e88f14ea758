package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/clever-bank/ledger/internal/config"
	"github.com/clever-bank/ledger/internal/infra/storage"
	"github.com/clever-bank/ledger/internal/shell"
	"github.com/clever-bank/ledger/internal/statement"
	"github.com/clever-bank/ledger/internal/usecase"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.SetupLogger(os.Stderr, 0, true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	config.SetupLogger(os.Stderr, cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("could not open the ledger store")
	}
	defer ledger.Close()

	engine := usecase.NewRecordTransaction(
		ledger.Accounts, ledger.Transactions, ledger.TxManager, nil,
		usecase.WithOverdraft(cfg.AllowOverdraft),
		usecase.WithTimeout(cfg.OperationTimeout),
	)
	reporter := statement.NewReporter(usecase.NewTransactionQueries(ledger.Transactions, ledger.Accounts), nil)

	sh := shell.New(os.Stdin, os.Stdout, engine, usecase.NewAccountDirectory(ledger.Accounts), reporter,
		statement.NewPDFWriter(cfg.StatementDir))
	if err := sh.Run(ctx); err != nil {
		log.Error().Err(err).Msg("shell stopped")
	}
}
