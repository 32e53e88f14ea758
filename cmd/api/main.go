package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clever-bank/ledger/internal/config"
	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/clever-bank/ledger/internal/infra/http/handler"
	"github.com/clever-bank/ledger/internal/infra/rabbitmq"
	redisInfra "github.com/clever-bank/ledger/internal/infra/redis"
	"github.com/clever-bank/ledger/internal/infra/storage"
	"github.com/clever-bank/ledger/internal/statement"
	"github.com/clever-bank/ledger/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.SetupLogger(os.Stderr, 0, true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	config.SetupLogger(os.Stderr, cfg.LogLevel, true)
	if !cfg.EnvFileLoaded {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("could not open the ledger store")
	}
	defer ledger.Close()

	// Idempotency is skipped when Redis is down.
	var idempotencyRepo gateway.IdempotencyRepository
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("could not connect to Redis (idempotency disabled)")
	} else {
		idempotencyRepo = redisInfra.NewIdempotencyRepository(redisClient)
		log.Info().Msg("connected to Redis")
	}

	// Events are skipped when RabbitMQ is down.
	var eventPublisher gateway.EventPublisher
	rabbitConn, err := amqp.DialConfig(cfg.RabbitMQ.URL(), amqp.Config{
		Properties: amqp.Table{"connection_name": "LedgerAPI_Publisher"},
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not connect to RabbitMQ (events disabled)")
	} else {
		defer rabbitConn.Close()
		ch, err := rabbitConn.Channel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open RabbitMQ channel")
		}
		defer ch.Close()
		if err := rabbitmq.DeclareExchange(ch, domain.LedgerExchange); err != nil {
			log.Fatal().Err(err).Msg("failed to declare exchange")
		}
		eventPublisher = rabbitmq.NewRabbitMQPublisher(ch)
		log.Info().Msg("connected to RabbitMQ")
	}

	recordTransaction := usecase.NewRecordTransaction(
		ledger.Accounts, ledger.Transactions, ledger.TxManager, eventPublisher,
		usecase.WithOverdraft(cfg.AllowOverdraft),
		usecase.WithTimeout(cfg.OperationTimeout),
	)
	queries := usecase.NewTransactionQueries(ledger.Transactions, ledger.Accounts)
	reporter := statement.NewReporter(queries, nil)

	accountHandler := handler.NewAccountHandler(
		usecase.NewOpenAccount(ledger.Accounts),
		usecase.NewAccountDirectory(ledger.Accounts),
		queries,
		reporter,
	)
	transactionHandler := handler.NewTransactionHandler(recordTransaction, queries, reporter)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewRouter(accountHandler, transactionHandler, idempotencyRepo),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("failed to start HTTP server")
	}
	log.Info().Msg("server stopped")
}
