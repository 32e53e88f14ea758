package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clever-bank/ledger/internal/config"
	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/infra/mongodb"
	"github.com/clever-bank/ledger/internal/infra/rabbitmq"
	"github.com/clever-bank/ledger/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
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

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB client")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("MongoDB is not responding")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	conn, err := amqp.DialConfig(cfg.RabbitMQ.URL(), amqp.Config{
		Properties: amqp.Table{"connection_name": "AuditWorker_Consumer"},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close RabbitMQ connection")
		}
	}()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open RabbitMQ channel")
	}
	defer func() {
		if err := ch.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close RabbitMQ channel")
		}
	}()

	if err := rabbitmq.DeclareQueue(ch, domain.LedgerExchange, rabbitmq.AuditQueue, rabbitmq.AuditBindingKey); err != nil {
		log.Fatal().Err(err).Msg("failed to declare audit queue")
	}

	audit := usecase.NewAuditTransaction(mongodb.NewAuditRepository(mongoClient, cfg.Mongo.Database))
	consumer := rabbitmq.NewConsumer(ch, rabbitmq.AuditQueue, audit.Execute, usecase.ErrMalformedEvent)

	// The process exits on a broken channel so the orchestrator can restart it.
	if err := consumer.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("audit consumer stopped")
	}
	log.Info().Msg("shutting down worker")
}
