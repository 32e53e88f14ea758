package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Migrate  bool
}

// URL is the pgx connection string.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type RabbitMQConfig struct {
	Host string
	User string
	Pass string
}

func (c RabbitMQConfig) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Pass),
		Host:   net.JoinHostPort(c.Host, "5672"),
		Path:   "/",
	}
	return u.String()
}

type MongoConfig struct {
	URI      string
	User     string
	Pass     string
	Database string
}

type Config struct {
	Store    string
	DB       DBConfig
	Redis    string
	RabbitMQ RabbitMQConfig
	Mongo    MongoConfig

	HTTPAddr         string
	StatementDir     string
	AllowOverdraft   bool
	OperationTimeout time.Duration
	LogLevel         zerolog.Level

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Load reads a .env file when present and then the environment. Variables
// already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	loaded := true
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		loaded = false
	}

	p := &parser{}
	cfg := &Config{
		Store: strings.ToLower(p.str("LEDGER_STORE", StorePostgres)),
		DB: DBConfig{
			Host:     p.str("DB_HOST", "localhost"),
			Port:     p.int("DB_PORT", 5432),
			User:     p.str("DB_USER", "ledger"),
			Password: p.str("DB_PASSWORD", "secret123"),
			Name:     p.str("DB_NAME", "clever_bank"),
			Migrate:  p.bool("DB_MIGRATE", false),
		},
		Redis: net.JoinHostPort(p.str("REDIS_HOST", "localhost"), "6379"),
		RabbitMQ: RabbitMQConfig{
			Host: p.str("RABBITMQ_HOST", "localhost"),
			User: p.str("RABBITMQ_USER", "guest"),
			Pass: p.str("RABBITMQ_PASS", "guest"),
		},
		Mongo: MongoConfig{
			User:     p.str("MONGO_USER", ""),
			Pass:     p.str("MONGO_PASS", ""),
			Database: p.str("MONGO_DATABASE", "ledger_audit"),
		},
		HTTPAddr:         ":" + p.str("HTTP_PORT", "8080"),
		StatementDir:     p.str("STATEMENT_DIR", "."),
		AllowOverdraft:   p.bool("ALLOW_OVERDRAFT", false),
		OperationTimeout: p.duration("OPERATION_TIMEOUT", 0),
		LogLevel:         p.level("LOG_LEVEL", zerolog.InfoLevel),
		EnvFileLoaded:    loaded,
	}
	cfg.Mongo.URI = p.str("MONGO_URI", mongoURI(cfg.Mongo.User, cfg.Mongo.Pass))

	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		p.fail("LEDGER_STORE", cfg.Store, errors.New("want postgres or memory"))
	}
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mongoURI(user, pass string) string {
	u := url.URL{Scheme: "mongodb", Host: "localhost:27017"}
	if user != "" {
		u.User = url.UserPassword(user, pass)
	}
	return u.String()
}

// parser collects every malformed variable instead of stopping at the first.
type parser struct {
	errs []error
}

func (p *parser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("invalid %s=%q: %w", key, value, err))
}

func (p *parser) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (p *parser) int(key string, def int) int {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) bool(key string, def bool) bool {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	if d < 0 {
		p.fail(key, v, errors.New("must not be negative"))
		return def
	}
	return d
}

func (p *parser) level(key string, def zerolog.Level) zerolog.Level {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(v))
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return lvl
}
