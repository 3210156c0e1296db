package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/labstack/gommon/log"
)

const (
	SequencerPostgres = "postgres"
	SequencerRedis    = "redis"

	minCredentialSecretLength = 32
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT,default=8080"`
	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,default=cafeteria"`
	DBSslMode  string `env:"DB_SSLMODE,default=disable"`

	CredentialSecret string        `env:"CREDENTIAL_SECRET,required"`
	CredentialTTL    time.Duration `env:"CREDENTIAL_TTL,default=24h"`

	OrderTokenPrefix string `env:"ORDER_TOKEN_PREFIX,default=CAF-"`
	SequencerBackend string `env:"SEQUENCER_BACKEND,default=postgres"`

	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB,default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL,default=24h"`

	AMQPURL         string `env:"AMQP_URL"`
	AMQPExchange    string `env:"AMQP_EXCHANGE,default=cafeteria.orders"`
	OutboxBatchSize int    `env:"OUTBOX_BATCH_SIZE,default=100"`

	LogLevel           string  `env:"LOG_LEVEL,default=info"`
	LoginRatePerSecond float64 `env:"LOGIN_RATE_PER_SECOND,default=5"`
	CORSAllowedOrigins string  `env:"CORS_ALLOWED_ORIGINS"`
}

// LoadConfig decodes the process environment into a validated Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if len(c.CredentialSecret) < minCredentialSecretLength {
		errs = append(errs, fmt.Errorf("CREDENTIAL_SECRET must be at least %d bytes", minCredentialSecretLength))
	}
	if c.CredentialTTL <= 0 {
		errs = append(errs, errors.New("CREDENTIAL_TTL must be positive"))
	}
	switch c.SequencerBackend {
	case SequencerPostgres:
	case SequencerRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when SEQUENCER_BACKEND is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("SEQUENCER_BACKEND %q is not one of postgres, redis", c.SequencerBackend))
	}
	if c.OutboxBatchSize < 1 || c.OutboxBatchSize > 1000 {
		errs = append(errs, fmt.Errorf("OUTBOX_BATCH_SIZE %d is out of range [1, 1000]", c.OutboxBatchSize))
	}
	if c.OrderTokenPrefix == "" {
		errs = append(errs, errors.New("ORDER_TOKEN_PREFIX must not be empty"))
	}

	return errors.Join(errs...)
}

// DSN builds the Postgres connection string shared by GORM and the migrator.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas. Empty means CORS is off.
func (c Config) AllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EchoLogLevel maps LOG_LEVEL onto the gommon levels echo's own logger uses.
func (c Config) EchoLogLevel() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
