package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/repository/postgres"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8081"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Store       string        `env:"STORE" envDefault:"postgres"`
	AutoMigrate bool          `env:"AUTO_MIGRATE" envDefault:"false"`
	TxTimeout   time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`

	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"supplychain"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	DBMaxConns      int    `env:"DB_MAX_CONNS" envDefault:"10"`

	KafkaEnabled     bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers     string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaStatusTopic string `env:"KAFKA_STATUS_TOPIC" envDefault:"delivery-status"`
	KafkaEventsTopic string `env:"KAFKA_EVENTS_TOPIC" envDefault:"supply-events"`
	KafkaDLQTopic    string `env:"KAFKA_DLQ_TOPIC" envDefault:"delivery-status-dlq"`
	KafkaGroupID     string `env:"KAFKA_GROUP_ID" envDefault:"supplychain-admin"`
	KafkaMaxRetries  int    `env:"KAFKA_MAX_RETRIES" envDefault:"5"`

	StatusSamplePath string `env:"STATUS_SAMPLE_PATH" envDefault:"web/delivery_status.json"`
}

// LoadConfig reads dotenv (when the file exists) and then the environment. Variables
// already set in the environment win over the file.
func LoadConfig(dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil {
			logrus.WithField("path", dotenv).Debug("no dotenv file, using environment only")
		}
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	switch c.Store {
	case StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("config parse: STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store)
	}
	return c, nil
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		Username: c.PostgresUser,
		Password: c.PostgresPass,
		DbName:   c.PostgresDB,
		SslMode:  c.PostgresSSLMode,
		URL:      c.DatabaseURL,
		MaxConns: c.DBMaxConns,
	}
}

func (c Config) PgDSN() string {
	return c.Postgres().DSN()
}

// SetupLogging applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func (c Config) SetupLogging() error {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logrus.SetLevel(lvl)
	switch c.LogFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log format %q", c.LogFormat)
	}
	return nil
}
