package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vittamlabs/origination/pkg/postgres"
)

// StoreDriver selects the session/sanction persistence backend.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type CollaboratorConfig struct {
	// BaseURL of the external service; empty selects the deterministic stub.
	KYCBaseURL    string
	BureauBaseURL string
}

type Config struct {
	ServiceName string
	GRPCPort    int
	HTTPPort    int
	LogLevel    string

	StoreDriver   string
	DB            postgres.Config
	MigrationsDir string

	Kafka         KafkaConfig
	Collaborators CollaboratorConfig

	// DisbursementAccountRef is stamped onto every sanction record.
	DisbursementAccountRef string
}

func (c Config) Validate() error {
	if c.StoreDriver != StoreMemory && c.StoreDriver != StorePostgres {
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == StorePostgres && c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required with the postgres store")
	}
	return nil
}

func Load() Config {
	return Config{
		ServiceName: "originationd",
		GRPCPort:    getEnvInt("GRPC_PORT", 9095),
		HTTPPort:    getEnvInt("HTTP_PORT", 8095),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		StoreDriver: getEnv("STORE_DRIVER", StoreMemory),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "origination"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "origination"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		MigrationsDir: getEnv("MIGRATIONS_DIR", "file://./internal/infrastructure/persistence/postgres/migrations"),

		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "origination.sessions"),
		},
		Collaborators: CollaboratorConfig{
			KYCBaseURL:    getEnv("KYC_BASE_URL", ""),
			BureauBaseURL: getEnv("CREDIT_BUREAU_BASE_URL", ""),
		},

		DisbursementAccountRef: getEnv("DISBURSEMENT_ACCOUNT_REF", "VITTAM-DISB-001"),
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
