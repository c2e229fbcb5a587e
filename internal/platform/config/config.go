package config

import (
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName    string
	HTTPPort       string
	PostgresDSN    string
	KafkaBrokers   []string
	StorageBackend string

	OutboxPollInterval          time.Duration
	OutboxBatchSize             int
	EnableGovernanceOutboxRelay bool
}

const (
	StorageBackendMemory   = "memory"
	StorageBackendPostgres = "postgres"
)

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "agora"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	backend := strings.TrimSpace(strings.ToLower(os.Getenv("STORAGE_BACKEND")))
	if backend == "" {
		backend = StorageBackendMemory
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	return Config{
		ServiceName:    service,
		HTTPPort:       port,
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		KafkaBrokers:   brokers,
		StorageBackend: backend,

		OutboxPollInterval:          envDuration("OUTBOX_POLL_INTERVAL", 5*time.Second),
		OutboxBatchSize:             100,
		EnableGovernanceOutboxRelay: envBool("ENABLE_GOVERNANCE_OUTBOX_RELAY", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
