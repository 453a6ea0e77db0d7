package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/pkg/db"
)

// Ledger backends selectable via LEDGER_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// AppConfig holds all application-wide configuration.
type AppConfig struct {
	Port          string
	LedgerBackend string
	SweepInterval time.Duration
	DB            db.Config
}

// LoadConfig loads configuration from environment variables, falling back to
// local-development defaults.
func LoadConfig() (*AppConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	backend := os.Getenv("LEDGER_BACKEND")
	if backend == "" {
		backend = BackendMemory
	}
	if backend != BackendMemory && backend != BackendPostgres {
		return nil, fmt.Errorf("invalid LEDGER_BACKEND %q", backend)
	}

	sweepInterval := time.Minute
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", parsed)
		}
		sweepInterval = parsed
	}

	dbPort := 5432
	if raw := os.Getenv("DB_PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT: %w", err)
		}
		dbPort = parsed
	}

	return &AppConfig{
		Port:          port,
		LedgerBackend: backend,
		SweepInterval: sweepInterval,
		DB: db.Config{
			Host:     envOr("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     envOr("DB_USER", "auction"),
			Password: envOr("DB_PASSWORD", "auction"),
			DBName:   envOr("DB_NAME", "auctiondb"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
