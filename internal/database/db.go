package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the process-wide connection pool. Connect it once at startup.
var DB *pgxpool.Pool

// Connect builds the pool from the POSTGRES_*/PG_* environment variables
// and verifies the connection with a short ping.
func Connect(ctx context.Context) error {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		getEnv("POSTGRES_USER", "bdaybook"),
		getEnv("POSTGRES_PASSWORD", "bdaybook"),
		getEnv("PG_HOST", "localhost"),
		getEnv("PG_PORT", "5432"),
		getEnv("PG_DATABASE", "bdaybook"),
	)

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("unable to parse pgx config: %w", err)
	}

	DB, err = pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := DB.Ping(pingCtx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}
	return nil
}

// EnsureSchema creates the friends table when it does not exist yet. Safe
// to run on every startup.
func EnsureSchema(ctx context.Context) error {
	q := `
	CREATE TABLE IF NOT EXISTS friends (
		id            BIGSERIAL PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		email_address TEXT NOT NULL,
		birthday      DATE NOT NULL
	)
	`
	if _, err := DB.Exec(ctx, q); err != nil {
		return fmt.Errorf("failed to ensure friends table: %w", err)
	}
	return nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
