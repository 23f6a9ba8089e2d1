package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const accountsSchema = `
CREATE TABLE IF NOT EXISTS accounts (
    id           BIGSERIAL PRIMARY KEY,
    name         TEXT NOT NULL,
    email        TEXT NOT NULL,
    address      TEXT NOT NULL,
    phone_number TEXT,
    date_joined  DATE NOT NULL DEFAULT CURRENT_DATE
)`

// EnsureSchema initializes the accounts table. It runs once at process
// startup and is idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, accountsSchema); err != nil {
		return fmt.Errorf("error initializing accounts schema: %w", err)
	}
	return nil
}
