package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS simulations (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    start_date  TEXT NOT NULL,
    real_rate   TEXT NOT NULL,
    created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_simulations_created_at ON simulations (created_at);

CREATE TABLE IF NOT EXISTS financial_allocations (
    id             TEXT PRIMARY KEY,
    simulation_id  TEXT NOT NULL REFERENCES simulations (id) ON DELETE CASCADE,
    name           TEXT NOT NULL,
    created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_financial_allocations_simulation ON financial_allocations (simulation_id, created_at);

CREATE TABLE IF NOT EXISTS allocation_value_history (
    id             TEXT PRIMARY KEY,
    allocation_id  TEXT NOT NULL REFERENCES financial_allocations (id) ON DELETE CASCADE,
    value          TEXT NOT NULL,
    date           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_allocation_value_history_allocation ON allocation_value_history (allocation_id, date);
`

// InitSchema creates the tables and indexes if they do not exist yet
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
