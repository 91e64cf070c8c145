// Package repository opens the configured store and hands out its repositories.
package repository

import (
	"context"
	"fmt"

	"github.com/simaogato/wealthsim/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthsim/internal/adapter/repository/sqlite"
	"github.com/simaogato/wealthsim/internal/config"
	"github.com/simaogato/wealthsim/internal/domain"
)

// Store bundles the repositories of one database connection
type Store struct {
	Simulations domain.SimulationRepository
	Allocations domain.AllocationRepository
	History     domain.ValueHistoryRepository
	Pinger      domain.Pinger

	close func() error
}

// Open connects to the configured driver and ensures the schema exists
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &Store{
			Simulations: postgres.NewSimulationRepository(db),
			Allocations: postgres.NewAllocationRepository(db),
			History:     postgres.NewValueHistoryRepository(db),
			Pinger:      db,
			close:       db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Simulations: sqlite.NewSimulationRepository(db),
			Allocations: sqlite.NewAllocationRepository(db),
			History:     sqlite.NewValueHistoryRepository(db),
			Pinger:      db,
			close:       db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Close closes the underlying connection
func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}
