package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
)

// simulationRepository implements domain.SimulationRepository
type simulationRepository struct {
	db *DB
}

// NewSimulationRepository creates a new simulation repository
func NewSimulationRepository(db *DB) domain.SimulationRepository {
	return &simulationRepository{db: db}
}

// Create creates a new simulation
func (r *simulationRepository) Create(ctx context.Context, sim *domain.Simulation) error {
	query := `
		INSERT INTO simulations (id, name, start_date, real_rate, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		sim.ID,
		sim.Name,
		sim.StartDate,
		sim.RealRate.String(),
		sim.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation: %w", err)
	}

	return nil
}

// GetByID retrieves a simulation by its ID
func (r *simulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	query := `
		SELECT id, name, start_date, real_rate, created_at
		FROM simulations
		WHERE id = $1
	`

	sim, err := scanSimulation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("simulation", id)
		}
		return nil, fmt.Errorf("failed to get simulation by ID: %w", err)
	}

	return sim, nil
}

// List retrieves all simulations, newest first
func (r *simulationRepository) List(ctx context.Context) ([]*domain.Simulation, error) {
	query := `
		SELECT id, name, start_date, real_rate, created_at
		FROM simulations
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	defer rows.Close()

	simulations := make([]*domain.Simulation, 0)
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan simulation: %w", err)
		}
		simulations = append(simulations, sim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating simulations: %w", err)
	}

	return simulations, nil
}

// Delete removes a simulation; allocations and history go with it via ON DELETE CASCADE
func (r *simulationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM simulations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete simulation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("simulation", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row rowScanner) (*domain.Simulation, error) {
	var sim domain.Simulation
	var rateStr string

	if err := row.Scan(&sim.ID, &sim.Name, &sim.StartDate, &rateStr, &sim.CreatedAt); err != nil {
		return nil, err
	}

	// Parse real_rate (NUMERIC)
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse real_rate: %w", err)
	}
	sim.RealRate = rate
	sim.StartDate = sim.StartDate.UTC()
	sim.CreatedAt = sim.CreatedAt.UTC()

	return &sim, nil
}
