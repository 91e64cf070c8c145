package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
)

type simulationRepository struct {
	db *DB
}

// NewSimulationRepository creates a new simulation repository
func NewSimulationRepository(db *DB) domain.SimulationRepository {
	return &simulationRepository{db: db}
}

func (r *simulationRepository) Create(ctx context.Context, sim *domain.Simulation) error {
	query := `
		INSERT INTO simulations (id, name, start_date, real_rate, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sim.ID.String(),
		sim.Name,
		formatTime(sim.StartDate),
		sim.RealRate.String(),
		formatTime(sim.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation: %w", err)
	}

	return nil
}

func (r *simulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	query := `
		SELECT id, name, start_date, real_rate, created_at
		FROM simulations
		WHERE id = ?
	`

	sim, err := scanSimulation(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("simulation", id)
		}
		return nil, fmt.Errorf("failed to get simulation by ID: %w", err)
	}

	return sim, nil
}

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

func (r *simulationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM simulations WHERE id = ?`, id.String())
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
	var idStr, startStr, rateStr, createdStr string

	if err := row.Scan(&idStr, &sim.Name, &startStr, &rateStr, &createdStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse id: %w", err)
	}
	sim.ID = id

	if sim.StartDate, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("failed to parse start_date: %w", err)
	}
	if sim.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if sim.RealRate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("failed to parse real_rate: %w", err)
	}

	return &sim, nil
}
