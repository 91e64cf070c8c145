package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
)

// allocationRepository implements domain.AllocationRepository
type allocationRepository struct {
	db *DB
}

// NewAllocationRepository creates a new financial allocation repository
func NewAllocationRepository(db *DB) domain.AllocationRepository {
	return &allocationRepository{db: db}
}

// Create creates a new allocation with all its history entries in a database transaction
func (r *allocationRepository) Create(ctx context.Context, allocation *domain.FinancialAllocation) error {
	// Start a database transaction
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	// Insert the allocation header
	insertAllocationQuery := `
		INSERT INTO financial_allocations (id, simulation_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err = dbTx.ExecContext(ctx, insertAllocationQuery,
		allocation.ID,
		allocation.SimulationID,
		allocation.Name,
		allocation.CreatedAt,
	)
	if err != nil {
		// The simulation was deleted after the service checked for it
		if isForeignKeyViolation(err) {
			return domain.NewNotFoundError("simulation", allocation.SimulationID)
		}
		return fmt.Errorf("failed to insert allocation: %w", err)
	}

	// Insert all history entries
	insertEntryQuery := `
		INSERT INTO allocation_value_history (id, allocation_id, value, date)
		VALUES ($1, $2, $3, $4)
	`

	for _, entry := range allocation.History {
		_, err = dbTx.ExecContext(ctx, insertEntryQuery,
			entry.ID,
			entry.AllocationID,
			entry.Value.String(),
			entry.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert allocation value entry: %w", err)
		}
	}

	// Commit the transaction
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an allocation with its history, newest entry first
func (r *allocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialAllocation, error) {
	query := `
		SELECT a.id, a.simulation_id, a.name, a.created_at,
		       h.id, h.value, h.date
		FROM financial_allocations a
		LEFT JOIN allocation_value_history h ON h.allocation_id = a.id
		WHERE a.id = $1
		ORDER BY h.date DESC, h.id
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation by ID: %w", err)
	}
	defer rows.Close()

	allocations, err := scanAllocations(rows)
	if err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return nil, domain.NewNotFoundError("allocation", id)
	}

	return allocations[0], nil
}

// ListBySimulation retrieves the allocations of a simulation, oldest first,
// each with its history ordered by date descending
func (r *allocationRepository) ListBySimulation(ctx context.Context, simulationID uuid.UUID) ([]*domain.FinancialAllocation, error) {
	query := `
		SELECT a.id, a.simulation_id, a.name, a.created_at,
		       h.id, h.value, h.date
		FROM financial_allocations a
		LEFT JOIN allocation_value_history h ON h.allocation_id = a.id
		WHERE a.simulation_id = $1
		ORDER BY a.created_at ASC, a.id, h.date DESC, h.id
	`

	rows, err := r.db.QueryContext(ctx, query, simulationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	return scanAllocations(rows)
}

// scanAllocations folds joined allocation/history rows into allocations, keeping row order
func scanAllocations(rows *sql.Rows) ([]*domain.FinancialAllocation, error) {
	allocations := make([]*domain.FinancialAllocation, 0)
	byID := make(map[uuid.UUID]*domain.FinancialAllocation)

	for rows.Next() {
		var allocation domain.FinancialAllocation
		var entryID sql.NullString
		var valueStr sql.NullString
		var entryDate sql.NullTime

		err := rows.Scan(
			&allocation.ID,
			&allocation.SimulationID,
			&allocation.Name,
			&allocation.CreatedAt,
			&entryID,
			&valueStr,
			&entryDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}

		current, ok := byID[allocation.ID]
		if !ok {
			allocation.CreatedAt = allocation.CreatedAt.UTC()
			allocation.History = make([]domain.AllocationValueEntry, 0)
			current = &allocation
			byID[allocation.ID] = current
			allocations = append(allocations, current)
		}

		// LEFT JOIN yields NULLs for an allocation without history
		if !entryID.Valid {
			continue
		}

		parsedID, err := uuid.Parse(entryID.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse history entry id: %w", err)
		}

		// Parse value (NUMERIC)
		value, err := decimal.NewFromString(valueStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse value: %w", err)
		}

		current.History = append(current.History, domain.AllocationValueEntry{
			ID:           parsedID,
			AllocationID: current.ID,
			Value:        value,
			Date:         entryDate.Time.UTC(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}
