package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
)

type allocationRepository struct {
	db *DB
}

// NewAllocationRepository creates a new financial allocation repository
func NewAllocationRepository(db *DB) domain.AllocationRepository {
	return &allocationRepository{db: db}
}

// Create inserts the allocation and its history entries in one transaction
func (r *allocationRepository) Create(ctx context.Context, allocation *domain.FinancialAllocation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO financial_allocations (id, simulation_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`,
		allocation.ID.String(),
		allocation.SimulationID.String(),
		allocation.Name,
		formatTime(allocation.CreatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewNotFoundError("simulation", allocation.SimulationID)
		}
		return fmt.Errorf("failed to insert allocation: %w", err)
	}

	for _, entry := range allocation.History {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO allocation_value_history (id, allocation_id, value, date)
			VALUES (?, ?, ?, ?)
		`,
			entry.ID.String(),
			entry.AllocationID.String(),
			entry.Value.String(),
			formatTime(entry.Date),
		)
		if err != nil {
			return fmt.Errorf("failed to insert allocation value entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *allocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialAllocation, error) {
	query := `
		SELECT a.id, a.simulation_id, a.name, a.created_at,
		       h.id, h.value, h.date
		FROM financial_allocations a
		LEFT JOIN allocation_value_history h ON h.allocation_id = a.id
		WHERE a.id = ?
		ORDER BY h.date DESC, h.id
	`

	rows, err := r.db.QueryContext(ctx, query, id.String())
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

func (r *allocationRepository) ListBySimulation(ctx context.Context, simulationID uuid.UUID) ([]*domain.FinancialAllocation, error) {
	query := `
		SELECT a.id, a.simulation_id, a.name, a.created_at,
		       h.id, h.value, h.date
		FROM financial_allocations a
		LEFT JOIN allocation_value_history h ON h.allocation_id = a.id
		WHERE a.simulation_id = ?
		ORDER BY a.created_at ASC, a.id, h.date DESC, h.id
	`

	rows, err := r.db.QueryContext(ctx, query, simulationID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	return scanAllocations(rows)
}

func scanAllocations(rows *sql.Rows) ([]*domain.FinancialAllocation, error) {
	allocations := make([]*domain.FinancialAllocation, 0)
	byID := make(map[string]*domain.FinancialAllocation)

	for rows.Next() {
		var idStr, simIDStr, name, createdStr string
		var entryID, valueStr, dateStr sql.NullString

		if err := rows.Scan(&idStr, &simIDStr, &name, &createdStr, &entryID, &valueStr, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}

		current, ok := byID[idStr]
		if !ok {
			allocation, err := newAllocation(idStr, simIDStr, name, createdStr)
			if err != nil {
				return nil, err
			}
			current = allocation
			byID[idStr] = current
			allocations = append(allocations, current)
		}

		if !entryID.Valid {
			continue
		}

		entry, err := newValueEntry(entryID.String, current.ID, valueStr.String, dateStr.String)
		if err != nil {
			return nil, err
		}
		current.History = append(current.History, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

func newAllocation(idStr, simIDStr, name, createdStr string) (*domain.FinancialAllocation, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse allocation id: %w", err)
	}
	simID, err := uuid.Parse(simIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse simulation_id: %w", err)
	}
	createdAt, err := parseTime(createdStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &domain.FinancialAllocation{
		ID:           id,
		SimulationID: simID,
		Name:         name,
		CreatedAt:    createdAt,
		History:      make([]domain.AllocationValueEntry, 0),
	}, nil
}

func newValueEntry(idStr string, allocationID uuid.UUID, valueStr, dateStr string) (*domain.AllocationValueEntry, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse history entry id: %w", err)
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse value: %w", err)
	}
	date, err := parseTime(dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	return &domain.AllocationValueEntry{
		ID:           id,
		AllocationID: allocationID,
		Value:        value,
		Date:         date,
	}, nil
}
