package postgres

import (
	"context"
	"fmt"

	"github.com/simaogato/wealthsim/internal/domain"
)

// valueHistoryRepository implements domain.ValueHistoryRepository
type valueHistoryRepository struct {
	db *DB
}

// NewValueHistoryRepository creates a new allocation value history repository
func NewValueHistoryRepository(db *DB) domain.ValueHistoryRepository {
	return &valueHistoryRepository{db: db}
}

// Add creates a new value history entry
func (r *valueHistoryRepository) Add(ctx context.Context, entry *domain.AllocationValueEntry) error {
	query := `
		INSERT INTO allocation_value_history (id, allocation_id, value, date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.AllocationID,
		entry.Value.String(),
		entry.Date,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewNotFoundError("allocation", entry.AllocationID)
		}
		return fmt.Errorf("failed to insert value history entry: %w", err)
	}

	return nil
}
