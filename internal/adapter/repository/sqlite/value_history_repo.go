package sqlite

import (
	"context"
	"fmt"

	"github.com/simaogato/wealthsim/internal/domain"
)

type valueHistoryRepository struct {
	db *DB
}

// NewValueHistoryRepository creates a new allocation value history repository
func NewValueHistoryRepository(db *DB) domain.ValueHistoryRepository {
	return &valueHistoryRepository{db: db}
}

func (r *valueHistoryRepository) Add(ctx context.Context, entry *domain.AllocationValueEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO allocation_value_history (id, allocation_id, value, date)
		VALUES (?, ?, ?, ?)
	`,
		entry.ID.String(),
		entry.AllocationID.String(),
		entry.Value.String(),
		formatTime(entry.Date),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewNotFoundError("allocation", entry.AllocationID)
		}
		return fmt.Errorf("failed to insert value history entry: %w", err)
	}

	return nil
}
