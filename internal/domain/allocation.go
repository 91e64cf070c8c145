package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValueMaxPlaces is the number of decimal places an allocation value may carry (NUMERIC(20, 2))
const ValueMaxPlaces = 2

// ValueLimit is the exclusive upper bound of an allocation value
var ValueLimit = decimal.New(1, 18)

// FinancialAllocation represents a named value bucket belonging to one simulation
// History is ordered by date, most recent first
type FinancialAllocation struct {
	ID           uuid.UUID
	SimulationID uuid.UUID
	Name         string
	CreatedAt    time.Time
	History      []AllocationValueEntry
}

// AllocationValueEntry is one dated value observation of an allocation
// Same shape as a market value history row: the value at a point in time
type AllocationValueEntry struct {
	ID           uuid.UUID
	AllocationID uuid.UUID
	Value        decimal.Decimal
	Date         time.Time
}

// Validate ensures the allocation adheres to domain rules
// CRITICAL: an allocation must carry at least one history entry (its initial value)
func (a *FinancialAllocation) Validate() error {
	verr := &ValidationError{}

	if a.Name == "" {
		verr.Add("name", "allocation name is required")
	}

	if a.SimulationID == uuid.Nil {
		verr.Add("simulationId", "simulation ID is required")
	}

	if len(a.History) == 0 {
		verr.Add("history", "allocation must have an initial value entry")
	}

	for _, entry := range a.History {
		if entry.AllocationID != a.ID {
			verr.Add("history", "history entry must belong to the allocation")
		}
		if err := entry.Validate(); err != nil {
			verr.Merge(err)
		}
	}

	return verr.OrNil()
}

// Validate ensures the value entry adheres to domain rules
func (e *AllocationValueEntry) Validate() error {
	verr := &ValidationError{}

	switch {
	case !e.Value.IsPositive():
		verr.Add("value", "value must be positive")
	case e.Value.GreaterThanOrEqual(ValueLimit):
		verr.Add("value", fmt.Sprintf("value must be less than %s", ValueLimit))
	case !hasAtMostPlaces(e.Value, ValueMaxPlaces):
		verr.Add("value", fmt.Sprintf("value must have at most %d decimal places", ValueMaxPlaces))
	}

	if e.Date.IsZero() {
		verr.Add("date", "invalid date")
	}

	return verr.OrNil()
}

// LatestEntry returns the most recent history entry, or nil if there is none
func (a *FinancialAllocation) LatestEntry() *AllocationValueEntry {
	var latest *AllocationValueEntry
	for i := range a.History {
		if latest == nil || a.History[i].Date.After(latest.Date) {
			latest = &a.History[i]
		}
	}
	return latest
}
