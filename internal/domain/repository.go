package domain

import (
	"context"

	"github.com/google/uuid"
)

// SimulationRepository defines the interface for simulation persistence operations
type SimulationRepository interface {
	// Create creates a new simulation
	Create(ctx context.Context, sim *Simulation) error

	// GetByID retrieves a simulation by its ID
	// Returns a NotFoundError if no simulation has that ID
	GetByID(ctx context.Context, id uuid.UUID) (*Simulation, error)

	// List retrieves all simulations, most recently created first
	List(ctx context.Context) ([]*Simulation, error)

	// Delete removes a simulation together with its allocations and their history
	// Returns a NotFoundError if no simulation has that ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// AllocationRepository defines the interface for financial allocation persistence operations
type AllocationRepository interface {
	// Create creates the allocation and all of its history entries atomically
	// Returns a NotFoundError if the parent simulation no longer exists
	Create(ctx context.Context, allocation *FinancialAllocation) error

	// GetByID retrieves an allocation with its history (date descending)
	GetByID(ctx context.Context, id uuid.UUID) (*FinancialAllocation, error)

	// ListBySimulation retrieves the allocations of a simulation, oldest first,
	// each with its history ordered by date descending
	ListBySimulation(ctx context.Context, simulationID uuid.UUID) ([]*FinancialAllocation, error)
}

// ValueHistoryRepository defines the interface for allocation value history persistence operations
type ValueHistoryRepository interface {
	// Add creates a new value history entry
	Add(ctx context.Context, entry *AllocationValueEntry) error
}

// Pinger reports whether the backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}
