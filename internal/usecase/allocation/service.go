package allocation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
)

// CreateAllocationInput represents the input for creating a financial allocation
type CreateAllocationInput struct {
	SimulationID uuid.UUID
	Name         string
	InitialValue decimal.Decimal
	Date         time.Time
}

// AddValueEntryInput represents the input for appending a value to an allocation's history
type AddValueEntryInput struct {
	SimulationID uuid.UUID
	AllocationID uuid.UUID
	Value        decimal.Decimal
	Date         time.Time
}

// AllocationService handles financial allocation ledger operations
type AllocationService struct {
	SimulationRepo domain.SimulationRepository
	AllocationRepo domain.AllocationRepository
	HistoryRepo    domain.ValueHistoryRepository
}

// NewAllocationService creates a new AllocationService instance
func NewAllocationService(
	simulationRepo domain.SimulationRepository,
	allocationRepo domain.AllocationRepository,
	historyRepo domain.ValueHistoryRepository,
) *AllocationService {
	return &AllocationService{
		SimulationRepo: simulationRepo,
		AllocationRepo: allocationRepo,
		HistoryRepo:    historyRepo,
	}
}

// CreateFinancial creates an allocation together with its initial value entry
// Logic:
//  1. Resolve the simulation (NotFound if it does not exist)
//  2. Validate name, initial value and date
//  3. Persist allocation + entry atomically
//
// The simulation check and the insert are not one transaction. A simulation deleted in
// between is caught by the store's foreign key and also reported as NotFound.
func (s *AllocationService) CreateFinancial(ctx context.Context, input CreateAllocationInput) (*domain.FinancialAllocation, error) {
	if _, err := s.SimulationRepo.GetByID(ctx, input.SimulationID); err != nil {
		return nil, err
	}

	allocationID := uuid.New()
	allocation := &domain.FinancialAllocation{
		ID:           allocationID,
		SimulationID: input.SimulationID,
		Name:         input.Name,
		CreatedAt:    time.Now().UTC(),
		History: []domain.AllocationValueEntry{
			{
				ID:           uuid.New(),
				AllocationID: allocationID,
				Value:        input.InitialValue,
				Date:         input.Date,
			},
		},
	}

	if err := allocation.Validate(); err != nil {
		return nil, err
	}

	if err := s.AllocationRepo.Create(ctx, allocation); err != nil {
		return nil, err
	}

	return allocation, nil
}

// ListFinancial returns the allocations of a simulation, oldest first,
// each with its history ordered by date descending
func (s *AllocationService) ListFinancial(ctx context.Context, simulationID uuid.UUID) ([]*domain.FinancialAllocation, error) {
	if _, err := s.SimulationRepo.GetByID(ctx, simulationID); err != nil {
		return nil, err
	}

	return s.AllocationRepo.ListBySimulation(ctx, simulationID)
}

// AddValueEntry appends a new dated value to an allocation's history
// The allocation must belong to the given simulation
func (s *AllocationService) AddValueEntry(ctx context.Context, input AddValueEntryInput) (*domain.AllocationValueEntry, error) {
	entry := &domain.AllocationValueEntry{
		ID:           uuid.New(),
		AllocationID: input.AllocationID,
		Value:        input.Value,
		Date:         input.Date,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	allocation, err := s.AllocationRepo.GetByID(ctx, input.AllocationID)
	if err != nil {
		return nil, err
	}

	if allocation.SimulationID != input.SimulationID {
		return nil, domain.NewNotFoundError("allocation", input.AllocationID)
	}

	if err := s.HistoryRepo.Add(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}
