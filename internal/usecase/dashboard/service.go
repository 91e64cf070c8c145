package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
)

// AllocationValue is the latest known value of one allocation
type AllocationValue struct {
	AllocationID uuid.UUID
	Name         string
	LatestValue  decimal.Decimal
	LatestDate   time.Time
}

// SummaryResult represents the current wealth of a simulation
type SummaryResult struct {
	SimulationID uuid.UUID
	TotalValue   decimal.Decimal
	Allocations  []AllocationValue
}

// SummaryService handles dashboard-related operations
type SummaryService struct {
	SimulationRepo domain.SimulationRepository
	AllocationRepo domain.AllocationRepository
}

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(
	simulationRepo domain.SimulationRepository,
	allocationRepo domain.AllocationRepository,
) *SummaryService {
	return &SummaryService{
		SimulationRepo: simulationRepo,
		AllocationRepo: allocationRepo,
	}
}

// GetSummary calculates the current total value of a simulation
// Logic:
//   - Each allocation counts with its latest history entry, already loaded by ListBySimulation
//   - Allocations without history are listed with a zero value
//   - Total: sum of the latest values
func (s *SummaryService) GetSummary(ctx context.Context, simulationID uuid.UUID) (*SummaryResult, error) {
	if _, err := s.SimulationRepo.GetByID(ctx, simulationID); err != nil {
		return nil, err
	}

	allocations, err := s.AllocationRepo.ListBySimulation(ctx, simulationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	result := &SummaryResult{
		SimulationID: simulationID,
		TotalValue:   decimal.Zero,
		Allocations:  make([]AllocationValue, 0, len(allocations)),
	}

	for _, allocation := range allocations {
		value := AllocationValue{
			AllocationID: allocation.ID,
			Name:         allocation.Name,
			LatestValue:  decimal.Zero,
		}

		if entry := allocation.LatestEntry(); entry != nil {
			value.LatestValue = entry.Value
			value.LatestDate = entry.Date
		}

		result.TotalValue = result.TotalValue.Add(value.LatestValue)
		result.Allocations = append(result.Allocations, value)
	}

	return result, nil
}
