package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
)

// Fixed UUIDs for demo records so seeding stays idempotent across restarts
var (
	DEMO_BASELINE_SIMULATION     = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	DEMO_CONSERVATIVE_SIMULATION = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	DEMO_EMERGENCY_FUND          = uuid.MustParse("00000000-0000-0000-0000-000000000201")
	DEMO_EMERGENCY_FUND_ENTRY    = uuid.MustParse("00000000-0000-0000-0000-000000000301")
)

// DemoSimulation defines a simulation to be seeded
type DemoSimulation struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	RealRate  decimal.Decimal
}

// DemoSeeder seeds example simulations for local environments
type DemoSeeder struct {
	simulationRepo domain.SimulationRepository
	allocationRepo domain.AllocationRepository
}

// NewDemoSeeder creates a new DemoSeeder instance
func NewDemoSeeder(simulationRepo domain.SimulationRepository, allocationRepo domain.AllocationRepository) *DemoSeeder {
	return &DemoSeeder{
		simulationRepo: simulationRepo,
		allocationRepo: allocationRepo,
	}
}

// Seed ensures the demo simulations and their allocation exist
// Records that already exist are left untouched
func (s *DemoSeeder) Seed(ctx context.Context) error {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	simulations := []DemoSimulation{
		{
			ID:        DEMO_BASELINE_SIMULATION,
			Name:      "Baseline",
			StartDate: start,
			RealRate:  decimal.RequireFromString("0.04"),
		},
		{
			ID:        DEMO_CONSERVATIVE_SIMULATION,
			Name:      "Conservative",
			StartDate: start,
			RealRate:  decimal.RequireFromString("0.02"),
		},
	}

	for _, demo := range simulations {
		_, err := s.simulationRepo.GetByID(ctx, demo.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		sim := &domain.Simulation{
			ID:        demo.ID,
			Name:      demo.Name,
			StartDate: demo.StartDate,
			RealRate:  demo.RealRate,
			CreatedAt: time.Now().UTC(),
		}

		// Validate before creating
		if err := sim.Validate(); err != nil {
			return err
		}

		if err := s.simulationRepo.Create(ctx, sim); err != nil {
			return err
		}
	}

	_, err := s.allocationRepo.GetByID(ctx, DEMO_EMERGENCY_FUND)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	allocation := &domain.FinancialAllocation{
		ID:           DEMO_EMERGENCY_FUND,
		SimulationID: DEMO_BASELINE_SIMULATION,
		Name:         "Emergency fund",
		CreatedAt:    time.Now().UTC(),
		History: []domain.AllocationValueEntry{
			{
				ID:           DEMO_EMERGENCY_FUND_ENTRY,
				AllocationID: DEMO_EMERGENCY_FUND,
				Value:        decimal.NewFromInt(10000),
				Date:         start,
			},
		},
	}

	if err := allocation.Validate(); err != nil {
		return err
	}

	return s.allocationRepo.Create(ctx, allocation)
}
