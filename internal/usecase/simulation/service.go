package simulation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/simaogato/wealthsim/internal/usecase/projection"
)

// CreateSimulationInput represents the input for creating a simulation
type CreateSimulationInput struct {
	Name      string
	StartDate time.Time
	RealRate  decimal.Decimal
}

// SimulationService handles simulation registry operations
type SimulationService struct {
	SimulationRepo domain.SimulationRepository
}

// NewSimulationService creates a new SimulationService instance
func NewSimulationService(simulationRepo domain.SimulationRepository) *SimulationService {
	return &SimulationService{
		SimulationRepo: simulationRepo,
	}
}

// Create validates and persists a new simulation
// The identifier and creation timestamp are assigned here
func (s *SimulationService) Create(ctx context.Context, input CreateSimulationInput) (*domain.Simulation, error) {
	sim := &domain.Simulation{
		ID:        uuid.New(),
		Name:      input.Name,
		StartDate: input.StartDate,
		RealRate:  input.RealRate,
		CreatedAt: time.Now().UTC(),
	}

	if err := sim.Validate(); err != nil {
		return nil, err
	}

	if err := s.SimulationRepo.Create(ctx, sim); err != nil {
		return nil, err
	}

	return sim, nil
}

// List returns all simulations, most recently created first
func (s *SimulationService) List(ctx context.Context) ([]*domain.Simulation, error) {
	return s.SimulationRepo.List(ctx)
}

// Get returns a single simulation
func (s *SimulationService) Get(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	return s.SimulationRepo.GetByID(ctx, id)
}

// Delete removes a simulation; its allocations and their history go with it
func (s *SimulationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.SimulationRepo.Delete(ctx, id)
}

// Projection computes the wealth trajectory of a simulation
// Uses the placeholder inputs from projection.ForSimulation
func (s *SimulationService) Projection(ctx context.Context, id uuid.UUID) ([]domain.YearProjection, error) {
	sim, err := s.SimulationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return projection.Project(projection.ForSimulation(sim)), nil
}
