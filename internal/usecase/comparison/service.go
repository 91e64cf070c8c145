package comparison

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/simaogato/wealthsim/internal/usecase/projection"
)

// Outcome is the result of comparing a single simulation
// Found is false when the identifier did not resolve; Name and Projection are then empty
type Outcome struct {
	SimulationID uuid.UUID
	Name         string
	Found        bool
	Projection   []domain.YearProjection
}

// ComparisonService fans projection requests out across many simulations
type ComparisonService struct {
	SimulationRepo domain.SimulationRepository

	// MaxConcurrency bounds the number of in-flight lookups, 0 means one per identifier
	MaxConcurrency int

	logger *slog.Logger
}

// NewComparisonService creates a new ComparisonService instance
func NewComparisonService(simulationRepo domain.SimulationRepository, maxConcurrency int, logger *slog.Logger) *ComparisonService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComparisonService{
		SimulationRepo: simulationRepo,
		MaxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// Compare projects every requested simulation concurrently and waits for all of them
// Logic:
//  1. Deduplicate identifiers, keeping first-seen order
//  2. Resolve + project each identifier in its own goroutine
//  3. A missing simulation is a soft outcome (Found=false), any other store error fails the comparison
//
// Outcomes are returned in the deduplicated input order.
func (s *ComparisonService) Compare(ctx context.Context, ids []uuid.UUID) ([]Outcome, error) {
	if len(ids) == 0 {
		return nil, domain.NewValidationError("simulationIds", "at least one simulation ID is required")
	}

	unique := dedupe(ids)
	outcomes := make([]Outcome, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	if s.MaxConcurrency > 0 {
		g.SetLimit(s.MaxConcurrency)
	}

	for i, id := range unique {
		g.Go(func() error {
			sim, err := s.SimulationRepo.GetByID(gctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					s.logger.Warn("simulation not found during comparison", "simulation_id", id)
					outcomes[i] = Outcome{SimulationID: id}
					return nil
				}
				return fmt.Errorf("failed to resolve simulation %s: %w", id, err)
			}

			outcomes[i] = Outcome{
				SimulationID: id,
				Name:         sim.Name,
				Found:        true,
				Projection:   projection.Project(projection.ForSimulation(sim)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// Results keeps only the simulations that were found, keyed by identifier
func Results(outcomes []Outcome) map[string][]domain.YearProjection {
	results := make(map[string][]domain.YearProjection, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Found {
			results[outcome.SimulationID.String()] = outcome.Projection
		}
	}
	return results
}

// Missing lists the identifiers that did not resolve to a simulation
func Missing(outcomes []Outcome) []uuid.UUID {
	missing := make([]uuid.UUID, 0)
	for _, outcome := range outcomes {
		if !outcome.Found {
			missing = append(missing, outcome.SimulationID)
		}
	}
	return missing
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
