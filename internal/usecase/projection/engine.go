package projection

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
)

// Placeholder inputs used for every simulation projection.
// These are not derived from allocation history yet.
var (
	DefaultInitialValue        = decimal.NewFromInt(10000)
	DefaultMonthlyContribution = decimal.NewFromInt(500)
)

// DefaultEndYear is the last projected year for simulation projections
const DefaultEndYear = 2060

// workingPlaces bounds the accumulator's fractional digits between years
const workingPlaces = 18

var (
	monthsPerYear = decimal.NewFromInt(12)
	one           = decimal.NewFromInt(1)
)

// Params holds the inputs of a projection
type Params struct {
	InitialValue        decimal.Decimal
	MonthlyContribution decimal.Decimal
	YearlyRate          decimal.Decimal
	StartYear           int
	EndYear             int
}

// ForSimulation builds the projection inputs for a simulation
// Uses the simulation's real rate and start year with the placeholder contribution inputs
func ForSimulation(sim *domain.Simulation) Params {
	return Params{
		InitialValue:        DefaultInitialValue,
		MonthlyContribution: DefaultMonthlyContribution,
		YearlyRate:          sim.RealRate,
		StartYear:           sim.StartDate.Year(),
		EndYear:             DefaultEndYear,
	}
}

// Project computes the yearly wealth trajectory
// Logic, for each year from StartYear to EndYear inclusive:
//  1. Add 12 monthly contributions to the running value
//  2. Grow the running value by (1 + YearlyRate)
//  3. Emit the running value rounded to 2 decimal places
//
// Emission rounding does not feed back into the accumulator, which is kept to
// workingPlaces fractional digits so its size stays constant across years.
// Returns an empty slice when StartYear > EndYear.
func Project(p Params) []domain.YearProjection {
	if p.StartYear > p.EndYear {
		return []domain.YearProjection{}
	}

	yearlyContribution := p.MonthlyContribution.Mul(monthsPerYear)
	growth := one.Add(p.YearlyRate)

	projections := make([]domain.YearProjection, 0, p.EndYear-p.StartYear+1)
	current := p.InitialValue

	for year := p.StartYear; year <= p.EndYear; year++ {
		current = current.Add(yearlyContribution).Mul(growth).Round(workingPlaces)

		projections = append(projections, domain.YearProjection{
			Year:       year,
			TotalValue: current.Round(2),
		})
	}

	return projections
}
