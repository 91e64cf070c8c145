package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RealRateMaxPlaces is the number of decimal places a real rate may carry (NUMERIC(12, 6))
const RealRateMaxPlaces = 6

// RealRateLimit is the exclusive upper bound of a real rate
var RealRateLimit = decimal.New(1, 6)

// Simulation represents a named wealth scenario in the domain layer
// RealRate is the assumed annual growth fraction, already inflation-adjusted
type Simulation struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	RealRate  decimal.Decimal
	CreatedAt time.Time
}

// Validate ensures the simulation adheres to domain rules
// Returns a *ValidationError listing every offending field
func (s *Simulation) Validate() error {
	verr := &ValidationError{}

	if s.Name == "" {
		verr.Add("name", "name is required")
	}

	if s.StartDate.IsZero() {
		verr.Add("startDate", "invalid date")
	}

	switch {
	case s.RealRate.IsNegative():
		verr.Add("realRate", "rate must be greater than or equal to 0")
	case s.RealRate.GreaterThanOrEqual(RealRateLimit):
		verr.Add("realRate", fmt.Sprintf("rate must be less than %s", RealRateLimit))
	case !hasAtMostPlaces(s.RealRate, RealRateMaxPlaces):
		verr.Add("realRate", fmt.Sprintf("rate must have at most %d decimal places", RealRateMaxPlaces))
	}

	return verr.OrNil()
}

// hasAtMostPlaces reports whether d is exactly representable with the given decimal places
// Trailing zeros do not count: 0.0500000 has two places
func hasAtMostPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}
