package domain

import "github.com/shopspring/decimal"

// YearProjection is one point of a wealth trajectory
// TotalValue is rounded to 2 decimal places
type YearProjection struct {
	Year       int
	TotalValue decimal.Decimal
}
