// Package compare computes period-over-period changes.
package compare

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentChange returns (current - previous) / |previous| * 100.
// A zero previous value yields 0 rather than an error or infinity.
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(hundred).InexactFloat64()
}

// Changes holds the dashboard deltas between two periods.
type Changes struct {
	Balance  float64 `json:"balance"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// Snapshot is the set of figures compared between periods.
type Snapshot struct {
	Balance  decimal.Decimal
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal
}

// Between compares every figure of current against previous.
func Between(current, previous Snapshot) Changes {
	return Changes{
		Balance:  PercentChange(current.Balance, previous.Balance),
		Income:   PercentChange(current.Income, previous.Income),
		Expenses: PercentChange(current.Expenses, previous.Expenses),
		Savings:  PercentChange(current.Savings, previous.Savings),
	}
}
