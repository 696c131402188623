package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyFinanceSummary is the single derived record per (user, month). The
// ceiling and the include-variable-income flag are user state and survive
// recomputes; every other figure is recomputed on each refresh.
type MonthlyFinanceSummary struct {
	ID                    string
	UserID                string
	MonthStart            Date
	MonthEnd              Date
	TotalIncome           decimal.Decimal
	TotalExpense          decimal.Decimal
	VariableCeiling       decimal.Decimal
	VariableUsed          decimal.Decimal
	TotalAvailable        decimal.Decimal
	GoalContributions     decimal.Decimal
	IncludeVariableIncome bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Month returns the calendar month the summary covers.
func (s MonthlyFinanceSummary) Month() Month {
	return s.MonthStart.ToMonth()
}
