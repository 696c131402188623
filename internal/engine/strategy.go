package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"financas/internal/core"
)

// Strategy is a proposed funding plan for a goal.
type Strategy struct {
	Months              int
	MonthlyContribution decimal.Decimal
	Feasible            bool
	Message             string
}

// ParcelValidation is the verdict on a user-chosen parcel count.
type ParcelValidation struct {
	Valid               bool
	Message             string
	MonthlyContribution decimal.Decimal
}

// SuggestStrategy proposes the shortest plan whose monthly contribution fits
// the available figure: months = ceil(target/available), contribution spread
// evenly. A non-positive available yields an explicit infeasible answer
// instead of a division blowup.
func SuggestStrategy(target, availablePerMonth decimal.Decimal) Strategy {
	if !target.IsPositive() {
		return Strategy{Message: "target value must be positive"}
	}
	if !availablePerMonth.IsPositive() {
		return Strategy{Message: "no monthly amount available to fund the goal"}
	}

	months := int(target.Div(availablePerMonth).Ceil().IntPart())
	contribution := target.Div(decimal.NewFromInt(int64(months))).Round(2)

	return Strategy{
		Months:              months,
		MonthlyContribution: contribution,
		Feasible:            true,
		Message:             fmt.Sprintf("save %s per month for %d months", contribution, months),
	}
}

// ValidateParcels checks a user-chosen parcel count against feasibility. A
// contribution exactly equal to the available figure is still valid.
func ValidateParcels(target decimal.Decimal, numParcels int, availablePerMonth decimal.Decimal) ParcelValidation {
	if numParcels <= 0 {
		return ParcelValidation{Message: "number of parcels must be positive"}
	}
	contribution := target.Div(decimal.NewFromInt(int64(numParcels))).Round(2)
	if contribution.GreaterThan(availablePerMonth) {
		return ParcelValidation{
			MonthlyContribution: contribution,
			Message: fmt.Sprintf("monthly contribution %s exceeds the available %s",
				contribution, availablePerMonth),
		}
	}
	return ParcelValidation{
		Valid:               true,
		MonthlyContribution: contribution,
		Message:             fmt.Sprintf("%d parcels of %s", numParcels, contribution),
	}
}

// ComputeEndDate advances the start date by numParcels-1 months and snaps to
// the last day of the resulting month: goals always end on a month boundary
// regardless of the day they started on.
func ComputeEndDate(start core.Date, numParcels int) core.Date {
	if numParcels < 1 {
		numParcels = 1
	}
	y := start.Time.Year()
	m := start.Time.Month() + time.Month(numParcels)
	// Day zero normalizes to the last day of the month before m.
	return core.Date{Time: time.Date(y, m, 0, 0, 0, 0, 0, time.UTC)}
}
