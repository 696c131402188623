package engine

import (
	"github.com/shopspring/decimal"

	"financas/internal/core"
)

// DefaultVariableCeiling is the reservation applied to unbudgeted spending
// when a summary is first created and the caller supplies no ceiling. It is
// injected from here everywhere; call sites never restate the number.
var DefaultVariableCeiling = decimal.NewFromInt(300)

// ComputeInput is everything the monthly summary fold consumes. Items is
// empty when the user has no active budget; Operations is the requested
// month's working set in any state (the fold filters).
type ComputeInput struct {
	Month                 core.Month
	Items                 []core.BudgetItem
	Operations            []core.Operation
	Goals                 []core.Goal
	IncludeVariableIncome bool
	VariableCeiling       decimal.Decimal
}

// SummaryTotals is the derived part of a monthly summary.
type SummaryTotals struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	VariableUsed      decimal.Decimal
	GoalContributions decimal.Decimal
	TotalAvailable    decimal.Decimal
}

// ComputeSummary reconciles the budget, the ledger and the active goals into
// the month's totals. Deterministic: same input, same totals.
func ComputeSummary(in ComputeInput) SummaryTotals {
	t := SummaryTotals{
		TotalIncome:       TotalMonthlyIncome(in.Items, in.Operations, in.Month, in.IncludeVariableIncome),
		TotalExpense:      TotalMonthlyExpense(in.Items, in.Operations, in.Month),
		VariableUsed:      VariableExpenseUsed(in.Items, in.Operations, in.Month),
		GoalContributions: GoalContributions(in.Goals, in.Month),
	}

	// The ceiling is a floor-reservation: staying under it still reserves
	// the full ceiling, exceeding it reserves the real figure.
	reserved := in.VariableCeiling
	if t.VariableUsed.GreaterThan(reserved) {
		reserved = t.VariableUsed
	}

	t.TotalAvailable = t.TotalIncome.
		Sub(t.TotalExpense).
		Sub(reserved).
		Sub(t.GoalContributions)
	return t
}

// TotalMonthlyIncome sums the budgeted income items' planned values. When
// includeVariable is set, posted income operations in categories outside the
// budgeted income set are added on top; when unset, unbudgeted income is
// excluded entirely.
func TotalMonthlyIncome(items []core.BudgetItem, ops []core.Operation, month core.Month, includeVariable bool) decimal.Decimal {
	total := core.SumPlanned(items, core.NatureIncome)
	if !includeVariable {
		return total
	}

	budgeted := categorySet(items, core.NatureIncome)
	for _, op := range ops {
		if op.Nature != core.NatureIncome || !op.State.Posted() || !month.Contains(op.Date) {
			continue
		}
		if _, ok := budgeted[op.Category]; ok {
			continue
		}
		total = total.Add(op.AbsValue())
	}
	return total
}

// TotalMonthlyExpense sums the budgeted expense items' planned values plus
// each category's overage: planned amounts are a floor that always counts,
// and spending past them costs the excess on top, never less.
func TotalMonthlyExpense(items []core.BudgetItem, ops []core.Operation, month core.Month) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Type != core.NatureExpense {
			continue
		}
		actual := decimal.Zero
		for _, op := range ops {
			if op.Nature != core.NatureExpense || !op.State.Posted() || !month.Contains(op.Date) {
				continue
			}
			if op.Category != item.Category {
				continue
			}
			actual = actual.Add(op.AbsValue())
		}
		total = total.Add(item.Planned)
		if over := actual.Sub(item.Planned); over.IsPositive() {
			total = total.Add(over)
		}
	}
	return total
}

// VariableExpenseUsed sums posted expense operations whose category has no
// budget item at all. Overage inside budgeted categories is handled by
// TotalMonthlyExpense and never lands here, so nothing is double-counted.
func VariableExpenseUsed(items []core.BudgetItem, ops []core.Operation, month core.Month) decimal.Decimal {
	budgeted := categorySet(items, core.NatureExpense)
	total := decimal.Zero
	for _, op := range ops {
		if op.Nature != core.NatureExpense || !op.State.Posted() || !month.Contains(op.Date) {
			continue
		}
		if _, ok := budgeted[op.Category]; ok {
			continue
		}
		total = total.Add(op.AbsValue())
	}
	return total
}

// GoalContributions sums monthly contributions over active goals whose date
// interval overlaps the month.
func GoalContributions(goals []core.Goal, month core.Month) decimal.Decimal {
	total := decimal.Zero
	for _, g := range goals {
		if g.ContributesIn(month) {
			total = total.Add(g.MonthlyContribution)
		}
	}
	return total
}

func categorySet(items []core.BudgetItem, n core.Nature) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Type == n {
			set[item.Category] = struct{}{}
		}
	}
	return set
}
