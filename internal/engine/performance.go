package engine

import (
	"github.com/shopspring/decimal"

	"financas/internal/core"
)

// PerformanceStatus is the three-way planned-vs-actual verdict.
type PerformanceStatus string

const (
	StatusSuperavit   PerformanceStatus = "superávit"
	StatusDeficit     PerformanceStatus = "déficit"
	StatusEquilibrado PerformanceStatus = "equilibrado"
)

// ItemPerformance is one category's planned-vs-actual figures.
type ItemPerformance struct {
	Category       string
	Type           core.Nature
	Planned        decimal.Decimal
	Actual         decimal.Decimal
	PercentageUsed decimal.Decimal
	Status         PerformanceStatus
}

// BudgetPerformance is the per-category report plus the aggregate verdict
// for a budget's whole period. The aggregate compares expense totals only;
// income items never move it.
type BudgetPerformance struct {
	BudgetID       string
	Start          core.Date
	End            core.Date
	Items          []ItemPerformance
	PlannedExpense decimal.Decimal
	ActualExpense  decimal.Decimal
	Status         PerformanceStatus
}

// MonthlyPerformance is the month-scoped report. Unlike BudgetPerformance
// its income/expense totals are the centrally computed real figures handed
// in by the aggregator, and it carries a signed balance.
type MonthlyPerformance struct {
	Month         core.Month
	Items         []ItemPerformance
	IncomeActual  decimal.Decimal
	ExpenseActual decimal.Decimal
	Balance       decimal.Decimal
	Status        PerformanceStatus
}

var hundred = decimal.NewFromInt(100)

// Calculate builds the per-item report for the budget period. Only posted
// operations (pago/recebido) inside [budget.Start, budget.End] whose
// category and nature match the item count toward its actual.
func Calculate(budget core.Budget, items []core.BudgetItem, ops []core.Operation) BudgetPerformance {
	perf := BudgetPerformance{
		BudgetID:       budget.ID,
		Start:          budget.Start,
		End:            budget.End,
		PlannedExpense: decimal.Zero,
		ActualExpense:  decimal.Zero,
	}

	inPeriod := func(d core.Date) bool {
		return !d.Before(budget.Start) && !d.After(budget.End)
	}

	for _, item := range items {
		actual := decimal.Zero
		for _, op := range ops {
			if !op.State.Posted() || op.Nature != item.Type {
				continue
			}
			if op.Category != item.Category || !inPeriod(op.Date) {
				continue
			}
			actual = actual.Add(op.AbsValue())
		}
		perf.Items = append(perf.Items, itemPerformance(item, actual))
		if item.Type == core.NatureExpense {
			perf.PlannedExpense = perf.PlannedExpense.Add(item.Planned)
			perf.ActualExpense = perf.ActualExpense.Add(actual)
		}
	}

	perf.Status = expenseStatus(perf.PlannedExpense, perf.ActualExpense)
	return perf
}

// CalculateMonthly builds the month-scoped report. incomeActual and
// expenseActual are the aggregator's real totals, not re-summed here.
func CalculateMonthly(month core.Month, items []core.BudgetItem, ops []core.Operation, incomeActual, expenseActual decimal.Decimal) MonthlyPerformance {
	perf := MonthlyPerformance{
		Month:         month,
		IncomeActual:  incomeActual,
		ExpenseActual: expenseActual,
		Balance:       incomeActual.Sub(expenseActual),
	}

	for _, item := range items {
		actual := decimal.Zero
		for _, op := range ops {
			if !op.State.Posted() || op.Nature != item.Type {
				continue
			}
			if op.Category != item.Category || !month.Contains(op.Date) {
				continue
			}
			actual = actual.Add(op.AbsValue())
		}
		perf.Items = append(perf.Items, itemPerformance(item, actual))
	}

	switch perf.Balance.Sign() {
	case 1:
		perf.Status = StatusSuperavit
	case -1:
		perf.Status = StatusDeficit
	default:
		perf.Status = StatusEquilibrado
	}
	return perf
}

func itemPerformance(item core.BudgetItem, actual decimal.Decimal) ItemPerformance {
	p := ItemPerformance{
		Category: item.Category,
		Type:     item.Type,
		Planned:  item.Planned,
		Actual:   actual,
	}
	if item.Planned.IsZero() {
		p.PercentageUsed = decimal.Zero
	} else {
		p.PercentageUsed = actual.Div(item.Planned).Mul(hundred).Round(2)
	}
	if item.Type == core.NatureExpense {
		p.Status = expenseStatus(item.Planned, actual)
	} else {
		// More income than planned is a surplus.
		p.Status = expenseStatus(actual, item.Planned)
	}
	return p
}

func expenseStatus(planned, actual decimal.Decimal) PerformanceStatus {
	switch {
	case actual.LessThan(planned):
		return StatusSuperavit
	case actual.GreaterThan(planned):
		return StatusDeficit
	default:
		return StatusEquilibrado
	}
}
