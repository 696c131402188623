package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"financas/internal/core"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func postedOp(nature core.Nature, category string, value int64, day int) core.Operation {
	state := core.StatePago
	if nature == core.NatureIncome {
		state = core.StateRecebido
	}
	return core.Operation{
		UserID:        "u1",
		Nature:        nature,
		State:         state,
		SourceAccount: "Conta Corrente",
		Date:          core.NewDate(2025, 6, day),
		Value:         dec(value),
		Category:      category,
	}
}

func testItems() []core.BudgetItem {
	return []core.BudgetItem{
		{Category: "Aluguel", Type: core.NatureExpense, Planned: dec(1000)},
		{Category: "Salário", Type: core.NatureIncome, Planned: dec(4000)},
	}
}

func TestTotalMonthlyIncomeGating(t *testing.T) {
	month := core.NewMonth(2025, 6)
	items := testItems()
	ops := []core.Operation{
		postedOp(core.NatureIncome, "Freela", 200, 10), // unbudgeted income
	}

	got := TotalMonthlyIncome(items, ops, month, false)
	assert.True(t, got.Equal(dec(4000)), "flag off must exclude unbudgeted income, got %s", got)

	got = TotalMonthlyIncome(items, ops, month, true)
	assert.True(t, got.Equal(dec(4200)), "flag on must include unbudgeted income, got %s", got)
}

func TestTotalMonthlyIncomeIgnoresBudgetedCategoryOperations(t *testing.T) {
	// Operations in a budgeted income category never add on top of the
	// planned value, with or without the flag.
	month := core.NewMonth(2025, 6)
	items := testItems()
	ops := []core.Operation{
		postedOp(core.NatureIncome, "Salário", 4000, 5),
	}
	for _, flag := range []bool{false, true} {
		got := TotalMonthlyIncome(items, ops, month, flag)
		assert.True(t, got.Equal(dec(4000)), "flag=%v got %s", flag, got)
	}
}

func TestTotalMonthlyExpenseOverageAdditivity(t *testing.T) {
	month := core.NewMonth(2025, 6)
	items := []core.BudgetItem{
		{Category: "Aluguel", Type: core.NatureExpense, Planned: dec(100)},
	}

	t.Run("under plan still costs the plan", func(t *testing.T) {
		ops := []core.Operation{postedOp(core.NatureExpense, "Aluguel", 60, 3)}
		got := TotalMonthlyExpense(items, ops, month)
		assert.True(t, got.Equal(dec(100)), "got %s", got)
	})

	t.Run("overage adds the excess on top", func(t *testing.T) {
		ops := []core.Operation{postedOp(core.NatureExpense, "Aluguel", 130, 3)}
		got := TotalMonthlyExpense(items, ops, month)
		assert.True(t, got.Equal(dec(130)), "100 planned + 30 overage, got %s", got)
	})

	t.Run("pending operations do not count", func(t *testing.T) {
		op := postedOp(core.NatureExpense, "Aluguel", 130, 3)
		op.State = core.StatePagar
		got := TotalMonthlyExpense(items, []core.Operation{op}, month)
		assert.True(t, got.Equal(dec(100)), "got %s", got)
	})
}

func TestVariableExpenseUsed(t *testing.T) {
	month := core.NewMonth(2025, 6)
	items := testItems()
	ops := []core.Operation{
		postedOp(core.NatureExpense, "Aluguel", 1200, 2), // budgeted: overage, not variable
		postedOp(core.NatureExpense, "Lanche", 50, 8),    // unbudgeted
		postedOp(core.NatureExpense, "Cinema", 30, 9),    // unbudgeted
		postedOp(core.NatureIncome, "Freela", 200, 10),   // income never counts
	}
	got := VariableExpenseUsed(items, ops, month)
	assert.True(t, got.Equal(dec(80)), "got %s", got)
}

func TestGoalContributions(t *testing.T) {
	month := core.NewMonth(2025, 6)
	goals := []core.Goal{
		{Status: core.GoalActive, MonthlyContribution: dec(300), Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 12, 31)},
		{Status: core.GoalPaused, MonthlyContribution: dec(100), Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 12, 31)},
		{Status: core.GoalActive, MonthlyContribution: dec(150), Start: core.NewDate(2025, 8, 1), End: core.NewDate(2025, 12, 31)},
	}
	got := GoalContributions(goals, month)
	assert.True(t, got.Equal(dec(300)), "only the active overlapping goal counts, got %s", got)
}

func TestComputeSummaryBaseline(t *testing.T) {
	// Budget: Aluguel 1000 planned, Salário 4000 planned; one active goal of
	// 300; ceiling 300; no operations at all.
	in := ComputeInput{
		Month: core.NewMonth(2025, 6),
		Items: testItems(),
		Goals: []core.Goal{
			{Status: core.GoalActive, MonthlyContribution: dec(300), Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 12, 31)},
		},
		VariableCeiling: dec(300),
	}
	got := ComputeSummary(in)

	assert.True(t, got.TotalIncome.Equal(dec(4000)))
	assert.True(t, got.TotalExpense.Equal(dec(1000)))
	assert.True(t, got.VariableUsed.Equal(dec(0)))
	assert.True(t, got.GoalContributions.Equal(dec(300)))
	// 4000 - 1000 - 300 - 300
	assert.True(t, got.TotalAvailable.Equal(dec(2400)), "got %s", got.TotalAvailable)
}

func TestComputeSummaryOverageAndVariableSpend(t *testing.T) {
	in := ComputeInput{
		Month: core.NewMonth(2025, 6),
		Items: testItems(),
		Operations: []core.Operation{
			postedOp(core.NatureExpense, "Aluguel", 1200, 5), // overage 200
			postedOp(core.NatureExpense, "Lanche", 50, 12),   // variable, under ceiling
		},
		Goals: []core.Goal{
			{Status: core.GoalActive, MonthlyContribution: dec(300), Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 12, 31)},
		},
		VariableCeiling: dec(300),
	}
	got := ComputeSummary(in)

	assert.True(t, got.TotalExpense.Equal(dec(1200)), "1000 planned + 200 overage, got %s", got.TotalExpense)
	assert.True(t, got.VariableUsed.Equal(dec(50)))
	// Ceiling still reserved in full: 4000 - 1200 - 300 - 300.
	assert.True(t, got.TotalAvailable.Equal(dec(2200)), "got %s", got.TotalAvailable)
}

func TestComputeSummaryVariableSpendExceedsCeiling(t *testing.T) {
	in := ComputeInput{
		Month: core.NewMonth(2025, 6),
		Items: testItems(),
		Operations: []core.Operation{
			postedOp(core.NatureExpense, "Lanche", 450, 12),
		},
		VariableCeiling: dec(300),
	}
	got := ComputeSummary(in)
	// The larger real figure replaces the ceiling: 4000 - 1000 - 450.
	assert.True(t, got.TotalAvailable.Equal(dec(2550)), "got %s", got.TotalAvailable)
}

func TestComputeSummaryNoBudget(t *testing.T) {
	// Absence of a budget contributes zero income and expense, it is not an
	// error.
	in := ComputeInput{
		Month:           core.NewMonth(2025, 6),
		VariableCeiling: dec(300),
	}
	got := ComputeSummary(in)
	assert.True(t, got.TotalIncome.IsZero())
	assert.True(t, got.TotalExpense.IsZero())
	assert.True(t, got.TotalAvailable.Equal(dec(-300)), "got %s", got.TotalAvailable)
}

func TestComputeSummaryDeterministic(t *testing.T) {
	in := ComputeInput{
		Month: core.NewMonth(2025, 6),
		Items: testItems(),
		Operations: []core.Operation{
			postedOp(core.NatureExpense, "Aluguel", 1200, 5),
			postedOp(core.NatureExpense, "Lanche", 50, 12),
			postedOp(core.NatureIncome, "Freela", 200, 20),
		},
		IncludeVariableIncome: true,
		VariableCeiling:       dec(300),
	}
	first := ComputeSummary(in)
	second := ComputeSummary(in)
	assert.Equal(t, first, second)
}
