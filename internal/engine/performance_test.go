package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/core"
)

func testBudget() core.Budget {
	return core.Budget{
		ID:     "b1",
		UserID: "u1",
		Name:   "Orçamento 2025",
		Start:  core.NewDate(2025, 1, 1),
		End:    core.NewDate(2025, 12, 31),
		Type:   core.BudgetManual,
	}
}

func TestCalculatePerItemStatus(t *testing.T) {
	items := []core.BudgetItem{
		{Category: "Aluguel", Type: core.NatureExpense, Planned: dec(1000)},
		{Category: "Mercado", Type: core.NatureExpense, Planned: dec(500)},
		{Category: "Salário", Type: core.NatureIncome, Planned: dec(4000)},
	}
	ops := []core.Operation{
		postedOp(core.NatureExpense, "Aluguel", 900, 5),  // under plan: superávit
		postedOp(core.NatureExpense, "Mercado", 650, 8),  // over plan: déficit
		postedOp(core.NatureIncome, "Salário", 4500, 1),  // more income: superávit
		postedOp(core.NatureExpense, "Salário", 9999, 2), // nature mismatch, ignored
	}

	perf := Calculate(testBudget(), items, ops)
	require.Len(t, perf.Items, 3)

	assert.Equal(t, StatusSuperavit, perf.Items[0].Status)
	assert.True(t, perf.Items[0].PercentageUsed.Equal(dec(90)))
	assert.Equal(t, StatusDeficit, perf.Items[1].Status)
	assert.Equal(t, StatusSuperavit, perf.Items[2].Status, "income above plan is a surplus")
}

func TestCalculateAggregateIgnoresIncome(t *testing.T) {
	items := []core.BudgetItem{
		{Category: "Aluguel", Type: core.NatureExpense, Planned: dec(1000)},
		{Category: "Salário", Type: core.NatureIncome, Planned: dec(4000)},
	}
	// Income wildly under plan, expense under plan: aggregate must still be
	// a surplus because only expense totals feed it.
	ops := []core.Operation{
		postedOp(core.NatureExpense, "Aluguel", 800, 5),
		postedOp(core.NatureIncome, "Salário", 100, 1),
	}
	perf := Calculate(testBudget(), items, ops)
	assert.Equal(t, StatusSuperavit, perf.Status)
	assert.True(t, perf.PlannedExpense.Equal(dec(1000)))
	assert.True(t, perf.ActualExpense.Equal(dec(800)))
}

func TestCalculateZeroPlannedGuard(t *testing.T) {
	items := []core.BudgetItem{
		{Category: "Extras", Type: core.NatureExpense, Planned: dec(0)},
	}
	ops := []core.Operation{postedOp(core.NatureExpense, "Extras", 120, 3)}

	perf := Calculate(testBudget(), items, ops)
	require.Len(t, perf.Items, 1)
	assert.True(t, perf.Items[0].PercentageUsed.IsZero(), "planned 0 must yield 0%%, not a division error")
	assert.Equal(t, StatusDeficit, perf.Items[0].Status)
}

func TestCalculateRestrictsToPeriodAndPostedStates(t *testing.T) {
	budget := testBudget()
	budget.Start = core.NewDate(2025, 6, 1)
	budget.End = core.NewDate(2025, 6, 30)
	items := []core.BudgetItem{
		{Category: "Aluguel", Type: core.NatureExpense, Planned: dec(1000)},
	}

	outside := postedOp(core.NatureExpense, "Aluguel", 500, 5)
	outside.Date = core.NewDate(2025, 5, 5)
	pending := postedOp(core.NatureExpense, "Aluguel", 500, 10)
	pending.State = core.StatePagar

	perf := Calculate(budget, items, []core.Operation{outside, pending, postedOp(core.NatureExpense, "Aluguel", 300, 12)})
	assert.True(t, perf.Items[0].Actual.Equal(dec(300)), "got %s", perf.Items[0].Actual)
}

func TestCalculateMonthly(t *testing.T) {
	month := core.NewMonth(2025, 6)
	items := []core.BudgetItem{
		{Category: "Aluguel", Type: core.NatureExpense, Planned: dec(1000)},
	}
	ops := []core.Operation{postedOp(core.NatureExpense, "Aluguel", 900, 5)}

	perf := CalculateMonthly(month, items, ops, dec(4000), dec(1000))
	assert.True(t, perf.Balance.Equal(dec(3000)))
	assert.Equal(t, StatusSuperavit, perf.Status)
	require.Len(t, perf.Items, 1)
	assert.True(t, perf.Items[0].Actual.Equal(dec(900)))

	perf = CalculateMonthly(month, items, ops, dec(1000), dec(1500))
	assert.Equal(t, StatusDeficit, perf.Status)

	perf = CalculateMonthly(month, items, ops, dec(1000), dec(1000))
	assert.Equal(t, StatusEquilibrado, perf.Status)
}
