package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/core"
	"financas/internal/engine"
)

func newBudgetService(store *fakeStore) *BudgetService {
	svc := NewBudgetService(store, store, store, store)
	svc.now = func() time.Time { return time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC) }
	return svc
}

func manualDraft() BudgetDraft {
	return BudgetDraft{
		UserID: testUser,
		Name:   "Orçamento 2025",
		Start:  core.NewDate(2025, 1, 1),
		End:    core.NewDate(2025, 12, 31),
		Type:   core.BudgetManual,
		Items: []core.BudgetItem{
			{Category: "Aluguel", Type: core.NatureExpense, Planned: dec(1000)},
			{Category: "Salário", Type: core.NatureIncome, Planned: dec(4000)},
		},
	}
}

func TestBudgetCreate(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)

	budget, items, err := svc.Create(context.Background(), manualDraft())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, budget.TotalPlanned.Equal(dec(5000)))
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, 1, items[1].Position)
	assert.Equal(t, budget.ID, items[0].BudgetID)
	assert.Equal(t, 1, store.publishedCount())
}

func TestBudgetCreateDedupesItems(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)

	draft := manualDraft()
	draft.Items = append(draft.Items,
		core.BudgetItem{Category: "Aluguel", Type: core.NatureExpense, Planned: dec(9999)},
		// Same category as an expense item but income typed: a distinct entry.
		core.BudgetItem{Category: "Aluguel", Type: core.NatureIncome, Planned: dec(50)},
	)

	budget, items, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	require.Len(t, items, 3, "duplicate (category, type) collapses, first wins")
	assert.True(t, items[0].Planned.Equal(dec(1000)))
	assert.True(t, budget.TotalPlanned.Equal(dec(5050)))
}

func TestBudgetCreateReplacesActive(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)
	ctx := context.Background()

	first, _, err := svc.Create(ctx, manualDraft())
	require.NoError(t, err)

	draft := manualDraft()
	draft.Name = "Orçamento revisado"
	second, _, err := svc.Create(ctx, draft)
	require.NoError(t, err)

	active, err := store.ActiveBudget(ctx, testUser)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
	assert.NotEqual(t, first.ID, active.ID)
}

func TestBudgetCreateAutomaticSeedsActuals(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)

	// Base month history: two rent payments and one salary.
	seedOperation(t, store, core.NatureExpense, "Aluguel", 950, 5)
	seedOperation(t, store, core.NatureExpense, "Aluguel", 50, 20)
	seedOperation(t, store, core.NatureIncome, "Salário", 4000, 1)

	draft := manualDraft()
	draft.Type = core.BudgetAutomatic
	draft.BaseMonth = &testMonth

	_, items, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Actual)
	assert.True(t, items[0].Actual.Equal(dec(1000)), "got %s", items[0].Actual)
	require.NotNil(t, items[1].Actual)
	assert.True(t, items[1].Actual.Equal(dec(4000)))
}

func TestBudgetCreateInvalidItem(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)

	draft := manualDraft()
	draft.Items[0].Planned = dec(-10)

	_, _, err := svc.Create(context.Background(), draft)
	require.Error(t, err)
	assert.Equal(t, 0, store.publishedCount())
}

func TestBudgetPerformance(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, manualDraft())
	require.NoError(t, err)

	seedOperation(t, store, core.NatureExpense, "Aluguel", 1100, 5)
	seedOperation(t, store, core.NatureIncome, "Salário", 4000, 1)

	perf, err := svc.Performance(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, perf.Items, 2)

	byCategory := map[string]engine.ItemPerformance{}
	for _, it := range perf.Items {
		byCategory[it.Category] = it
	}
	rent := byCategory["Aluguel"]
	assert.True(t, rent.Actual.Equal(dec(1100)))
	assert.Equal(t, engine.StatusDeficit, rent.Status)

	salary := byCategory["Salário"]
	assert.True(t, salary.Actual.Equal(dec(4000)))
	assert.Equal(t, engine.StatusEquilibrado, salary.Status)
}

func TestBudgetPerformanceNoActiveBudget(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)

	_, err := svc.Performance(context.Background(), testUser)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestBudgetMonthlyPerformance(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, manualDraft())
	require.NoError(t, err)

	seedOperation(t, store, core.NatureExpense, "Aluguel", 1000, 5)
	// Unbudgeted income stays out of the total while the flag is unset.
	seedOperation(t, store, core.NatureIncome, "Freelance", 700, 12)

	perf, err := svc.MonthlyPerformance(ctx, testUser, testMonth)
	require.NoError(t, err)
	assert.True(t, perf.IncomeActual.Equal(dec(4000)), "got %s", perf.IncomeActual)
	assert.True(t, perf.ExpenseActual.Equal(dec(1000)))
	assert.True(t, perf.Balance.Equal(dec(3000)))

	// Opting in through the summary flag folds the variable income in.
	summarySvc := newSummaryService(store)
	include := true
	_, err = summarySvc.Recompute(ctx, testUser, testMonth, &RecomputeOptions{IncludeVariableIncome: &include})
	require.NoError(t, err)

	perf, err = svc.MonthlyPerformance(ctx, testUser, testMonth)
	require.NoError(t, err)
	assert.True(t, perf.IncomeActual.Equal(dec(4700)), "got %s", perf.IncomeActual)
}

func TestBudgetMonthlyPerformanceWithoutBudget(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)

	seedOperation(t, store, core.NatureExpense, "Mercado", 200, 5)

	perf, err := svc.MonthlyPerformance(context.Background(), testUser, testMonth)
	require.NoError(t, err)
	assert.True(t, perf.IncomeActual.IsZero())
	assert.True(t, perf.ExpenseActual.IsZero(), "unbudgeted spend is variable, not budget expense")
}

func TestBudgetDelete(t *testing.T) {
	store := newFakeStore()
	svc := newBudgetService(store)
	ctx := context.Background()

	budget, _, err := svc.Create(ctx, manualDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testUser, budget.ID))
	active, err := store.ActiveBudget(ctx, testUser)
	require.NoError(t, err)
	assert.Nil(t, active)
}
