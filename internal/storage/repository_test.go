package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/core"
	"financas/internal/services"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "financas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testOperation(user string, day int, value int64) core.Operation {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	return core.Operation{
		ID:            uuid.NewString(),
		UserID:        user,
		Nature:        core.NatureExpense,
		State:         core.StatePagar,
		SourceAccount: "Conta Corrente",
		Date:          core.NewDate(2025, 6, day),
		Value:         decimal.NewFromInt(value),
		Category:      "Mercado",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestOperationRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	op := testOperation("u1", 15, 120)
	op.PaymentMethod = "pix"
	op.Details = "feira da semana"
	op.Receipt = []byte("comprovante")
	require.NoError(t, repo.InsertOperation(ctx, op))

	got, err := repo.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, op.UserID, got.UserID)
	assert.Equal(t, op.Nature, got.Nature)
	assert.Equal(t, op.State, got.State)
	assert.Equal(t, "pix", got.PaymentMethod)
	assert.Equal(t, "2025-06-15", got.Date.String())
	assert.True(t, got.Value.Equal(op.Value))
	assert.Equal(t, []byte("comprovante"), got.Receipt)
	assert.True(t, got.CreatedAt.Equal(op.CreatedAt))

	got.State = core.StatePago
	require.NoError(t, repo.UpdateOperation(ctx, got))
	got, err = repo.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatePago, got.State)

	require.NoError(t, repo.DeleteOperation(ctx, op.ID))
	_, err = repo.GetOperation(ctx, op.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestListOperationsFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	june := testOperation("u1", 10, 100)
	july := testOperation("u1", 10, 200)
	july.Date = core.NewDate(2025, 7, 10)
	other := testOperation("u2", 12, 300)
	income := testOperation("u1", 20, 400)
	income.Nature = core.NatureIncome
	income.State = core.StateRecebido
	income.Category = "Salário"

	for _, op := range []core.Operation{june, july, other, income} {
		require.NoError(t, repo.InsertOperation(ctx, op))
	}

	month := core.NewMonth(2025, 6)
	ops, err := repo.ListOperations(ctx, services.OperationFilter{
		UserID: "u1",
		From:   month.Start(),
		To:     month.End(),
	})
	require.NoError(t, err)
	require.Len(t, ops, 2)

	nature := core.NatureIncome
	ops, err = repo.ListOperations(ctx, services.OperationFilter{UserID: "u1", Nature: &nature})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "Salário", ops[0].Category)
}

func TestBudgetActiveSwap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	makeBudget := func(name string) (core.Budget, []core.BudgetItem) {
		b := core.Budget{
			ID:           uuid.NewString(),
			UserID:       "u1",
			Name:         name,
			Start:        core.NewDate(2025, 1, 1),
			End:          core.NewDate(2025, 12, 31),
			Type:         core.BudgetManual,
			TotalPlanned: decimal.NewFromInt(1000),
			TotalActual:  decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		items := []core.BudgetItem{
			{ID: uuid.NewString(), BudgetID: b.ID, Category: "Aluguel", Type: core.NatureExpense, Planned: decimal.NewFromInt(1000)},
		}
		return b, items
	}

	none, err := repo.ActiveBudget(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, none)

	first, items := makeBudget("Primeiro")
	require.NoError(t, repo.InsertBudget(ctx, first, items))

	second, items2 := makeBudget("Segundo")
	require.NoError(t, repo.InsertBudget(ctx, second, items2))

	active, err := repo.ActiveBudget(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, "Segundo", active.Name)

	stored, err := repo.BudgetItems(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Nil(t, stored[0].Actual)
	assert.True(t, stored[0].Planned.Equal(decimal.NewFromInt(1000)))
}

func TestBudgetUpdateReplacesItems(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	base := core.NewMonth(2025, 5)
	actual := decimal.NewFromInt(950)

	budget := core.Budget{
		ID:        uuid.NewString(),
		UserID:    "u1",
		Name:      "Automático",
		Start:     core.NewDate(2025, 6, 1),
		End:       core.NewDate(2025, 6, 30),
		Type:      core.BudgetAutomatic,
		BaseMonth: &base,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := []core.BudgetItem{
		{ID: uuid.NewString(), BudgetID: budget.ID, Category: "Aluguel", Type: core.NatureExpense, Planned: decimal.NewFromInt(1000), Actual: &actual},
	}
	require.NoError(t, repo.InsertBudget(ctx, budget, items))

	replacement := []core.BudgetItem{
		{ID: uuid.NewString(), BudgetID: budget.ID, Category: "Mercado", Type: core.NatureExpense, Planned: decimal.NewFromInt(600), Position: 0},
		{ID: uuid.NewString(), BudgetID: budget.ID, Category: "Salário", Type: core.NatureIncome, Planned: decimal.NewFromInt(4000), Position: 1},
	}
	require.NoError(t, repo.UpdateBudget(ctx, budget, replacement))

	stored, err := repo.BudgetItems(ctx, budget.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Mercado", stored[0].Category)
	assert.Equal(t, "Salário", stored[1].Category)

	active, err := repo.ActiveBudget(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, active)
	require.NotNil(t, active.BaseMonth)
	assert.Equal(t, "2025-05", active.BaseMonth.String())

	require.NoError(t, repo.DeleteBudget(ctx, budget.ID))
	stored, err = repo.BudgetItems(ctx, budget.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGoalRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	goal := core.Goal{
		ID:                  uuid.NewString(),
		UserID:              "u1",
		Description:         "Notebook novo",
		Type:                core.GoalCompra,
		TargetValue:         decimal.NewFromInt(3600),
		Start:               core.NewDate(2025, 6, 10),
		End:                 core.NewDate(2026, 5, 31),
		MonthlyIncome:       decimal.NewFromInt(4000),
		FixedExpenses:       decimal.NewFromInt(1000),
		AvailablePerMonth:   decimal.NewFromInt(2700),
		Priority:            2,
		MonthlyContribution: decimal.NewFromInt(300),
		Parcels:             12,
		Status:              core.GoalActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	require.NoError(t, repo.InsertGoal(ctx, goal))

	got, err := repo.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.Description, got.Description)
	assert.Equal(t, core.GoalCompra, got.Type)
	assert.True(t, got.MonthlyContribution.Equal(goal.MonthlyContribution))
	assert.Equal(t, "2026-05-31", got.End.String())

	got.Status = core.GoalPaused
	require.NoError(t, repo.UpdateGoal(ctx, got))

	goals, err := repo.ListGoals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, core.GoalPaused, goals[0].Status)

	require.NoError(t, repo.DeleteGoal(ctx, goal.ID))
	_, err = repo.GetGoal(ctx, goal.ID)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestSummaryUniquePerMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	month := core.NewMonth(2025, 6)

	missing, err := repo.SummaryByMonth(ctx, "u1", month.Start())
	require.NoError(t, err)
	assert.Nil(t, missing)

	summary := core.MonthlyFinanceSummary{
		ID:              uuid.NewString(),
		UserID:          "u1",
		MonthStart:      month.Start(),
		MonthEnd:        month.End(),
		TotalIncome:     decimal.NewFromInt(4000),
		TotalExpense:    decimal.NewFromInt(1000),
		VariableCeiling: decimal.NewFromInt(300),
		VariableUsed:    decimal.NewFromInt(120),
		TotalAvailable:  decimal.NewFromInt(2700),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, repo.InsertSummary(ctx, summary))

	duplicate := summary
	duplicate.ID = uuid.NewString()
	require.Error(t, repo.InsertSummary(ctx, duplicate), "one summary per user and month")

	summary.TotalAvailable = decimal.NewFromInt(2500)
	summary.IncludeVariableIncome = true
	require.NoError(t, repo.UpdateSummary(ctx, summary))

	got, err := repo.SummaryByMonth(ctx, "u1", month.Start())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.TotalAvailable.Equal(decimal.NewFromInt(2500)))
	assert.True(t, got.IncludeVariableIncome)
	assert.Equal(t, "2025-06-30", got.MonthEnd.String())
}
