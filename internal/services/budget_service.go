package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"financas/internal/core"
	"financas/internal/engine"
)

// BudgetStore is the full budget port.
type BudgetStore interface {
	BudgetReader
	BudgetWriter
}

// BudgetDraft is the user intent to create or replace a budget.
type BudgetDraft struct {
	UserID    string
	Name      string
	Start     core.Date
	End       core.Date
	Type      core.BudgetType
	BaseMonth *core.Month
	Items     []core.BudgetItem
}

// BudgetService manages budget definitions and produces the performance
// reports. Item lists are deduplicated on (category, type), keeping the
// first; automatic budgets seed item actuals from the base month's posted
// operations.
type BudgetService struct {
	budgets   BudgetStore
	ledger    LedgerReader
	summaries SummaryStore
	publisher RecomputePublisher
	now       func() time.Time
}

func NewBudgetService(budgets BudgetStore, ledger LedgerReader, summaries SummaryStore, publisher RecomputePublisher) *BudgetService {
	return &BudgetService{
		budgets:   budgets,
		ledger:    ledger,
		summaries: summaries,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create builds and stores a budget from the draft. The store deactivates
// any previously active budget for the user.
func (s *BudgetService) Create(ctx context.Context, d BudgetDraft) (core.Budget, []core.BudgetItem, error) {
	now := s.now()
	budget := core.Budget{
		ID:        uuid.NewString(),
		UserID:    d.UserID,
		Name:      d.Name,
		Start:     d.Start,
		End:       d.End,
		Type:      d.Type,
		BaseMonth: d.BaseMonth,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := budget.Validate(); err != nil {
		return core.Budget{}, nil, err
	}

	items, err := s.prepareItems(ctx, budget, d.Items)
	if err != nil {
		return core.Budget{}, nil, err
	}
	budget.TotalPlanned, budget.TotalActual = itemTotals(items)

	if err := s.budgets.InsertBudget(ctx, budget, items); err != nil {
		return core.Budget{}, nil, fmt.Errorf("insert budget: %w", err)
	}
	s.publishRecompute(ctx, d.UserID)
	return budget, items, nil
}

// Update replaces an existing budget's definition and item list.
func (s *BudgetService) Update(ctx context.Context, budget core.Budget, items []core.BudgetItem) error {
	if err := budget.Validate(); err != nil {
		return err
	}
	prepared, err := s.prepareItems(ctx, budget, items)
	if err != nil {
		return err
	}
	budget.TotalPlanned, budget.TotalActual = itemTotals(prepared)
	budget.UpdatedAt = s.now()

	if err := s.budgets.UpdateBudget(ctx, budget, prepared); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	s.publishRecompute(ctx, budget.UserID)
	return nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, budgetID string) error {
	if err := s.budgets.DeleteBudget(ctx, budgetID); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	s.publishRecompute(ctx, userID)
	return nil
}

// Performance reports planned-vs-actual for the active budget's whole
// period.
func (s *BudgetService) Performance(ctx context.Context, userID string) (engine.BudgetPerformance, error) {
	budget, err := s.budgets.ActiveBudget(ctx, userID)
	if err != nil {
		return engine.BudgetPerformance{}, fmt.Errorf("load active budget: %w", err)
	}
	if budget == nil {
		return engine.BudgetPerformance{}, fmt.Errorf("%w: no active budget for user", core.ErrNotFound)
	}
	items, err := s.budgets.BudgetItems(ctx, budget.ID)
	if err != nil {
		return engine.BudgetPerformance{}, fmt.Errorf("load budget items: %w", err)
	}
	ops, err := s.ledger.ListOperations(ctx, OperationFilter{
		UserID: userID,
		From:   budget.Start,
		To:     budget.End,
	})
	if err != nil {
		return engine.BudgetPerformance{}, fmt.Errorf("list operations: %w", err)
	}
	return engine.Calculate(*budget, items, ops), nil
}

// MonthlyPerformance reports the month-scoped variant. Its income/expense
// figures are the aggregator's real totals, honoring the stored
// include-variable-income flag.
func (s *BudgetService) MonthlyPerformance(ctx context.Context, userID string, month core.Month) (engine.MonthlyPerformance, error) {
	budget, err := s.budgets.ActiveBudget(ctx, userID)
	if err != nil {
		return engine.MonthlyPerformance{}, fmt.Errorf("load active budget: %w", err)
	}
	var items []core.BudgetItem
	if budget != nil {
		if items, err = s.budgets.BudgetItems(ctx, budget.ID); err != nil {
			return engine.MonthlyPerformance{}, fmt.Errorf("load budget items: %w", err)
		}
	}

	ops, err := s.ledger.ListOperations(ctx, OperationFilter{
		UserID: userID,
		From:   month.Start(),
		To:     month.End(),
	})
	if err != nil {
		return engine.MonthlyPerformance{}, fmt.Errorf("list operations: %w", err)
	}

	includeVariable := false
	if summary, err := s.summaries.SummaryByMonth(ctx, userID, month.Start()); err != nil {
		return engine.MonthlyPerformance{}, fmt.Errorf("load summary: %w", err)
	} else if summary != nil {
		includeVariable = summary.IncludeVariableIncome
	}

	income := engine.TotalMonthlyIncome(items, ops, month, includeVariable)
	expense := engine.TotalMonthlyExpense(items, ops, month)
	return engine.CalculateMonthly(month, items, ops, income, expense), nil
}

// prepareItems dedupes, validates and stamps the draft items. For automatic
// budgets it additionally pre-computes each item's actual from the base
// month's posted operations.
func (s *BudgetService) prepareItems(ctx context.Context, budget core.Budget, items []core.BudgetItem) ([]core.BudgetItem, error) {
	deduped := core.DedupeItems(items)
	for i := range deduped {
		if err := deduped[i].Validate(); err != nil {
			return nil, fmt.Errorf("item %q: %w", deduped[i].Category, err)
		}
		deduped[i].ID = uuid.NewString()
		deduped[i].BudgetID = budget.ID
		deduped[i].Position = i
	}

	if budget.Type == core.BudgetAutomatic && budget.BaseMonth != nil {
		ops, err := s.ledger.ListOperations(ctx, OperationFilter{
			UserID: budget.UserID,
			From:   budget.BaseMonth.Start(),
			To:     budget.BaseMonth.End(),
		})
		if err != nil {
			return nil, fmt.Errorf("list base month operations: %w", err)
		}
		for i := range deduped {
			actual := decimal.Zero
			for _, op := range ops {
				if op.State.Posted() && op.Nature == deduped[i].Type && op.Category == deduped[i].Category {
					actual = actual.Add(op.AbsValue())
				}
			}
			deduped[i].Actual = &actual
		}
	}
	return deduped, nil
}

func itemTotals(items []core.BudgetItem) (planned, actual decimal.Decimal) {
	planned, actual = decimal.Zero, decimal.Zero
	for _, it := range items {
		planned = planned.Add(it.Planned)
		if it.Actual != nil {
			actual = actual.Add(*it.Actual)
		}
	}
	return planned, actual
}

func (s *BudgetService) publishRecompute(ctx context.Context, userID string) {
	if s.publisher == nil {
		return
	}
	month := core.MonthOf(s.now())
	if err := s.publisher.PublishRecompute(ctx, userID, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish recompute message",
			"user_id", userID, "month", month.String(), "error", err)
	}
}
