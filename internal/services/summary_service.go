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

// SummaryService derives and persists the one summary record per
// (user, month). Recompute is idempotent: it upserts, it never duplicates,
// and it preserves the stored ceiling and include-variable-income flag
// unless they are explicitly passed.
type SummaryService struct {
	ledger         LedgerReader
	budgets        BudgetReader
	goals          GoalReader
	summaries      SummaryStore
	defaultCeiling decimal.Decimal
	now            func() time.Time
}

// RecomputeOptions carries the explicitly-passed user settings. Nil fields
// preserve whatever the stored record holds.
type RecomputeOptions struct {
	VariableCeiling       *decimal.Decimal
	IncludeVariableIncome *bool
}

func NewSummaryService(ledger LedgerReader, budgets BudgetReader, goals GoalReader, summaries SummaryStore, defaultCeiling decimal.Decimal) *SummaryService {
	if defaultCeiling.IsZero() {
		defaultCeiling = engine.DefaultVariableCeiling
	}
	return &SummaryService{
		ledger:         ledger,
		budgets:        budgets,
		goals:          goals,
		summaries:      summaries,
		defaultCeiling: defaultCeiling,
		now:            time.Now,
	}
}

// Recompute reloads the month's working set, folds it through the engine
// and upserts the summary. Safe to call repeatedly; only timestamps differ
// between two back-to-back runs.
func (s *SummaryService) Recompute(ctx context.Context, userID string, month core.Month, opts *RecomputeOptions) (core.MonthlyFinanceSummary, error) {
	if userID == "" {
		return core.MonthlyFinanceSummary{}, core.ErrEmptyUser
	}

	existing, err := s.summaries.SummaryByMonth(ctx, userID, month.Start())
	if err != nil {
		return core.MonthlyFinanceSummary{}, fmt.Errorf("load summary: %w", err)
	}

	ceiling := s.defaultCeiling
	includeVariable := false
	if existing != nil {
		ceiling = existing.VariableCeiling
		includeVariable = existing.IncludeVariableIncome
	}
	if opts != nil && opts.VariableCeiling != nil {
		ceiling = *opts.VariableCeiling
	}
	if opts != nil && opts.IncludeVariableIncome != nil {
		includeVariable = *opts.IncludeVariableIncome
	}

	items, err := s.loadBudgetItems(ctx, userID)
	if err != nil {
		return core.MonthlyFinanceSummary{}, err
	}

	ops, err := s.ledger.ListOperations(ctx, OperationFilter{
		UserID: userID,
		From:   month.Start(),
		To:     month.End(),
	})
	if err != nil {
		return core.MonthlyFinanceSummary{}, fmt.Errorf("list month operations: %w", err)
	}

	goals, err := s.goals.ListGoals(ctx, userID)
	if err != nil {
		return core.MonthlyFinanceSummary{}, fmt.Errorf("list goals: %w", err)
	}

	totals := engine.ComputeSummary(engine.ComputeInput{
		Month:                 month,
		Items:                 items,
		Operations:            ops,
		Goals:                 goals,
		IncludeVariableIncome: includeVariable,
		VariableCeiling:       ceiling,
	})

	now := s.now()
	summary := core.MonthlyFinanceSummary{
		UserID:                userID,
		MonthStart:            month.Start(),
		MonthEnd:              month.End(),
		TotalIncome:           totals.TotalIncome,
		TotalExpense:          totals.TotalExpense,
		VariableCeiling:       ceiling,
		VariableUsed:          totals.VariableUsed,
		TotalAvailable:        totals.TotalAvailable,
		GoalContributions:     totals.GoalContributions,
		IncludeVariableIncome: includeVariable,
		UpdatedAt:             now,
	}

	if existing == nil {
		summary.ID = uuid.NewString()
		summary.CreatedAt = now
		if err := s.summaries.InsertSummary(ctx, summary); err != nil {
			return core.MonthlyFinanceSummary{}, fmt.Errorf("insert summary: %w", err)
		}
	} else {
		summary.ID = existing.ID
		summary.CreatedAt = existing.CreatedAt
		if err := s.summaries.UpdateSummary(ctx, summary); err != nil {
			return core.MonthlyFinanceSummary{}, fmt.Errorf("update summary: %w", err)
		}
	}

	slog.InfoContext(ctx, "Monthly summary recomputed",
		"user_id", userID,
		"month", month.String(),
		"total_available", summary.TotalAvailable.String(),
		"variable_used", summary.VariableUsed.String())

	return summary, nil
}

// UpdateCeiling is the only path that changes the persisted variable-expense
// ceiling. It rewrites the ceiling and re-derives the balance against the
// current record.
func (s *SummaryService) UpdateCeiling(ctx context.Context, userID string, month core.Month, value decimal.Decimal) (core.MonthlyFinanceSummary, error) {
	if value.IsNegative() {
		return core.MonthlyFinanceSummary{}, fmt.Errorf("%w: ceiling %s", core.ErrInvalidAmount, value)
	}
	return s.Recompute(ctx, userID, month, &RecomputeOptions{VariableCeiling: &value})
}

// UpdateIncludeVariableIncome toggles the income gate and triggers a full
// recompute, since the flag changes the income figure.
func (s *SummaryService) UpdateIncludeVariableIncome(ctx context.Context, userID string, month core.Month, include bool) (core.MonthlyFinanceSummary, error) {
	return s.Recompute(ctx, userID, month, &RecomputeOptions{IncludeVariableIncome: &include})
}

// Get returns the stored summary, recomputing it lazily when the month has
// none yet.
func (s *SummaryService) Get(ctx context.Context, userID string, month core.Month) (core.MonthlyFinanceSummary, error) {
	existing, err := s.summaries.SummaryByMonth(ctx, userID, month.Start())
	if err != nil {
		return core.MonthlyFinanceSummary{}, fmt.Errorf("load summary: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}
	return s.Recompute(ctx, userID, month, nil)
}

func (s *SummaryService) loadBudgetItems(ctx context.Context, userID string) ([]core.BudgetItem, error) {
	budget, err := s.budgets.ActiveBudget(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load active budget: %w", err)
	}
	if budget == nil {
		// No budget yet: zero contributions, not an error.
		return nil, nil
	}
	items, err := s.budgets.BudgetItems(ctx, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("load budget items: %w", err)
	}
	return items, nil
}
