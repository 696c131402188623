// Package services orchestrates the reconciliation engine over the store
// ports: it loads working sets, runs the pure calculations and persists the
// results. Every mutation that changes summary inputs publishes a recompute
// message; the engine itself stays pull-based.
package services

import (
	"context"

	"financas/internal/core"
)

// OperationFilter narrows a ledger listing. Zero values mean "no filter" for
// their field; From/To bound the date inclusively when both are set.
type OperationFilter struct {
	UserID   string
	Nature   *core.Nature
	State    *core.State
	Category string
	GoalID   string
	From     core.Date
	To       core.Date
}

type (
	// LedgerReader lists operations for aggregation.
	LedgerReader interface {
		ListOperations(ctx context.Context, f OperationFilter) ([]core.Operation, error)
	}

	// LedgerWriter mutates the operation ledger. Deletes are hard; there is
	// no soft-delete.
	LedgerWriter interface {
		GetOperation(ctx context.Context, id string) (core.Operation, error)
		InsertOperation(ctx context.Context, op core.Operation) error
		UpdateOperation(ctx context.Context, op core.Operation) error
		DeleteOperation(ctx context.Context, id string) error
	}

	// LedgerStore is the full ledger port.
	LedgerStore interface {
		LedgerReader
		LedgerWriter
	}

	// BudgetReader exposes the single active budget per user. ActiveBudget
	// returns (nil, nil) when the user has none.
	BudgetReader interface {
		ActiveBudget(ctx context.Context, userID string) (*core.Budget, error)
		BudgetItems(ctx context.Context, budgetID string) ([]core.BudgetItem, error)
	}

	BudgetWriter interface {
		InsertBudget(ctx context.Context, b core.Budget, items []core.BudgetItem) error
		UpdateBudget(ctx context.Context, b core.Budget, items []core.BudgetItem) error
		DeleteBudget(ctx context.Context, id string) error
	}

	GoalReader interface {
		GetGoal(ctx context.Context, id string) (core.Goal, error)
		ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
	}

	GoalWriter interface {
		InsertGoal(ctx context.Context, g core.Goal) error
		UpdateGoal(ctx context.Context, g core.Goal) error
		DeleteGoal(ctx context.Context, id string) error
	}

	// SummaryStore keys summaries by (user, start of month). SummaryByMonth
	// returns (nil, nil) when no record exists yet.
	SummaryStore interface {
		SummaryByMonth(ctx context.Context, userID string, monthStart core.Date) (*core.MonthlyFinanceSummary, error)
		InsertSummary(ctx context.Context, s core.MonthlyFinanceSummary) error
		UpdateSummary(ctx context.Context, s core.MonthlyFinanceSummary) error
	}

	// RecomputePublisher hands a recompute request to the out-of-band worker.
	RecomputePublisher interface {
		PublishRecompute(ctx context.Context, userID string, month core.Month) error
	}
)
