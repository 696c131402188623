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

// GoalStore is the full goal port.
type GoalStore interface {
	GoalReader
	GoalWriter
}

// GoalDraft is the user intent to create a goal.
type GoalDraft struct {
	UserID      string
	Description string
	Type        core.GoalType
	TargetValue decimal.Decimal
	Start       core.Date
	Importance  string
	Priority    int
	Strategy    string
	Parcels     int
}

// GoalService creates and maintains goals. A goal may only be created or
// edited in a month that already has a summary, and its parcel plan must be
// feasible against the summary's available figure at that moment; the
// snapshot is never re-validated as the summary moves later.
type GoalService struct {
	goals     GoalStore
	summaries SummaryStore
	ledger    LedgerReader
	publisher RecomputePublisher
	now       func() time.Time
}

func NewGoalService(goals GoalStore, summaries SummaryStore, ledger LedgerReader, publisher RecomputePublisher) *GoalService {
	return &GoalService{
		goals:     goals,
		summaries: summaries,
		ledger:    ledger,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create validates the draft against the month's summary and stores the
// goal with its contribution plan and summary snapshot.
func (s *GoalService) Create(ctx context.Context, d GoalDraft) (core.Goal, error) {
	summary, err := s.requireSummary(ctx, d.UserID, d.Start)
	if err != nil {
		return core.Goal{}, err
	}

	check := engine.ValidateParcels(d.TargetValue, d.Parcels, summary.TotalAvailable)
	if !check.Valid {
		return core.Goal{}, fmt.Errorf("%w: %s", core.ErrInvalidParcels, check.Message)
	}

	now := s.now()
	goal := core.Goal{
		ID:                  uuid.NewString(),
		UserID:              d.UserID,
		Description:         d.Description,
		Type:                d.Type,
		TargetValue:         d.TargetValue,
		Start:               d.Start,
		End:                 engine.ComputeEndDate(d.Start, d.Parcels),
		MonthlyIncome:       summary.TotalIncome,
		FixedExpenses:       summary.TotalExpense,
		AvailablePerMonth:   summary.TotalAvailable,
		Importance:          d.Importance,
		Priority:            d.Priority,
		Strategy:            d.Strategy,
		MonthlyContribution: check.MonthlyContribution,
		Parcels:             d.Parcels,
		Status:              core.GoalActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := goal.Validate(); err != nil {
		return core.Goal{}, err
	}
	if err := s.goals.InsertGoal(ctx, goal); err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	s.publishRecompute(ctx, goal.UserID, goal.Start.ToMonth())
	return goal, nil
}

// Update edits a goal, re-checking feasibility and re-deriving the end date
// and contribution when the plan changed.
func (s *GoalService) Update(ctx context.Context, goal core.Goal) (core.Goal, error) {
	previous, err := s.goals.GetGoal(ctx, goal.ID)
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}

	summary, err := s.requireSummary(ctx, goal.UserID, goal.Start)
	if err != nil {
		return core.Goal{}, err
	}
	check := engine.ValidateParcels(goal.TargetValue, goal.Parcels, summary.TotalAvailable)
	if !check.Valid {
		return core.Goal{}, fmt.Errorf("%w: %s", core.ErrInvalidParcels, check.Message)
	}

	goal.MonthlyContribution = check.MonthlyContribution
	goal.End = engine.ComputeEndDate(goal.Start, goal.Parcels)
	goal.CreatedAt = previous.CreatedAt
	goal.UpdatedAt = s.now()
	if err := goal.Validate(); err != nil {
		return core.Goal{}, err
	}
	if err := s.goals.UpdateGoal(ctx, goal); err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	s.publishRecompute(ctx, goal.UserID, goal.Start.ToMonth())
	return goal, nil
}

// UpdateStatus moves a goal between active/paused/completed/cancelled.
func (s *GoalService) UpdateStatus(ctx context.Context, id string, status core.GoalStatus) (core.Goal, error) {
	if !status.Valid() {
		return core.Goal{}, fmt.Errorf("%w: %q", core.ErrInvalidGoalStatus, status)
	}
	goal, err := s.goals.GetGoal(ctx, id)
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	goal.Status = status
	goal.UpdatedAt = s.now()
	if err := s.goals.UpdateGoal(ctx, goal); err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	s.publishRecompute(ctx, goal.UserID, goal.Start.ToMonth())
	return goal, nil
}

func (s *GoalService) Get(ctx context.Context, id string) (core.Goal, error) {
	return s.goals.GetGoal(ctx, id)
}

func (s *GoalService) List(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.goals.ListGoals(ctx, userID)
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	goal, err := s.goals.GetGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("get goal: %w", err)
	}
	if err := s.goals.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	s.publishRecompute(ctx, goal.UserID, goal.Start.ToMonth())
	return nil
}

// Suggest proposes a funding plan from the month's current available
// figure.
func (s *GoalService) Suggest(ctx context.Context, userID string, month core.Month, target decimal.Decimal) (engine.Strategy, error) {
	summary, err := s.summaries.SummaryByMonth(ctx, userID, month.Start())
	if err != nil {
		return engine.Strategy{}, fmt.Errorf("load summary: %w", err)
	}
	available := decimal.Zero
	if summary != nil {
		available = summary.TotalAvailable
	}
	return engine.SuggestStrategy(target, available), nil
}

/// Progress derives how much has been posted toward the goal: the sum of
// posted operations referencing it whose nature matches the goal type.
func (s *GoalService) Progress(ctx context.Context, id string) (decimal.Decimal, error) {
	goal, err := s.goals.GetGoal(ctx, id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get goal: %w", err)
	}
	nature := goal.Type.Nature()
	ops, err := s.ledger.ListOperations(ctx, OperationFilter{
		UserID: goal.UserID,
		Nature: &nature,
		GoalID: goal.ID,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("list goal operations: %w", err)
	}
	total := decimal.Zero
	for _, op := range ops {
		if op.State.Posted() {
			total = total.Add(op.AbsValue())
		}
	}
	return total, nil
}

// requireSummary enforces the "no summary, no goal" rule.
func (s *GoalService) requireSummary(ctx context.Context, userID string, start core.Date) (*core.MonthlyFinanceSummary, error) {
	month := start.ToMonth()
	summary, err := s.summaries.SummaryByMonth(ctx, userID, month.Start())
	if err != nil {
		return nil, fmt.Errorf("load summary: %w", err)
	}
	if summary == nil {
		return nil, fmt.Errorf("%w: no monthly summary for %s, set up a budget first", core.ErrNotFound, month)
	}
	return summary, nil
}

func (s *GoalService) publishRecompute(ctx context.Context, userID string, month core.Month) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecompute(ctx, userID, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish recompute message",
			"user_id", userID, "month", month.String(), "error", err)
	}
}
