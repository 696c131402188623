package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"financas/internal/core"
	"financas/internal/engine"
)

// OperationService creates, edits and transitions ledger operations. Every
// successful mutation publishes a recompute message for the affected month;
// publish failures are logged and never fail the request (the periodic
// worker catches up).
type OperationService struct {
	ledger    LedgerStore
	publisher RecomputePublisher
	now       func() time.Time
}

func NewOperationService(ledger LedgerStore, publisher RecomputePublisher) *OperationService {
	return &OperationService{
		ledger:    ledger,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateSimple records a single operation from the intent.
func (s *OperationService) CreateSimple(ctx context.Context, in engine.Intent) (core.Operation, error) {
	op, err := engine.NewSimple(in, s.now())
	if err != nil {
		return core.Operation{}, err
	}
	if err := s.ledger.InsertOperation(ctx, op); err != nil {
		return core.Operation{}, fmt.Errorf("insert operation: %w", err)
	}
	s.publishRecompute(ctx, op.UserID, op.Date.ToMonth())
	return op, nil
}

// CreateDouble records the linked legs for the pair-producing categories.
func (s *OperationService) CreateDouble(ctx context.Context, in engine.Intent) ([]core.Operation, error) {
	legs, err := engine.NewDouble(in, s.now())
	if err != nil {
		return nil, err
	}
	for _, leg := range legs {
		if err := s.ledger.InsertOperation(ctx, leg); err != nil {
			return nil, fmt.Errorf("insert operation leg: %w", err)
		}
	}
	s.publishRecompute(ctx, in.UserID, in.Date.ToMonth())
	return legs, nil
}

// UpdateState executes a lifecycle transition. Illegal transitions surface
// core.ErrInvalidTransition and leave the record untouched.
func (s *OperationService) UpdateState(ctx context.Context, id string, next core.State) (core.Operation, error) {
	op, err := s.ledger.GetOperation(ctx, id)
	if err != nil {
		return core.Operation{}, fmt.Errorf("get operation: %w", err)
	}
	op, err = engine.TransitionState(op, next)
	if err != nil {
		return core.Operation{}, err
	}
	op.UpdatedAt = s.now()
	if err := s.ledger.UpdateOperation(ctx, op); err != nil {
		return core.Operation{}, fmt.Errorf("update operation: %w", err)
	}
	s.publishRecompute(ctx, op.UserID, op.Date.ToMonth())
	return op, nil
}

// Update performs a full-field edit.
func (s *OperationService) Update(ctx context.Context, op core.Operation) error {
	if err := op.Validate(); err != nil {
		return err
	}
	previous, err := s.ledger.GetOperation(ctx, op.ID)
	if err != nil {
		return fmt.Errorf("get operation: %w", err)
	}
	op.CreatedAt = previous.CreatedAt
	op.UpdatedAt = s.now()
	if err := s.ledger.UpdateOperation(ctx, op); err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	s.publishRecompute(ctx, op.UserID, op.Date.ToMonth())
	if !previous.Date.ToMonth().Contains(op.Date) {
		// The edit moved the operation across months; both need a refresh.
		s.publishRecompute(ctx, op.UserID, previous.Date.ToMonth())
	}
	return nil
}

func (s *OperationService) Get(ctx context.Context, id string) (core.Operation, error) {
	return s.ledger.GetOperation(ctx, id)
}

func (s *OperationService) List(ctx context.Context, filter OperationFilter) ([]core.Operation, error) {
	return s.ledger.ListOperations(ctx, filter)
}

// Delete removes the operation outright.
func (s *OperationService) Delete(ctx context.Context, id string) error {
	op, err := s.ledger.GetOperation(ctx, id)
	if err != nil {
		return fmt.Errorf("get operation: %w", err)
	}
	if err := s.ledger.DeleteOperation(ctx, id); err != nil {
		return fmt.Errorf("delete operation: %w", err)
	}
	s.publishRecompute(ctx, op.UserID, op.Date.ToMonth())
	return nil
}

func (s *OperationService) publishRecompute(ctx context.Context, userID string, month core.Month) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Recompute publisher not available, skipping", "user_id", userID, "month", month.String())
		return
	}
	if err := s.publisher.PublishRecompute(ctx, userID, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish recompute message",
			"user_id", userID, "month", month.String(), "error", err)
	}
}
