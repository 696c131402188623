package services

import (
	"context"
	"fmt"
	"sync"

	"financas/internal/core"
)

// fakeStore is an in-memory implementation of every port, used by the
// service tests so no SQLite is involved.
type fakeStore struct {
	mu        sync.Mutex
	ops       map[string]core.Operation
	budgets   map[string]core.Budget
	items     map[string][]core.BudgetItem
	goals     map[string]core.Goal
	summaries map[string]core.MonthlyFinanceSummary

	published []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ops:       make(map[string]core.Operation),
		budgets:   make(map[string]core.Budget),
		items:     make(map[string][]core.BudgetItem),
		goals:     make(map[string]core.Goal),
		summaries: make(map[string]core.MonthlyFinanceSummary),
	}
}

func summaryKey(userID string, monthStart core.Date) string {
	return userID + "|" + monthStart.String()
}

func (f *fakeStore) ListOperations(_ context.Context, filter OperationFilter) ([]core.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Operation
	for _, op := range f.ops {
		if filter.UserID != "" && op.UserID != filter.UserID {
			continue
		}
		if filter.Nature != nil && op.Nature != *filter.Nature {
			continue
		}
		if filter.State != nil && op.State != *filter.State {
			continue
		}
		if filter.Category != "" && op.Category != filter.Category {
			continue
		}
		if filter.GoalID != "" && op.GoalID != filter.GoalID {
			continue
		}
		if !filter.From.IsZero() && op.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && op.Date.After(filter.To) {
			continue
		}
		out = append(out, op)
	}
	return out, nil
}

func (f *fakeStore) GetOperation(_ context.Context, id string) (core.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	op, ok := f.ops[id]
	if !ok {
		return core.Operation{}, fmt.Errorf("%w: operation %s", core.ErrNotFound, id)
	}
	return op, nil
}

func (f *fakeStore) InsertOperation(_ context.Context, op core.Operation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops[op.ID] = op
	return nil
}

func (f *fakeStore) UpdateOperation(_ context.Context, op core.Operation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ops[op.ID]; !ok {
		return fmt.Errorf("%w: operation %s", core.ErrNotFound, op.ID)
	}
	f.ops[op.ID] = op
	return nil
}

func (f *fakeStore) DeleteOperation(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ops[id]; !ok {
		return fmt.Errorf("%w: operation %s", core.ErrNotFound, id)
	}
	delete(f.ops, id)
	return nil
}

func (f *fakeStore) ActiveBudget(_ context.Context, userID string) (*core.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.budgets {
		if b.UserID == userID {
			copy := b
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) BudgetItems(_ context.Context, budgetID string) ([]core.BudgetItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.BudgetItem(nil), f.items[budgetID]...), nil
}

func (f *fakeStore) InsertBudget(_ context.Context, b core.Budget, items []core.BudgetItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// One active budget per user: replace any existing one.
	for id, existing := range f.budgets {
		if existing.UserID == b.UserID {
			delete(f.budgets, id)
			delete(f.items, id)
		}
	}
	f.budgets[b.ID] = b
	f.items[b.ID] = items
	return nil
}

func (f *fakeStore) UpdateBudget(_ context.Context, b core.Budget, items []core.BudgetItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.budgets[b.ID]; !ok {
		return fmt.Errorf("%w: budget %s", core.ErrNotFound, b.ID)
	}
	f.budgets[b.ID] = b
	f.items[b.ID] = items
	return nil
}

func (f *fakeStore) DeleteBudget(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.budgets, id)
	delete(f.items, id)
	return nil
}

func (f *fakeStore) GetGoal(_ context.Context, id string) (core.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[id]
	if !ok {
		return core.Goal{}, fmt.Errorf("%w: goal %s", core.ErrNotFound, id)
	}
	return g, nil
}

func (f *fakeStore) ListGoals(_ context.Context, userID string) ([]core.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertGoal(_ context.Context, g core.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.goals[g.ID] = g
	return nil
}

func (f *fakeStore) UpdateGoal(_ context.Context, g core.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[g.ID]; !ok {
		return fmt.Errorf("%w: goal %s", core.ErrNotFound, g.ID)
	}
	f.goals[g.ID] = g
	return nil
}

func (f *fakeStore) DeleteGoal(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.goals, id)
	return nil
}

func (f *fakeStore) SummaryByMonth(_ context.Context, userID string, monthStart core.Date) (*core.MonthlyFinanceSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.summaries[summaryKey(userID, monthStart)]
	if !ok {
		return nil, nil
	}
	copy := s
	return &copy, nil
}

func (f *fakeStore) InsertSummary(_ context.Context, s core.MonthlyFinanceSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := summaryKey(s.UserID, s.MonthStart)
	if _, ok := f.summaries[key]; ok {
		return fmt.Errorf("duplicate summary for %s", key)
	}
	f.summaries[key] = s
	return nil
}

func (f *fakeStore) UpdateSummary(_ context.Context, s core.MonthlyFinanceSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := summaryKey(s.UserID, s.MonthStart)
	if _, ok := f.summaries[key]; !ok {
		return fmt.Errorf("%w: summary %s", core.ErrNotFound, key)
	}
	f.summaries[key] = s
	return nil
}

func (f *fakeStore) PublishRecompute(_ context.Context, userID string, month core.Month) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, userID+"|"+month.String())
	return nil
}

func (f *fakeStore) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

func (f *fakeStore) summaryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.summaries)
}
