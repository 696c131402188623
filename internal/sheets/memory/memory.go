package memory

import (
	"context"
	"fmt"
	"sync"

	"financas/internal/core"
)

// Store is an in-memory SummaryExporter for local development and tests.
type Store struct {
	mu   sync.Mutex
	rows []core.MonthlyFinanceSummary
}

func New() *Store {
	return &Store{}
}

// ExportSummary stores the summary and returns a synthetic row reference.
func (s *Store) ExportSummary(_ context.Context, summary core.MonthlyFinanceSummary) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, summary)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything exported so far.
func (s *Store) Rows() []core.MonthlyFinanceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.MonthlyFinanceSummary(nil), s.rows...)
}
