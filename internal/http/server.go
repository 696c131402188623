package http

import (
	"container/list"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"financas/internal/core"
	"financas/internal/engine"
	"financas/internal/services"
)

// LRU cache with TTL and size-based eviction
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *lruCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

// Purge drops every entry. Mutations whose affected months are unknown use
// this instead of guessing keys.
func (c *lruCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// CleanExpired removes all expired entries.
func (c *lruCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var toRemove []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		item := elem.Value.(*cacheItem[T])
		if now.After(item.expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}
	for _, elem := range toRemove {
		c.removeElement(elem)
	}
	return len(toRemove)
}

// Service ports the handlers depend on. The concrete implementations live
// in internal/services.
type (
	OperationService interface {
		CreateSimple(ctx context.Context, in engine.Intent) (core.Operation, error)
		CreateDouble(ctx context.Context, in engine.Intent) ([]core.Operation, error)
		Get(ctx context.Context, id string) (core.Operation, error)
		List(ctx context.Context, f services.OperationFilter) ([]core.Operation, error)
		UpdateState(ctx context.Context, id string, next core.State) (core.Operation, error)
		Update(ctx context.Context, op core.Operation) error
		Delete(ctx context.Context, id string) error
	}

	BudgetService interface {
		Create(ctx context.Context, d services.BudgetDraft) (core.Budget, []core.BudgetItem, error)
		Update(ctx context.Context, b core.Budget, items []core.BudgetItem) error
		Delete(ctx context.Context, userID, budgetID string) error
		Performance(ctx context.Context, userID string) (engine.BudgetPerformance, error)
		MonthlyPerformance(ctx context.Context, userID string, month core.Month) (engine.MonthlyPerformance, error)
	}

	GoalService interface {
		Create(ctx context.Context, d services.GoalDraft) (core.Goal, error)
		Get(ctx context.Context, id string) (core.Goal, error)
		List(ctx context.Context, userID string) ([]core.Goal, error)
		Update(ctx context.Context, g core.Goal) (core.Goal, error)
		UpdateStatus(ctx context.Context, id string, status core.GoalStatus) (core.Goal, error)
		Delete(ctx context.Context, id string) error
		Suggest(ctx context.Context, userID string, month core.Month, target decimal.Decimal) (engine.Strategy, error)
		Progress(ctx context.Context, id string) (decimal.Decimal, error)
	}

	SummaryService interface {
		Get(ctx context.Context, userID string, month core.Month) (core.MonthlyFinanceSummary, error)
		UpdateCeiling(ctx context.Context, userID string, month core.Month, value decimal.Decimal) (core.MonthlyFinanceSummary, error)
		UpdateIncludeVariableIncome(ctx context.Context, userID string, month core.Month, include bool) (core.MonthlyFinanceSummary, error)
	}
)

type Server struct {
	http.Server
	operations  OperationService
	budgets     BudgetService
	goals       GoalService
	summaries   SummaryService
	rateLimiter *rateLimiter

	// Monthly performance reads dominate; cache them briefly and drop
	// entries whenever a mutation can move the numbers.
	performanceCache *lruCache[engine.MonthlyPerformance]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, ops OperationService, budgets BudgetService, goals GoalService, summaries SummaryService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		operations:       ops,
		budgets:          budgets,
		goals:            goals,
		summaries:        summaries,
		rateLimiter:      newRateLimiter(),
		performanceCache: newLRUCache[engine.MonthlyPerformance](200, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/operations", s.withMiddleware(s.handleCreateOperation))
	mux.HandleFunc("POST /api/operations/double", s.withMiddleware(s.handleCreateDoubleOperation))
	mux.HandleFunc("GET /api/operations", s.withMiddleware(s.handleListOperations))
	mux.HandleFunc("GET /api/operations/{id}", s.withMiddleware(s.handleGetOperation))
	mux.HandleFunc("PUT /api/operations/{id}", s.withMiddleware(s.handleUpdateOperation))
	mux.HandleFunc("PATCH /api/operations/{id}/state", s.withMiddleware(s.handleUpdateOperationState))
	mux.HandleFunc("DELETE /api/operations/{id}", s.withMiddleware(s.handleDeleteOperation))

	mux.HandleFunc("POST /api/budgets", s.withMiddleware(s.handleCreateBudget))
	mux.HandleFunc("PUT /api/budgets/{id}", s.withMiddleware(s.handleUpdateBudget))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.withMiddleware(s.handleDeleteBudget))
	mux.HandleFunc("GET /api/budgets/performance", s.withMiddleware(s.handleBudgetPerformance))
	mux.HandleFunc("GET /api/budgets/performance/monthly", s.withMiddleware(s.handleMonthlyPerformance))

	mux.HandleFunc("POST /api/goals", s.withMiddleware(s.handleCreateGoal))
	mux.HandleFunc("GET /api/goals", s.withMiddleware(s.handleListGoals))
	mux.HandleFunc("GET /api/goals/{id}", s.withMiddleware(s.handleGetGoal))
	mux.HandleFunc("PUT /api/goals/{id}", s.withMiddleware(s.handleUpdateGoal))
	mux.HandleFunc("PATCH /api/goals/{id}/status", s.withMiddleware(s.handleUpdateGoalStatus))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withMiddleware(s.handleDeleteGoal))
	mux.HandleFunc("GET /api/goals/{id}/progress", s.withMiddleware(s.handleGoalProgress))
	mux.HandleFunc("POST /api/goals/suggest", s.withMiddleware(s.handleSuggestStrategy))

	mux.HandleFunc("GET /api/summary", s.withMiddleware(s.handleGetSummary))
	mux.HandleFunc("PUT /api/summary/ceiling", s.withMiddleware(s.handleUpdateCeiling))
	mux.HandleFunc("PUT /api/summary/variable-income", s.withMiddleware(s.handleUpdateVariableIncome))

	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.performanceCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
