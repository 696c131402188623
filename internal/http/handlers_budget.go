package http

import (
	"net/http"

	"financas/internal/core"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondError(w, r, err)
		return
	}

	budget, items, err := s.budgets.Create(r.Context(), draft)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Purge()
	writeJSON(w, http.StatusCreated, viewBudget(budget, items))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondError(w, r, err)
		return
	}

	budget := core.Budget{
		ID:        r.PathValue("id"),
		UserID:    draft.UserID,
		Name:      draft.Name,
		Start:     draft.Start,
		End:       draft.End,
		Type:      draft.Type,
		BaseMonth: draft.BaseMonth,
	}

	if err := s.budgets.Update(r.Context(), budget, draft.Items); err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Purge()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.Delete(r.Context(), requestUser(r), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Purge()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleBudgetPerformance(w http.ResponseWriter, r *http.Request) {
	report, err := s.budgets.Performance(r.Context(), requestUser(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewBudgetPerformance(report))
}

func (s *Server) handleMonthlyPerformance(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	month, err := requestMonth(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	key := performanceCacheKey(user, month)
	if report, ok := s.performanceCache.Get(key); ok {
		writeJSON(w, http.StatusOK, viewMonthlyPerformance(report))
		return
	}

	report, err := s.budgets.MonthlyPerformance(r.Context(), user, month)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Set(key, report)
	writeJSON(w, http.StatusOK, viewMonthlyPerformance(report))
}
