package http

import (
	"net/http"

	"financas/internal/core"
)

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	month, err := requestMonth(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := s.summaries.Get(r.Context(), requestUser(r), month)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewSummary(summary))
}

func (s *Server) handleUpdateCeiling(w http.ResponseWriter, r *http.Request) {
	var req ceilingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	month, err := core.ParseMonth(req.Month)
	if err != nil {
		respondError(w, r, err)
		return
	}
	value, err := core.ParseAmount(req.Value)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := s.summaries.UpdateCeiling(r.Context(), sanitizeInput(req.UserID), month, value)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Delete(performanceCacheKey(summary.UserID, month))
	writeJSON(w, http.StatusOK, viewSummary(summary))
}

func (s *Server) handleUpdateVariableIncome(w http.ResponseWriter, r *http.Request) {
	var req variableIncomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	month, err := core.ParseMonth(req.Month)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := s.summaries.UpdateIncludeVariableIncome(r.Context(), sanitizeInput(req.UserID), month, req.Include)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Delete(performanceCacheKey(summary.UserID, month))
	writeJSON(w, http.StatusOK, viewSummary(summary))
}
