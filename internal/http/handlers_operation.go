package http

import (
	"fmt"
	"net/http"
	"strings"

	"financas/internal/core"
	"financas/internal/services"
)

func (s *Server) handleCreateOperation(w http.ResponseWriter, r *http.Request) {
	var req operationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	intent, err := req.toIntent()
	if err != nil {
		respondError(w, r, err)
		return
	}

	op, err := s.operations.CreateSimple(r.Context(), intent)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Delete(performanceCacheKey(op.UserID, op.Date.ToMonth()))
	writeJSON(w, http.StatusCreated, viewOperation(op))
}

func (s *Server) handleCreateDoubleOperation(w http.ResponseWriter, r *http.Request) {
	var req operationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	intent, err := req.toIntent()
	if err != nil {
		respondError(w, r, err)
		return
	}

	ops, err := s.operations.CreateDouble(r.Context(), intent)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if len(ops) > 0 {
		s.performanceCache.Delete(performanceCacheKey(ops[0].UserID, ops[0].Date.ToMonth()))
	}
	writeJSON(w, http.StatusCreated, viewOperations(ops))
}

func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request) {
	filter, err := operationFilterFromQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ops, err := s.operations.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOperations(ops))
}

func (s *Server) handleGetOperation(w http.ResponseWriter, r *http.Request) {
	op, err := s.operations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOperation(op))
}

func (s *Server) handleUpdateOperation(w http.ResponseWriter, r *http.Request) {
	var req operationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	op, err := req.toOperation(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.operations.Update(r.Context(), op); err != nil {
		respondError(w, r, err)
		return
	}

	// An edit can move the record across months; drop all cached months.
	s.performanceCache.Purge()
	writeJSON(w, http.StatusOK, viewOperation(op))
}

func (s *Server) handleUpdateOperationState(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	op, err := s.operations.UpdateState(r.Context(), r.PathValue("id"), core.State(req.State))
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Delete(performanceCacheKey(op.UserID, op.Date.ToMonth()))
	writeJSON(w, http.StatusOK, viewOperation(op))
}

func (s *Server) handleDeleteOperation(w http.ResponseWriter, r *http.Request) {
	if err := s.operations.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}

	s.performanceCache.Purge()
	writeJSON(w, http.StatusNoContent, nil)
}

func operationFilterFromQuery(r *http.Request) (services.OperationFilter, error) {
	q := r.URL.Query()
	filter := services.OperationFilter{
		UserID:   requestUser(r),
		Category: strings.TrimSpace(q.Get("category")),
		GoalID:   strings.TrimSpace(q.Get("goal_id")),
	}

	if v := q.Get("nature"); v != "" {
		nature := core.Nature(v)
		if !nature.Valid() {
			return services.OperationFilter{}, fmt.Errorf("%w: %q", core.ErrInvalidNature, v)
		}
		filter.Nature = &nature
	}
	if v := q.Get("state"); v != "" {
		state := core.State(v)
		if !state.Valid() {
			return services.OperationFilter{}, fmt.Errorf("%w: %q", core.ErrInvalidState, v)
		}
		filter.State = &state
	}
	if v := q.Get("from"); v != "" {
		from, err := core.ParseDate(v)
		if err != nil {
			return services.OperationFilter{}, err
		}
		filter.From = from
	}
	if v := q.Get("to"); v != "" {
		to, err := core.ParseDate(v)
		if err != nil {
			return services.OperationFilter{}, err
		}
		filter.To = to
	}
	if v := q.Get("month"); v != "" {
		month, err := core.ParseMonth(v)
		if err != nil {
			return services.OperationFilter{}, err
		}
		filter.From = month.Start()
		filter.To = month.End()
	}
	return filter, nil
}

func performanceCacheKey(userID string, month core.Month) string {
	return userID + "|" + month.String()
}
