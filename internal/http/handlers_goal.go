package http

import (
	"net/http"

	"financas/internal/core"
)

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondError(w, r, err)
		return
	}

	goal, err := s.goals.Create(r.Context(), draft)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewGoal(goal))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context(), requestUser(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	views := make([]goalView, len(goals))
	for i, g := range goals {
		views[i] = viewGoal(g)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.goals.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewGoal(goal))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	current, err := s.goals.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondError(w, r, err)
		return
	}

	current.Description = draft.Description
	current.Type = draft.Type
	current.TargetValue = draft.TargetValue
	current.Start = draft.Start
	current.Importance = draft.Importance
	current.Priority = draft.Priority
	current.Strategy = draft.Strategy
	current.Parcels = draft.Parcels

	updated, err := s.goals.Update(r.Context(), current)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewGoal(updated))
}

func (s *Server) handleUpdateGoalStatus(w http.ResponseWriter, r *http.Request) {
	var req goalStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := s.goals.UpdateStatus(r.Context(), r.PathValue("id"), core.GoalStatus(req.Status))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewGoal(goal))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.goals.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"goal_id":  r.PathValue("id"),
		"progress": progress.String(),
	})
}

func (s *Server) handleSuggestStrategy(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	month, err := core.ParseMonth(req.Month)
	if err != nil {
		respondError(w, r, err)
		return
	}
	target, err := core.ParseAmount(req.TargetValue)
	if err != nil {
		respondError(w, r, err)
		return
	}

	strategy, err := s.goals.Suggest(r.Context(), sanitizeInput(req.UserID), month, target)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewStrategy(strategy))
}
