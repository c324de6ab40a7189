package http

import (
	"encoding/json"
	"net/http"
	"time"

	"cashtrack/internal/core"
)

type goalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline,omitempty"`
}

type goalAmountRequest struct {
	Amount float64 `json:"amount"`
}

type goalResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	TargetAmount    float64 `json:"target_amount"`
	CurrentAmount   float64 `json:"current_amount"`
	Deadline        string  `json:"deadline,omitempty"`
	ProgressPercent float64 `json:"progress_percent"`
	RemainingAmount float64 `json:"remaining_amount"`
	Completed       bool    `json:"completed"`
	DaysRemaining   int     `json:"days_remaining"`
}

func toGoalResponse(g core.SavingsGoal, now time.Time) goalResponse {
	return goalResponse{
		ID:              g.ID,
		Name:            g.Name,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		Deadline:        g.Deadline,
		ProgressPercent: g.ProgressPercent(),
		RemainingAmount: g.RemainingAmount(),
		Completed:       g.IsCompleted(),
		DaysRemaining:   g.DaysRemaining(now),
	}
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	goal := core.SavingsGoal{
		Name:         sanitizeInput(req.Name),
		TargetAmount: req.TargetAmount,
		Deadline:     sanitizeInput(req.Deadline),
	}

	id, err := s.savings.CreateGoal(r.Context(), goal)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	goal.ID = id
	writeJSON(w, http.StatusCreated, toGoalResponse(goal, time.Now()))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.savings.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	now := time.Now()
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddToGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req goalAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.savings.AddAmount(r.Context(), id, req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetGoalAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req goalAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.savings.SetAmount(r.Context(), id, req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := s.savings.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
