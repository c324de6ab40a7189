package http

import (
	"encoding/json"
	"net/http"

	"cashtrack/internal/core"
)

type budgetRequest struct {
	LimitAmount float64 `json:"limit_amount"`
}

type budgetResponse struct {
	Category    string  `json:"category"`
	LimitAmount float64 `json:"limit_amount"`
}

type budgetStatusResponse struct {
	Category       string  `json:"category"`
	LimitAmount    float64 `json:"limit_amount"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentUsed    float64 `json:"percent_used"`
	DisplayPercent float64 `json:"display_percent"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	category := sanitizeInput(r.PathValue("category"))

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.budgets.Set(r.Context(), category, req.LimitAmount); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, budgetResponse{Category: category, LimitAmount: req.LimitAmount})
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, budgetResponse{Category: b.Category, LimitAmount: b.LimitAmount})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	statuses, err := s.budgets.Statuses(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]budgetStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, toBudgetStatusResponse(st))
	}
	writeJSON(w, http.StatusOK, out)
}

func toBudgetStatusResponse(st core.BudgetStatus) budgetStatusResponse {
	return budgetStatusResponse{
		Category:       st.Category,
		LimitAmount:    st.LimitAmount,
		Spent:          st.Spent,
		Remaining:      st.Remaining(),
		PercentUsed:    st.PercentUsed(),
		DisplayPercent: st.DisplayPercent(),
	}
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	category := sanitizeInput(r.PathValue("category"))

	if err := s.budgets.Delete(r.Context(), category); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
