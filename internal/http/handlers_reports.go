package http

import (
	"net/http"
	"strings"
	"time"

	"cashtrack/internal/core"
)

type summaryResponse struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	TotalIncome    float64 `json:"total_income"`
	TotalExpense   float64 `json:"total_expense"`
	Balance        float64 `json:"balance"`
	BalanceDisplay string  `json:"balance_display"`
	SavingsRate    float64 `json:"savings_rate"`
}

type categoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type dailyTotalResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	summary, err := s.reports.MonthlySummary(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Year:           summary.Year,
		Month:          summary.Month,
		TotalIncome:    summary.TotalIncome,
		TotalExpense:   summary.TotalExpense,
		Balance:        summary.Balance,
		BalanceDisplay: core.FormatAmount(s.currency, summary.Balance),
		SavingsRate:    summary.SavingsRate(),
	})
}

// reportRange resolves either an explicit start/end pair or a named
// period; period wins when both are present.
func (s *Server) reportRange(r *http.Request) (start, end core.Date, ok bool) {
	if period := strings.TrimSpace(r.URL.Query().Get("period")); period != "" {
		start, end = core.PeriodRange(period, time.Now())
		return start, end, true
	}

	start, okStart := parseDateParam(r, "start")
	end, okEnd := parseDateParam(r, "end")
	if !okStart || !okEnd {
		return core.Date{}, core.Date{}, false
	}
	return start, end, true
}

func (s *Server) handleExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	start, end, ok := s.reportRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	totals, err := s.reports.ExpensesByCategory(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]categoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, categoryTotalResponse{Category: t.Category, Total: t.Total})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDailySpending(w http.ResponseWriter, r *http.Request) {
	start, end, ok := s.reportRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	totals, err := s.reports.DailySpending(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]dailyTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dailyTotalResponse{Date: t.Date.String(), Total: t.Total})
	}
	writeJSON(w, http.StatusOK, out)
}
