package services

import (
	"context"
	"time"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

// ReportService derives summaries and series from the ledger. Every call
// recomputes from source rows; two calls without a mutation in between
// yield identical results.
type ReportService struct {
	repo *storage.Repository
}

func NewReportService(repo *storage.Repository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	return s.repo.MonthlySummary(ctx, year, month)
}

// ExpensesByCategory breaks down Expense totals per category, largest
// first. Zero dates leave that bound open.
func (s *ReportService) ExpensesByCategory(ctx context.Context, start, end core.Date) ([]core.CategoryTotal, error) {
	return s.repo.ExpensesByCategory(ctx, start, end)
}

// DailySpending returns the per-day Expense series, oldest first.
func (s *ReportService) DailySpending(ctx context.Context, start, end core.Date) ([]core.DailyTotal, error) {
	return s.repo.DailySpending(ctx, start, end)
}

// ExpensesByCategoryForPeriod resolves a named period (today, this_month,
// last_30_days, ...) before delegating.
func (s *ReportService) ExpensesByCategoryForPeriod(ctx context.Context, period string, now time.Time) ([]core.CategoryTotal, error) {
	start, end := core.PeriodRange(period, now)
	return s.repo.ExpensesByCategory(ctx, start, end)
}

func (s *ReportService) DailySpendingForPeriod(ctx context.Context, period string, now time.Time) ([]core.DailyTotal, error) {
	start, end := core.PeriodRange(period, now)
	return s.repo.DailySpending(ctx, start, end)
}
