package services

import (
	"context"
	"fmt"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

// BudgetService owns budget limits and the monthly spent-vs-limit join.
type BudgetService struct {
	repo *storage.Repository
}

func NewBudgetService(repo *storage.Repository) *BudgetService {
	return &BudgetService{repo: repo}
}

// Set upserts the limit for a category; an existing budget is replaced.
func (s *BudgetService) Set(ctx context.Context, category string, limitAmount float64) error {
	b := core.Budget{Category: category, LimitAmount: limitAmount}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("validate budget: %w", err)
	}
	return s.repo.SetBudget(ctx, category, limitAmount)
}

func (s *BudgetService) List(ctx context.Context) ([]core.Budget, error) {
	return s.repo.ListBudgets(ctx)
}

func (s *BudgetService) Delete(ctx context.Context, category string) error {
	return s.repo.DeleteBudget(ctx, category)
}

// Statuses computes spent-vs-limit for every configured budget in the
// given month, one row per budget in category order.
func (s *BudgetService) Statuses(ctx context.Context, year, month int) ([]core.BudgetStatus, error) {
	return s.repo.BudgetStatuses(ctx, year, month)
}
