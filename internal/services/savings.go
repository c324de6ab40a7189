package services

import (
	"context"
	"fmt"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

// SavingsService owns goal records and their progress updates.
type SavingsService struct {
	repo *storage.Repository
}

func NewSavingsService(repo *storage.Repository) *SavingsService {
	return &SavingsService{repo: repo}
}

func (s *SavingsService) CreateGoal(ctx context.Context, g core.SavingsGoal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("validate savings goal: %w", err)
	}
	return s.repo.AddSavingsGoal(ctx, g)
}

func (s *SavingsService) List(ctx context.Context) ([]core.SavingsGoal, error) {
	return s.repo.ListSavingsGoals(ctx)
}

// SetAmount sets the absolute saved amount, as the edit flow does.
func (s *SavingsService) SetAmount(ctx context.Context, id int64, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("validate amount: %w", core.ErrInvalidAmount)
	}
	return s.repo.SetSavingsGoalAmount(ctx, id, amount)
}

// AddAmount adds money to a goal: the new total is current + delta.
func (s *SavingsService) AddAmount(ctx context.Context, id int64, delta float64) error {
	if delta <= 0 {
		return fmt.Errorf("validate amount: %w", core.ErrInvalidAmount)
	}

	goals, err := s.repo.ListSavingsGoals(ctx)
	if err != nil {
		return err
	}
	for _, g := range goals {
		if g.ID == id {
			return s.repo.SetSavingsGoalAmount(ctx, id, g.CurrentAmount+delta)
		}
	}
	// Unknown ids follow the store's silent no-op contract.
	return nil
}

func (s *SavingsService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteSavingsGoal(ctx, id)
}
