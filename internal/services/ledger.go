// Package services is the operation layer between callers (HTTP, the
// notify worker) and the repository. Services validate before any
// persisted mutation and recompute every derived view from source rows.
package services

import (
	"context"
	"fmt"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

// LedgerService owns transaction mutations and reads.
type LedgerService struct {
	repo *storage.Repository
}

func NewLedgerService(repo *storage.Repository) *LedgerService {
	return &LedgerService{repo: repo}
}

// Add validates and persists a transaction, returning its assigned id.
func (s *LedgerService) Add(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, fmt.Errorf("validate transaction: %w", err)
	}
	return s.repo.AddTransaction(ctx, tx)
}

func (s *LedgerService) List(ctx context.Context, f storage.TransactionFilter) ([]core.Transaction, error) {
	return s.repo.ListTransactions(ctx, f)
}

// Update validates the replacement fields and applies them. An unknown id
// remains a silent no-op at the storage layer.
func (s *LedgerService) Update(ctx context.Context, id int64, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}
	return s.repo.UpdateTransaction(ctx, id, tx)
}

func (s *LedgerService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTransaction(ctx, id)
}
