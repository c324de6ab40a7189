package services

import (
	"context"
	"fmt"
	"strings"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

// CategoryService is the category registry: an explicit add/remove/list
// service backed by the categories table, injected into consumers instead
// of shared mutable lists.
type CategoryService struct {
	repo *storage.Repository
}

func NewCategoryService(repo *storage.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Add(ctx context.Context, name string, typ core.TransactionType) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("validate category: %w", core.ErrEmptyName)
	}
	if err := typ.Validate(); err != nil {
		return fmt.Errorf("validate category: %w", err)
	}
	return s.repo.AddCategory(ctx, name, typ)
}

func (s *CategoryService) List(ctx context.Context, typ core.TransactionType) ([]core.Category, error) {
	if err := typ.Validate(); err != nil {
		return nil, fmt.Errorf("validate category type: %w", err)
	}
	return s.repo.ListCategories(ctx, typ)
}

func (s *CategoryService) Remove(ctx context.Context, name string) error {
	return s.repo.DeleteCategory(ctx, name)
}
