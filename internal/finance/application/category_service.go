package application

import (
	"context"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return financeErrors.NewValidationError("Category name is required")
	}
	if !category.Kind.Valid() {
		return financeErrors.NewValidationError("Category type must be 'income' or 'expense'")
	}
	return s.repo.Save(ctx, category)
}

// GetUserCategories returns the user-owned and global categories. An empty
// kind returns both kinds merged, income first, matching the combined list
// the client renders.
func (s *CategoryService) GetUserCategories(ctx context.Context, userID string, kind domain.TransactionKind) ([]domain.Category, error) {
	if kind != "" {
		categories, err := s.repo.FindForUser(ctx, userID, kind)
		if err != nil {
			return nil, financeErrors.NewQueryFailedError(err)
		}
		if categories == nil {
			return []domain.Category{}, nil
		}
		return categories, nil
	}

	income, err := s.repo.FindForUser(ctx, userID, domain.KindIncome)
	if err != nil {
		return nil, financeErrors.NewQueryFailedError(err)
	}
	expense, err := s.repo.FindForUser(ctx, userID, domain.KindExpense)
	if err != nil {
		return nil, financeErrors.NewQueryFailedError(err)
	}
	merged := make([]domain.Category, 0, len(income)+len(expense))
	merged = append(merged, income...)
	merged = append(merged, expense...)
	return merged, nil
}

func (s *CategoryService) DoesCategoryExist(ctx context.Context, categoryID int64, kind domain.TransactionKind, userID string) (bool, error) {
	if !kind.Valid() {
		return false, nil
	}
	return s.repo.ExistsForUser(ctx, categoryID, kind, userID)
}
