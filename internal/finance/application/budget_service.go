package application

import (
	"context"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type BudgetService struct {
	repo            domain.BudgetRepository
	categoryService CategoryServiceInterface
}

func NewBudgetService(repo domain.BudgetRepository, categoryService CategoryServiceInterface) *BudgetService {
	return &BudgetService{repo: repo, categoryService: categoryService}
}

func (s *BudgetService) CreateBudget(ctx context.Context, budget *domain.Budget) error {
	if !budget.LimitAmount.IsPositive() {
		return financeErrors.NewValidationError("Budget limit must be a positive number")
	}
	if budget.Month < 1 || budget.Month > 12 {
		return financeErrors.NewValidationError("Budget month must be between 1 and 12")
	}

	exists, err := s.categoryService.DoesCategoryExist(ctx, budget.ExpenseCategoryID, domain.KindExpense, budget.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrCategoryMismatch
	}
	return s.repo.Save(ctx, budget)
}

func (s *BudgetService) GetUserBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, financeErrors.NewQueryFailedError(err)
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}
