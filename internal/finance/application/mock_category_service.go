package application

import (
	"context"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

// MockCategoryService answers category existence checks from two fixed sets,
// one per transaction kind.
type MockCategoryService struct {
	IncomeCategories  map[int64]struct{}
	ExpenseCategories map[int64]struct{}
}

func (m *MockCategoryService) DoesCategoryExist(_ context.Context, categoryID int64, kind domain.TransactionKind, _ string) (bool, error) {
	if kind == domain.KindIncome {
		_, ok := m.IncomeCategories[categoryID]
		return ok, nil
	}
	_, ok := m.ExpenseCategories[categoryID]
	return ok, nil
}
