package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Budget caps spending for one expense category in one month. Spent is a
// read-time aggregate, never stored.
type Budget struct {
	ID                int64           `json:"id"`
	UserID            string          `json:"user_id"`
	ExpenseCategoryID int64           `json:"expense_category_id"`
	CategoryName      string          `json:"category_name,omitempty"`
	LimitAmount       decimal.Decimal `json:"limit_amount"`
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	Spent             decimal.Decimal `json:"spent"`
}

type BudgetRepository interface {
	Save(ctx context.Context, budget *Budget) error
	FindByUser(ctx context.Context, userID string) ([]Budget, error)
}
