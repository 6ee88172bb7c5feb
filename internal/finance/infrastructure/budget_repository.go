package infrastructure

import (
	"context"
	"database/sql"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Save(ctx context.Context, budget *domain.Budget) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO budgets (user_id, expense_category_id, limit_amount, month, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		budget.UserID, budget.ExpenseCategoryID, budget.LimitAmount, budget.Month, budget.Year,
	).Scan(&budget.ID)
}

// FindByUser returns each budget joined with its category name and the sum
// already spent against it in its month.
func (r *BudgetRepository) FindByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.expense_category_id, c.name, b.limit_amount, b.month, b.year,
		       COALESCE((
			SELECT SUM(t.amount) FROM transactions t
			WHERE t.user_id = b.user_id
			  AND t.expense_category_id = b.expense_category_id
			  AND EXTRACT(MONTH FROM t.date) = b.month
			  AND EXTRACT(YEAR FROM t.date) = b.year
		       ), 0) AS spent
		FROM budgets b
		JOIN expense_categories c ON b.expense_category_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.year DESC, b.month DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.ExpenseCategoryID, &budget.CategoryName,
			&budget.LimitAmount, &budget.Month, &budget.Year, &budget.Spent); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}
