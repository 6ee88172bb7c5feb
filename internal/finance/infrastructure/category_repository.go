package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func tableForKind(kind domain.TransactionKind) string {
	if kind == domain.KindExpense {
		return "expense_categories"
	}
	return "income_categories"
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (user_id, name, icon, color) VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, '')) RETURNING id",
		tableForKind(category.Kind))
	return r.db.QueryRowContext(ctx, query,
		category.UserID, category.Name, category.Icon, category.Color,
	).Scan(&category.ID)
}

// FindForUser lists the user's own categories of one kind together with the
// global ones.
func (r *CategoryRepository) FindForUser(ctx context.Context, userID string, kind domain.TransactionKind) ([]domain.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, COALESCE(icon, ''), COALESCE(color, ''), user_id
		FROM %s
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY id`, tableForKind(kind))
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category := domain.Category{Kind: kind}
		if err := rows.Scan(&category.ID, &category.Name, &category.Icon, &category.Color, &category.UserID); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) ExistsForUser(ctx context.Context, categoryID int64, kind domain.TransactionKind, userID string) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1 AND (user_id = $2 OR user_id IS NULL))",
		tableForKind(kind))
	var exists bool
	err := r.db.QueryRowContext(ctx, query, categoryID, userID).Scan(&exists)
	return exists, err
}
