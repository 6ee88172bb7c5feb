package infrastructure

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (user_id, name, kind, bank_name, opening_balance, current_balance, color)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $5, NULLIF($6, ''))
		RETURNING id, created_at`,
		account.UserID, account.Name, account.Kind, account.BankName, account.OpeningBalance, account.Color,
	).Scan(&account.ID, &account.CreatedAt)
}

func (r *AccountRepository) FindByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, kind, COALESCE(bank_name, ''), opening_balance, current_balance, COALESCE(color, ''), created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &account.Kind, &account.BankName,
			&account.OpeningBalance, &account.CurrentBalance, &account.Color, &account.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) ExistsForUser(ctx context.Context, accountID int64, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1 AND user_id = $2)",
		accountID, userID).Scan(&exists)
	return exists, err
}

func (r *AccountRepository) TotalBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(current_balance), 0) FROM accounts WHERE user_id = $1",
		userID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
