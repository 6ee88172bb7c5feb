package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Record writes a transaction, adjusts the owning account balance and appends
// the activity entry inside one database transaction. The three statements
// commit together or not at all. The bool result is false when a duplicate
// client reference short-circuited the write and the stored row was returned.
func (r *LedgerRepository) Record(ctx context.Context, transaction domain.Transaction, activity domain.ActivityEntry) (created *domain.Transaction, inserted bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if p := recover(); p != nil {
			safeRollback(tx)
			panic(p)
		} else if err != nil {
			safeRollback(tx)
		}
	}()

	if transaction.ClientReference != "" {
		existing, findErr := findByClientReference(ctx, tx, transaction.UserID, transaction.ClientReference)
		if findErr != nil && !errors.Is(findErr, sql.ErrNoRows) {
			err = findErr
			return nil, false, err
		}
		if existing != nil {
			if err = tx.Commit(); err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
	}

	categoryColumn := "income_category_id"
	if transaction.Kind == domain.KindExpense {
		categoryColumn = "expense_category_id"
	}

	query := fmt.Sprintf(`
		INSERT INTO transactions (id, user_id, account_id, kind, amount, description, date, payment_method, %s, client_reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))
		RETURNING created_at`, categoryColumn)
	err = tx.QueryRowContext(ctx, query,
		transaction.ID, transaction.UserID, transaction.AccountID, transaction.Kind, transaction.Amount,
		transaction.Description, transaction.Date, transaction.PaymentMethod, transaction.CategoryID,
		transaction.ClientReference,
	).Scan(&transaction.CreatedAt)
	if err != nil {
		// A concurrent writer carrying the same client reference can commit
		// between the pre-check above and this insert. The unique constraint
		// makes the loser's insert fail; replay the winner's row instead of
		// surfacing the violation.
		if transaction.ClientReference != "" && isUniqueViolation(err) {
			safeRollback(tx)
			existing, findErr := findByClientReference(ctx, r.db, transaction.UserID, transaction.ClientReference)
			if findErr != nil {
				err = findErr
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	// The user_id predicate keeps a stale or foreign account id from ever
	// being credited; the row lock taken here serializes concurrent writers
	// against the same account.
	result, err := tx.ExecContext(ctx,
		`UPDATE accounts SET current_balance = current_balance + $1 WHERE id = $2 AND user_id = $3`,
		transaction.SignedAmount(), transaction.AccountID, transaction.UserID,
	)
	if err != nil {
		return nil, false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	if affected == 0 {
		err = financeErrors.ErrAccountNotFound
		return nil, false, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO activity_log (user_id, description, kind, screen, amount, reference_transaction_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		activity.UserID, activity.Description, activity.Kind, activity.Screen, activity.Amount, transaction.ID,
	)
	if err != nil {
		return nil, false, err
	}

	if err = tx.Commit(); err != nil {
		return nil, false, err
	}
	return &transaction, true, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func findByClientReference(ctx context.Context, q rowQuerier, userID, reference string) (*domain.Transaction, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, user_id, account_id, kind, amount, description, date, payment_method,
		       COALESCE(income_category_id, expense_category_id), COALESCE(client_reference, ''), created_at
		FROM transactions
		WHERE user_id = $1 AND client_reference = $2`,
		userID, reference)

	var transaction domain.Transaction
	err := row.Scan(&transaction.ID, &transaction.UserID, &transaction.AccountID, &transaction.Kind,
		&transaction.Amount, &transaction.Description, &transaction.Date, &transaction.PaymentMethod,
		&transaction.CategoryID, &transaction.ClientReference, &transaction.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// FindByUser returns the user's transactions newest first, each joined with
// the display name of its category.
func (r *LedgerRepository) FindByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.account_id, t.kind, t.amount, t.description, t.date,
		       COALESCE(t.payment_method, ''),
		       COALESCE(t.income_category_id, t.expense_category_id),
		       COALESCE(ic.name, ec.name, ''),
		       COALESCE(t.client_reference, ''),
		       t.created_at
		FROM transactions t
		LEFT JOIN income_categories ic ON t.income_category_id = ic.id
		LEFT JOIN expense_categories ec ON t.expense_category_id = ec.id
		WHERE t.user_id = $1
		ORDER BY t.date DESC, t.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.AccountID, &transaction.Kind,
			&transaction.Amount, &transaction.Description, &transaction.Date, &transaction.PaymentMethod,
			&transaction.CategoryID, &transaction.CategoryName, &transaction.ClientReference,
			&transaction.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// MonthlyTotals sums income and expense amounts for one calendar month.
// Months with no transactions read as zero on both sides.
func (r *LedgerRepository) MonthlyTotals(ctx context.Context, userID string, month time.Month, year int) (decimal.Decimal, decimal.Decimal, error) {
	var income, expense decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3`,
		userID, int(month), year).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return income, expense, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func safeRollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Printf("Error during transaction rollback: %v", err)
	}
}
