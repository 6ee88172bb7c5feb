package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

func sampleTransaction() domain.Transaction {
	return domain.Transaction{
		ID:            "1b7e9c58-0000-4000-8000-000000000001",
		UserID:        "user-1",
		AccountID:     1,
		Kind:          domain.KindIncome,
		Amount:        decimal.NewFromInt(1000),
		Description:   "Salário",
		Date:          time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "transferencia",
		CategoryID:    10,
	}
}

func sampleActivity() domain.ActivityEntry {
	amount := decimal.NewFromInt(1000)
	return domain.ActivityEntry{
		UserID:      "user-1",
		Description: "Receita adicionada: Salário",
		Kind:        "income",
		Screen:      "Receitas",
		Amount:      &amount,
	}
}

func TestRecord_CommitsAllThreeWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE accounts SET current_balance").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO activity_log").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewLedgerRepository(db)
	created, inserted, err := repo.Record(context.Background(), sampleTransaction(), sampleActivity())

	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_RollsBackWhenBalanceUpdateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE accounts SET current_balance").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	repo := NewLedgerRepository(db)
	_, _, err = repo.Record(context.Background(), sampleTransaction(), sampleActivity())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_RollsBackWhenAccountDoesNotMatchUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE accounts SET current_balance").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewLedgerRepository(db)
	_, _, err = repo.Record(context.Background(), sampleTransaction(), sampleActivity())

	assert.ErrorIs(t, err, financeErrors.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_RollsBackWhenActivityInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE accounts SET current_balance").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO activity_log").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := NewLedgerRepository(db)
	_, _, err = repo.Record(context.Background(), sampleTransaction(), sampleActivity())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_ReplaysDuplicateClientReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	transaction := sampleTransaction()
	transaction.ClientReference = "ref-123"

	columns := []string{"id", "user_id", "account_id", "kind", "amount", "description", "date",
		"payment_method", "category_id", "client_reference", "created_at"}
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM transactions").
		WithArgs("user-1", "ref-123").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			transaction.ID, transaction.UserID, transaction.AccountID, string(transaction.Kind),
			"1000", transaction.Description, transaction.Date, transaction.PaymentMethod,
			transaction.CategoryID, "ref-123", time.Now(),
		))
	mock.ExpectCommit()

	repo := NewLedgerRepository(db)
	created, inserted, err := repo.Record(context.Background(), transaction, sampleActivity())

	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, transaction.ID, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_ReplaysWhenConcurrentWriterWinsTheReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	transaction := sampleTransaction()
	transaction.ClientReference = "ref-123"

	columns := []string{"id", "user_id", "account_id", "kind", "amount", "description", "date",
		"payment_method", "category_id", "client_reference", "created_at"}
	winnerID := "1b7e9c58-0000-4000-8000-000000000002"

	// The pre-check sees nothing, the insert then trips the unique constraint
	// because another writer committed the same reference in between.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM transactions").
		WithArgs("user-1", "ref-123").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "transactions_user_id_client_reference_key"})
	mock.ExpectRollback()
	mock.ExpectQuery("SELECT (.+) FROM transactions").
		WithArgs("user-1", "ref-123").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			winnerID, transaction.UserID, transaction.AccountID, string(transaction.Kind),
			"1000", transaction.Description, transaction.Date, transaction.PaymentMethod,
			transaction.CategoryID, "ref-123", time.Now(),
		))

	repo := NewLedgerRepository(db)
	created, inserted, err := repo.Record(context.Background(), transaction, sampleActivity())

	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, winnerID, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthlyTotals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("user-1", 8, 2026).
		WillReturnRows(sqlmock.NewRows([]string{"income", "expense"}).AddRow("1200", "350"))

	repo := NewLedgerRepository(db)
	income, expense, err := repo.MonthlyTotals(context.Background(), "user-1", time.August, 2026)

	assert.NoError(t, err)
	assert.True(t, income.Equal(decimal.NewFromInt(1200)))
	assert.True(t, expense.Equal(decimal.NewFromInt(350)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
