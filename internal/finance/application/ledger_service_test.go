package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
	"github.com/aylton-yh/real-balance/internal/finance/infrastructure"
)

func newLedgerFixture() (*infrastructure.MockLedgerRepository, *LedgerService) {
	repo := &infrastructure.MockLedgerRepository{
		Balances: map[int64]decimal.Decimal{
			1: decimal.NewFromInt(1000),
		},
	}
	accountService := &MockAccountService{
		Owners: map[int64]string{1: "user-1", 2: "user-2"},
	}
	categoryService := &MockCategoryService{
		IncomeCategories:  map[int64]struct{}{10: {}},
		ExpenseCategories: map[int64]struct{}{20: {}},
	}
	return repo, NewLedgerService(repo, accountService, categoryService)
}

func TestRecordTransaction_IncomeIncreasesBalance(t *testing.T) {
	repo, service := newLedgerFixture()

	created, inserted, err := service.RecordTransaction(context.Background(), NewTransaction{
		UserID:      "user-1",
		AccountID:   1,
		CategoryID:  10,
		Kind:        domain.KindIncome,
		Amount:      decimal.NewFromInt(500),
		Description: "Salário",
		Date:        time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, created.ID)
	assert.True(t, repo.Balances[1].Equal(decimal.NewFromInt(1500)),
		"expected balance 1500, got: %v", repo.Balances[1])
	assert.Len(t, repo.Transactions, 1)
	assert.Len(t, repo.Activities, 1)
}

func TestRecordTransaction_ExpenseMayDriveBalanceNegative(t *testing.T) {
	repo, service := newLedgerFixture()

	_, inserted, err := service.RecordTransaction(context.Background(), NewTransaction{
		UserID:      "user-1",
		AccountID:   1,
		CategoryID:  20,
		Kind:        domain.KindExpense,
		Amount:      decimal.NewFromInt(2000),
		Description: "Renda da casa",
		Date:        time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.True(t, repo.Balances[1].Equal(decimal.NewFromInt(-1000)),
		"no overdraft floor: expected balance -1000, got: %v", repo.Balances[1])
}

func TestRecordTransaction_RejectsNonPositiveAmount(t *testing.T) {
	repo, service := newLedgerFixture()

	_, _, err := service.RecordTransaction(context.Background(), NewTransaction{
		UserID:     "user-1",
		AccountID:  1,
		CategoryID: 10,
		Kind:       domain.KindIncome,
		Amount:     decimal.Zero,
		Date:       time.Now(),
	})

	assert.ErrorIs(t, err, financeErrors.ErrInvalidAmount)
	assert.Empty(t, repo.Transactions)
	assert.Empty(t, repo.Activities)
	assert.True(t, repo.Balances[1].Equal(decimal.NewFromInt(1000)),
		"rejected request must not change the balance, got: %v", repo.Balances[1])
}

func TestRecordTransaction_ForeignAccountIsNotFound(t *testing.T) {
	repo, service := newLedgerFixture()

	_, _, err := service.RecordTransaction(context.Background(), NewTransaction{
		UserID:     "user-1",
		AccountID:  2,
		CategoryID: 10,
		Kind:       domain.KindIncome,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Now(),
	})

	assert.ErrorIs(t, err, financeErrors.ErrAccountNotFound)
	assert.Empty(t, repo.Transactions)
}

func TestRecordTransaction_CategoryKindMismatch(t *testing.T) {
	repo, service := newLedgerFixture()

	// 20 is an expense category, the transaction claims income.
	_, _, err := service.RecordTransaction(context.Background(), NewTransaction{
		UserID:     "user-1",
		AccountID:  1,
		CategoryID: 20,
		Kind:       domain.KindIncome,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Now(),
	})

	assert.ErrorIs(t, err, financeErrors.ErrCategoryMismatch)
	assert.Empty(t, repo.Transactions)
}

func TestRecordTransaction_WritesActivityEntry(t *testing.T) {
	repo, service := newLedgerFixture()

	_, _, err := service.RecordTransaction(context.Background(), NewTransaction{
		UserID:      "user-1",
		AccountID:   1,
		CategoryID:  10,
		Kind:        domain.KindIncome,
		Amount:      decimal.NewFromFloat(250.50),
		Description: "Venda de artigos",
		Date:        time.Now(),
	})

	assert.NoError(t, err)
	assert.Len(t, repo.Activities, 1)
	entry := repo.Activities[0]
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, "Receita adicionada: Venda de artigos", entry.Description)
	assert.Equal(t, "Receitas", entry.Screen)
	assert.True(t, entry.Amount.Equal(decimal.NewFromFloat(250.50)))
}

func TestRecordTransaction_ReplaysClientReference(t *testing.T) {
	repo, service := newLedgerFixture()

	request := NewTransaction{
		UserID:          "user-1",
		AccountID:       1,
		CategoryID:      10,
		Kind:            domain.KindIncome,
		Amount:          decimal.NewFromInt(300),
		Description:     "Transferência recebida",
		Date:            time.Now(),
		ClientReference: "ref-123",
	}

	first, inserted, err := service.RecordTransaction(context.Background(), request)
	assert.NoError(t, err)
	assert.True(t, inserted)

	second, inserted, err := service.RecordTransaction(context.Background(), request)
	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first.ID, second.ID)

	assert.Len(t, repo.Transactions, 1)
	assert.True(t, repo.Balances[1].Equal(decimal.NewFromInt(1300)),
		"replay must not adjust the balance twice, got: %v", repo.Balances[1])
}

func TestRecordTransaction_InfrastructureFailureIsWrapped(t *testing.T) {
	repo, service := newLedgerFixture()
	repo.RecordErr = errors.New("connection reset")

	_, _, err := service.RecordTransaction(context.Background(), NewTransaction{
		UserID:     "user-1",
		AccountID:  1,
		CategoryID: 10,
		Kind:       domain.KindIncome,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Now(),
	})

	assert.True(t, financeErrors.IsWriteFailedError(err), "expected write failure, got: %v", err)
	assert.False(t, financeErrors.IsValidationError(err))
}

func TestGetUserTransactions_EmptyLedgerIsNotNil(t *testing.T) {
	_, service := newLedgerFixture()

	transactions, err := service.GetUserTransactions(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.NotNil(t, transactions)
	assert.Empty(t, transactions)
}
