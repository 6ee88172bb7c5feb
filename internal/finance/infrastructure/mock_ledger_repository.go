package infrastructure

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

// MockLedgerRepository keeps the ledger in memory and applies the same
// all-or-nothing semantics as the real repository.
type MockLedgerRepository struct {
	Balances     map[int64]decimal.Decimal
	Transactions []domain.Transaction
	Activities   []domain.ActivityEntry
	RecordErr    error
}

func (m *MockLedgerRepository) Record(_ context.Context, transaction domain.Transaction, activity domain.ActivityEntry) (*domain.Transaction, bool, error) {
	if m.RecordErr != nil {
		return nil, false, m.RecordErr
	}

	if transaction.ClientReference != "" {
		for i := range m.Transactions {
			existing := m.Transactions[i]
			if existing.UserID == transaction.UserID && existing.ClientReference == transaction.ClientReference {
				return &existing, false, nil
			}
		}
	}

	transaction.CreatedAt = time.Now()
	m.Transactions = append(m.Transactions, transaction)

	if m.Balances == nil {
		m.Balances = map[int64]decimal.Decimal{}
	}
	m.Balances[transaction.AccountID] = m.Balances[transaction.AccountID].Add(transaction.SignedAmount())

	m.Activities = append(m.Activities, activity)
	return &transaction, true, nil
}

func (m *MockLedgerRepository) FindByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	var filtered []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}

func (m *MockLedgerRepository) MonthlyTotals(_ context.Context, userID string, month time.Month, year int) (decimal.Decimal, decimal.Decimal, error) {
	income, expense := decimal.Zero, decimal.Zero
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID || transaction.Date.Month() != month || transaction.Date.Year() != year {
			continue
		}
		if transaction.Kind == domain.KindIncome {
			income = income.Add(transaction.Amount)
		} else {
			expense = expense.Add(transaction.Amount)
		}
	}
	return income, expense, nil
}
