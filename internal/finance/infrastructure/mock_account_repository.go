package infrastructure

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

type MockAccountRepository struct {
	Accounts []domain.Account
}

func (m *MockAccountRepository) Save(_ context.Context, account *domain.Account) error {
	account.ID = int64(len(m.Accounts) + 1)
	account.CurrentBalance = account.OpeningBalance
	m.Accounts = append(m.Accounts, *account)
	return nil
}

func (m *MockAccountRepository) FindByUser(_ context.Context, userID string) ([]domain.Account, error) {
	var filtered []domain.Account
	for _, account := range m.Accounts {
		if account.UserID == userID {
			filtered = append(filtered, account)
		}
	}
	return filtered, nil
}

func (m *MockAccountRepository) ExistsForUser(_ context.Context, accountID int64, userID string) (bool, error) {
	for _, account := range m.Accounts {
		if account.ID == accountID && account.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) TotalBalance(_ context.Context, userID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, account := range m.Accounts {
		if account.UserID == userID {
			total = total.Add(account.CurrentBalance)
		}
	}
	return total, nil
}
