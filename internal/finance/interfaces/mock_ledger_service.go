package interfaces

import (
	"context"
	"time"

	"github.com/aylton-yh/real-balance/internal/finance/application"
	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

// MockLedgerService echoes back whatever the configured result is; handler
// tests steer it through the three fields.
type MockLedgerService struct {
	RecordErr      error
	Replayed       bool
	Transactions   []domain.Transaction
	LastRequest    application.NewTransaction
	RecordedCalled bool
}

func (m *MockLedgerService) RecordTransaction(_ context.Context, req application.NewTransaction) (*domain.Transaction, bool, error) {
	m.RecordedCalled = true
	m.LastRequest = req
	if m.RecordErr != nil {
		return nil, false, m.RecordErr
	}
	transaction := domain.Transaction{
		ID:          "1b7e9c58-0000-4000-8000-000000000001",
		UserID:      req.UserID,
		AccountID:   req.AccountID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
		CreatedAt:   time.Now(),
	}
	return &transaction, !m.Replayed, nil
}

func (m *MockLedgerService) GetUserTransactions(_ context.Context, userID string) ([]domain.Transaction, error) {
	var filtered []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}
