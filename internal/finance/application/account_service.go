package application

import (
	"context"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type AccountService struct {
	repo domain.AccountRepository
}

func NewAccountService(repo domain.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

func (s *AccountService) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account.Name == "" {
		return financeErrors.NewValidationError("Account name is required")
	}
	if account.Kind != domain.AccountCash && account.Kind != domain.AccountBank {
		return financeErrors.NewValidationError("Account kind must be 'cash' or 'bank'")
	}
	if account.OpeningBalance.IsNegative() {
		return financeErrors.NewValidationError("Opening balance must not be negative")
	}
	// current balance starts equal to the opening balance; from here on only
	// the ledger writer moves it
	account.CurrentBalance = account.OpeningBalance
	return s.repo.Save(ctx, account)
}

func (s *AccountService) GetUserAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, financeErrors.NewQueryFailedError(err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *AccountService) DoesAccountExist(ctx context.Context, accountID int64, userID string) (bool, error) {
	return s.repo.ExistsForUser(ctx, accountID, userID)
}
