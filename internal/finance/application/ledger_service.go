package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type AccountServiceInterface interface {
	DoesAccountExist(ctx context.Context, accountID int64, userID string) (bool, error)
}

type CategoryServiceInterface interface {
	DoesCategoryExist(ctx context.Context, categoryID int64, kind domain.TransactionKind, userID string) (bool, error)
}

// NewTransaction carries a validated-not-yet request to record one ledger
// entry. ClientReference is optional; when set, resubmitting the same
// reference returns the already-recorded transaction instead of double
// posting.
type NewTransaction struct {
	UserID          string
	AccountID       int64
	CategoryID      int64
	Kind            domain.TransactionKind
	Amount          decimal.Decimal
	Description     string
	Date            time.Time
	PaymentMethod   string
	ClientReference string
}

type LedgerService struct {
	repo            domain.LedgerRepository
	accountService  AccountServiceInterface
	categoryService CategoryServiceInterface
}

func NewLedgerService(repo domain.LedgerRepository, accountService AccountServiceInterface, categoryService CategoryServiceInterface) *LedgerService {
	return &LedgerService{repo: repo, accountService: accountService, categoryService: categoryService}
}

// RecordTransaction validates the request and then executes the atomic write:
// transaction insert, account balance adjustment and activity entry commit as
// one unit. Validation happens entirely before the unit begins, so a rejected
// request never touches stored state. The bool result is false when a
// duplicate client reference was replayed.
func (s *LedgerService) RecordTransaction(ctx context.Context, req NewTransaction) (*domain.Transaction, bool, error) {
	transaction := domain.Transaction{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		AccountID:       req.AccountID,
		Kind:            req.Kind,
		Amount:          req.Amount.Round(2),
		Description:     req.Description,
		Date:            req.Date,
		PaymentMethod:   req.PaymentMethod,
		CategoryID:      req.CategoryID,
		ClientReference: req.ClientReference,
	}
	if err := transaction.Validate(); err != nil {
		return nil, false, err
	}

	exists, err := s.accountService.DoesAccountExist(ctx, req.AccountID, req.UserID)
	if err != nil {
		return nil, false, financeErrors.NewWriteFailedError(err)
	}
	if !exists {
		return nil, false, financeErrors.ErrAccountNotFound
	}

	exists, err = s.categoryService.DoesCategoryExist(ctx, req.CategoryID, req.Kind, req.UserID)
	if err != nil {
		return nil, false, financeErrors.NewWriteFailedError(err)
	}
	if !exists {
		return nil, false, financeErrors.ErrCategoryMismatch
	}

	amount := transaction.Amount
	activity := domain.ActivityEntry{
		UserID:      req.UserID,
		Description: activityDescription(req.Kind, req.Description),
		Kind:        string(req.Kind),
		Screen:      activityScreen(req.Kind),
		Amount:      &amount,
	}

	created, inserted, err := s.repo.Record(ctx, transaction, activity)
	if err != nil {
		if financeErrors.IsValidationError(err) {
			return nil, false, err
		}
		return nil, false, financeErrors.NewWriteFailedError(err)
	}
	return created, inserted, nil
}

func (s *LedgerService) GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, financeErrors.NewQueryFailedError(err)
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func activityDescription(kind domain.TransactionKind, description string) string {
	if kind == domain.KindIncome {
		return fmt.Sprintf("Receita adicionada: %s", description)
	}
	return fmt.Sprintf("Despesa adicionada: %s", description)
}

func activityScreen(kind domain.TransactionKind) string {
	if kind == domain.KindIncome {
		return "Receitas"
	}
	return "Despesas"
}
