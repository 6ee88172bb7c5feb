package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type DashboardStats struct {
	TotalBalance   decimal.Decimal `json:"total_balance"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	MonthlyExpense decimal.Decimal `json:"monthly_expense"`
}

// StatsService answers read-only dashboard questions. It never mutates state
// and never raises business-rule errors; an empty ledger reads as zeros.
type StatsService struct {
	accountRepo domain.AccountRepository
	ledgerRepo  domain.LedgerRepository
	now         func() time.Time
}

func NewStatsService(accountRepo domain.AccountRepository, ledgerRepo domain.LedgerRepository) *StatsService {
	return &StatsService{accountRepo: accountRepo, ledgerRepo: ledgerRepo, now: time.Now}
}

func (s *StatsService) GetDashboardStats(ctx context.Context, userID string) (*DashboardStats, error) {
	total, err := s.accountRepo.TotalBalance(ctx, userID)
	if err != nil {
		return nil, financeErrors.NewQueryFailedError(err)
	}

	now := s.now()
	income, expense, err := s.ledgerRepo.MonthlyTotals(ctx, userID, now.Month(), now.Year())
	if err != nil {
		return nil, financeErrors.NewQueryFailedError(err)
	}

	return &DashboardStats{
		TotalBalance:   total,
		MonthlyIncome:  income,
		MonthlyExpense: expense,
	}, nil
}

func (s *StatsService) GetMonthlyTotals(ctx context.Context, userID string, month time.Month, year int) (income, expense decimal.Decimal, err error) {
	income, expense, err = s.ledgerRepo.MonthlyTotals(ctx, userID, month, year)
	if err != nil {
		return decimal.Zero, decimal.Zero, financeErrors.NewQueryFailedError(err)
	}
	return income, expense, nil
}
