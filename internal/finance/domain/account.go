package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountCash AccountKind = "cash"
	AccountBank AccountKind = "bank"
)

// Account invariant: CurrentBalance always equals OpeningBalance plus the sum
// of signed transaction amounts recorded against it.
type Account struct {
	ID             int64           `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	Kind           AccountKind     `json:"kind"`
	BankName       string          `json:"bank_name,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Color          string          `json:"color,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type AccountRepository interface {
	Save(ctx context.Context, account *Account) error
	FindByUser(ctx context.Context, userID string) ([]Account, error)
	ExistsForUser(ctx context.Context, accountID int64, userID string) (bool, error)
	TotalBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}
