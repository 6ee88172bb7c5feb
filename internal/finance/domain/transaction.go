package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is an immutable ledger entry. Once recorded it is never edited
// or deleted; the owning account's current balance carries its signed amount.
type Transaction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	AccountID       int64           `json:"account_id"`
	Kind            TransactionKind `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"`
	PaymentMethod   string          `json:"payment_method"`
	CategoryID      int64           `json:"category_id"`
	CategoryName    string          `json:"category_name,omitempty"`
	ClientReference string          `json:"client_reference,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SignedAmount is the delta this transaction applies to its account balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t *Transaction) Validate() error {
	if !t.Kind.Valid() {
		return financeErrors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if !t.Amount.IsPositive() {
		return financeErrors.ErrInvalidAmount
	}
	if len(t.Description) > 200 {
		return financeErrors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}

// LedgerRepository owns the transactional write path: the transaction insert,
// the balance update and the activity entry commit or roll back as one unit.
type LedgerRepository interface {
	Record(ctx context.Context, transaction Transaction, activity ActivityEntry) (*Transaction, bool, error)
	FindByUser(ctx context.Context, userID string) ([]Transaction, error)
	MonthlyTotals(ctx context.Context, userID string, month time.Month, year int) (income, expense decimal.Decimal, err error)
}
