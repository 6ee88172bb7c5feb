package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Kind: KindIncome, Amount: decimal.NewFromInt(100)}
	assert.NoError(t, valid.Validate())

	noKind := Transaction{Amount: decimal.NewFromInt(100)}
	assert.Error(t, noKind.Validate())

	badKind := Transaction{Kind: "transfer", Amount: decimal.NewFromInt(100)}
	assert.Error(t, badKind.Validate())

	zero := Transaction{Kind: KindExpense, Amount: decimal.Zero}
	assert.ErrorIs(t, zero.Validate(), financeErrors.ErrInvalidAmount)

	negative := Transaction{Kind: KindExpense, Amount: decimal.NewFromInt(-5)}
	assert.ErrorIs(t, negative.Validate(), financeErrors.ErrInvalidAmount)

	longDescription := Transaction{
		Kind:        KindIncome,
		Amount:      decimal.NewFromInt(100),
		Description: strings.Repeat("a", 201),
	}
	assert.Error(t, longDescription.Validate())
}

func TestSignedAmount(t *testing.T) {
	income := Transaction{Kind: KindIncome, Amount: decimal.NewFromInt(100)}
	assert.True(t, income.SignedAmount().Equal(decimal.NewFromInt(100)))

	expense := Transaction{Kind: KindExpense, Amount: decimal.NewFromInt(100)}
	assert.True(t, expense.SignedAmount().Equal(decimal.NewFromInt(-100)))
}
