package planning

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target the user is working towards.
type Goal struct {
	ID           int64           `json:"id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
	Icon         string          `json:"icon,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// RatioSimulation is a stored 50/30/20 split of a monthly income.
type RatioSimulation struct {
	ID            int64           `json:"id"`
	UserID        string          `json:"user_id"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	Needs         decimal.Decimal `json:"needs"`
	Wants         decimal.Decimal `json:"wants"`
	Savings       decimal.Decimal `json:"savings"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Repository interface {
	saveGoal(ctx context.Context, goal *Goal) error
	findGoalsByUser(ctx context.Context, userID string) ([]Goal, error)
	saveSimulation(ctx context.Context, simulation *RatioSimulation) error
}
