package planning

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidGoal   = errors.New("goal needs a name and a positive target amount")
	ErrInvalidIncome = errors.New("monthly income must be a positive number")
)

// The simulation splits a monthly income with the 50/30/20 rule. The split is
// computed here rather than trusted from the client.
var (
	needsRatio   = decimal.NewFromFloat(0.5)
	wantsRatio   = decimal.NewFromFloat(0.3)
	savingsRatio = decimal.NewFromFloat(0.2)
)

type Service interface {
	CreateGoal(ctx context.Context, goal *Goal) error
	GetUserGoals(ctx context.Context, userID string) ([]Goal, error)
	SimulateRatios(ctx context.Context, userID string, monthlyIncome decimal.Decimal) (*RatioSimulation, error)
}

type service struct {
	repo Repository
}

func NewPlanningService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateGoal(ctx context.Context, goal *Goal) error {
	if goal.Name == "" || !goal.TargetAmount.IsPositive() {
		return ErrInvalidGoal
	}
	return s.repo.saveGoal(ctx, goal)
}

func (s *service) GetUserGoals(ctx context.Context, userID string) ([]Goal, error) {
	goals, err := s.repo.findGoalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		return []Goal{}, nil
	}
	return goals, nil
}

func (s *service) SimulateRatios(ctx context.Context, userID string, monthlyIncome decimal.Decimal) (*RatioSimulation, error) {
	if !monthlyIncome.IsPositive() {
		return nil, ErrInvalidIncome
	}

	simulation := &RatioSimulation{
		UserID:        userID,
		MonthlyIncome: monthlyIncome.Round(2),
		Needs:         monthlyIncome.Mul(needsRatio).Round(2),
		Wants:         monthlyIncome.Mul(wantsRatio).Round(2),
		Savings:       monthlyIncome.Mul(savingsRatio).Round(2),
	}
	if err := s.repo.saveSimulation(ctx, simulation); err != nil {
		return nil, err
	}
	return simulation, nil
}
