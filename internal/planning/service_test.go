package planning

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type mockRepository struct {
	goals       []Goal
	simulations []RatioSimulation
}

func (m *mockRepository) saveGoal(_ context.Context, goal *Goal) error {
	goal.ID = int64(len(m.goals) + 1)
	m.goals = append(m.goals, *goal)
	return nil
}

func (m *mockRepository) findGoalsByUser(_ context.Context, userID string) ([]Goal, error) {
	var filtered []Goal
	for _, goal := range m.goals {
		if goal.UserID == userID {
			filtered = append(filtered, goal)
		}
	}
	return filtered, nil
}

func (m *mockRepository) saveSimulation(_ context.Context, simulation *RatioSimulation) error {
	simulation.ID = int64(len(m.simulations) + 1)
	m.simulations = append(m.simulations, *simulation)
	return nil
}

func TestSimulateRatios(t *testing.T) {
	repo := &mockRepository{}
	service := NewPlanningService(repo)

	simulation, err := service.SimulateRatios(context.Background(), "user-1", decimal.NewFromInt(250000))
	assert.NoError(t, err)
	assert.True(t, simulation.Needs.Equal(decimal.NewFromInt(125000)), "needs: %v", simulation.Needs)
	assert.True(t, simulation.Wants.Equal(decimal.NewFromInt(75000)), "wants: %v", simulation.Wants)
	assert.True(t, simulation.Savings.Equal(decimal.NewFromInt(50000)), "savings: %v", simulation.Savings)
	assert.Len(t, repo.simulations, 1)
}

func TestSimulateRatios_SplitsAreRounded(t *testing.T) {
	service := NewPlanningService(&mockRepository{})

	simulation, err := service.SimulateRatios(context.Background(), "user-1", decimal.NewFromFloat(1000.33))
	assert.NoError(t, err)
	assert.Equal(t, "500.17", simulation.Needs.String())
	assert.Equal(t, "300.1", simulation.Wants.String())
	assert.Equal(t, "200.07", simulation.Savings.String())
}

func TestSimulateRatios_RejectsNonPositiveIncome(t *testing.T) {
	repo := &mockRepository{}
	service := NewPlanningService(repo)

	_, err := service.SimulateRatios(context.Background(), "user-1", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidIncome)
	assert.Empty(t, repo.simulations)
}

func TestCreateGoal(t *testing.T) {
	repo := &mockRepository{}
	service := NewPlanningService(repo)

	goal := Goal{UserID: "user-1", Name: "Carro novo", TargetAmount: decimal.NewFromInt(4500000)}
	assert.NoError(t, service.CreateGoal(context.Background(), &goal))
	assert.NotZero(t, goal.ID)

	invalid := Goal{UserID: "user-1", TargetAmount: decimal.NewFromInt(100)}
	assert.ErrorIs(t, service.CreateGoal(context.Background(), &invalid), ErrInvalidGoal)
}

func TestGetUserGoals_EmptyIsNotNil(t *testing.T) {
	service := NewPlanningService(&mockRepository{})

	goals, err := service.GetUserGoals(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)
}
