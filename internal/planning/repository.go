package planning

import (
	"context"
	"database/sql"
)

type planningRepository struct {
	db *sql.DB
}

func NewPlanningRepository(db *sql.DB) Repository {
	return &planningRepository{db: db}
}

func (r *planningRepository) saveGoal(ctx context.Context, goal *Goal) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO goals (user_id, name, target_amount, deadline, icon)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at`,
		goal.UserID, goal.Name, goal.TargetAmount, goal.Deadline, goal.Icon,
	).Scan(&goal.ID, &goal.CreatedAt)
}

func (r *planningRepository) findGoalsByUser(ctx context.Context, userID string) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, target_amount, deadline, COALESCE(icon, ''), created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var goal Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.Deadline,
			&goal.Icon, &goal.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *planningRepository) saveSimulation(ctx context.Context, simulation *RatioSimulation) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO ratio_simulations (user_id, monthly_income, needs, wants, savings)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		simulation.UserID, simulation.MonthlyIncome, simulation.Needs, simulation.Wants, simulation.Savings,
	).Scan(&simulation.ID, &simulation.CreatedAt)
}
