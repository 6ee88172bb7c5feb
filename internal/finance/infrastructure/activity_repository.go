package infrastructure

import (
	"context"
	"database/sql"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Save(ctx context.Context, entry *domain.ActivityEntry) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO activity_log (user_id, description, kind, screen, amount, reference_transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		entry.UserID, entry.Description, entry.Kind, entry.Screen, entry.Amount, entry.ReferenceTransactionID,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *ActivityRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]domain.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, description, kind, screen, amount, reference_transaction_id, created_at
		FROM activity_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var entry domain.ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Description, &entry.Kind, &entry.Screen,
			&entry.Amount, &entry.ReferenceTransactionID, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// TrimToCap deletes the user's oldest entries beyond the retention cap.
func (r *ActivityRepository) TrimToCap(ctx context.Context, userID string, cap int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM activity_log
		WHERE user_id = $1
		  AND id NOT IN (
			SELECT id FROM activity_log
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)`,
		userID, cap)
	return err
}

// TrimAllToCap applies the retention cap across every user in one statement.
func (r *ActivityRepository) TrimAllToCap(ctx context.Context, cap int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM activity_log
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY created_at DESC) AS position
				FROM activity_log
			) ranked
			WHERE ranked.position > $1
		)`,
		cap)
	return err
}

func (r *ActivityRepository) ClearForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM activity_log WHERE user_id = $1", userID)
	return err
}
