package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ActivityRetentionCap bounds how many activity entries a user keeps; older
// entries are trimmed. The cap is enforced server-side.
const ActivityRetentionCap = 500

// ActivityEntry is a write-once audit record.
type ActivityEntry struct {
	ID                     int64            `json:"id"`
	UserID                 string           `json:"user_id"`
	Description            string           `json:"description"`
	Kind                   string           `json:"kind"`
	Screen                 string           `json:"screen"`
	Amount                 *decimal.Decimal `json:"amount,omitempty"`
	ReferenceTransactionID *string          `json:"reference_transaction_id,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
}

type ActivityRepository interface {
	Save(ctx context.Context, entry *ActivityEntry) error
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]ActivityEntry, error)
	TrimToCap(ctx context.Context, userID string, cap int) error
	TrimAllToCap(ctx context.Context, cap int) error
	ClearForUser(ctx context.Context, userID string) error
}
