package domain

import "context"

// Category is a tagged variant over the two category tables. Income and
// expense categories are stored separately; Kind records which table a value
// came from, so a transaction can only ever reference a category of its own
// kind. A nil UserID marks a global category visible to every user.
type Category struct {
	ID     int64           `json:"id"`
	Kind   TransactionKind `json:"kind"`
	Name   string          `json:"name"`
	Icon   string          `json:"icon,omitempty"`
	Color  string          `json:"color,omitempty"`
	UserID *string         `json:"user_id,omitempty"`
}

func (c *Category) Global() bool {
	return c.UserID == nil
}

type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindForUser(ctx context.Context, userID string, kind TransactionKind) ([]Category, error)
	// ExistsForUser reports whether a category of the given kind exists and is
	// either global or owned by the user.
	ExistsForUser(ctx context.Context, categoryID int64, kind TransactionKind, userID string) (bool, error)
}
