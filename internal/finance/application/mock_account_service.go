package application

import "context"

// MockAccountService maps account ids to their owning user.
type MockAccountService struct {
	Owners map[int64]string
}

func (m *MockAccountService) DoesAccountExist(_ context.Context, accountID int64, userID string) (bool, error) {
	owner, ok := m.Owners[accountID]
	return ok && owner == userID, nil
}
