package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

type mockActivityRepository struct {
	entries map[string][]domain.ActivityEntry
	trimErr error
	trimmed int
}

func newMockActivityRepository() *mockActivityRepository {
	return &mockActivityRepository{entries: map[string][]domain.ActivityEntry{}}
}

func (m *mockActivityRepository) Save(_ context.Context, entry *domain.ActivityEntry) error {
	entry.ID = int64(len(m.entries[entry.UserID]) + 1)
	m.entries[entry.UserID] = append(m.entries[entry.UserID], *entry)
	return nil
}

func (m *mockActivityRepository) FindRecentByUser(_ context.Context, userID string, limit int) ([]domain.ActivityEntry, error) {
	all := m.entries[userID]
	if len(all) <= limit {
		return all, nil
	}
	return all[len(all)-limit:], nil
}

func (m *mockActivityRepository) TrimToCap(_ context.Context, userID string, cap int) error {
	if m.trimErr != nil {
		return m.trimErr
	}
	if all := m.entries[userID]; len(all) > cap {
		m.entries[userID] = all[len(all)-cap:]
	}
	return nil
}

func (m *mockActivityRepository) TrimAllToCap(ctx context.Context, cap int) error {
	m.trimmed++
	for userID := range m.entries {
		if err := m.TrimToCap(ctx, userID, cap); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockActivityRepository) ClearForUser(_ context.Context, userID string) error {
	delete(m.entries, userID)
	return nil
}

func TestLogActivity_DefaultsKindAndScreen(t *testing.T) {
	repo := newMockActivityRepository()
	service := NewActivityService(repo)

	entry := domain.ActivityEntry{UserID: "user-1", Description: "Sessão iniciada"}
	assert.NoError(t, service.LogActivity(context.Background(), &entry))

	saved := repo.entries["user-1"][0]
	assert.Equal(t, "sistema", saved.Kind)
	assert.Equal(t, "Sistema", saved.Screen)
}

func TestLogActivity_RequiresDescription(t *testing.T) {
	repo := newMockActivityRepository()
	service := NewActivityService(repo)

	err := service.LogActivity(context.Background(), &domain.ActivityEntry{UserID: "user-1"})
	assert.Error(t, err)
	assert.Empty(t, repo.entries["user-1"])
}

func TestLogActivity_TrimFailureDoesNotFailTheWrite(t *testing.T) {
	repo := newMockActivityRepository()
	repo.trimErr = assert.AnError
	service := NewActivityService(repo)

	entry := domain.ActivityEntry{UserID: "user-1", Description: "Sessão iniciada"}
	assert.NoError(t, service.LogActivity(context.Background(), &entry))
	assert.Len(t, repo.entries["user-1"], 1)
}

func TestLogActivity_KeepsLogAtRetentionCap(t *testing.T) {
	repo := newMockActivityRepository()
	service := NewActivityService(repo)

	for i := 0; i < domain.ActivityRetentionCap+25; i++ {
		entry := domain.ActivityEntry{UserID: "user-1", Description: fmt.Sprintf("Entrada %d", i)}
		assert.NoError(t, service.LogActivity(context.Background(), &entry))
	}

	assert.Len(t, repo.entries["user-1"], domain.ActivityRetentionCap)
	// the oldest entries are the ones that fall off
	newest := repo.entries["user-1"][domain.ActivityRetentionCap-1]
	assert.Equal(t, fmt.Sprintf("Entrada %d", domain.ActivityRetentionCap+24), newest.Description)
}

func TestEnforceRetention_TrimsEveryUser(t *testing.T) {
	repo := newMockActivityRepository()
	service := NewActivityService(repo)

	for i := 0; i < 3; i++ {
		entry := domain.ActivityEntry{UserID: "user-1", Description: "Entrada"}
		assert.NoError(t, service.LogActivity(context.Background(), &entry))
	}

	assert.NoError(t, service.EnforceRetention(context.Background()))
	assert.Equal(t, 1, repo.trimmed)
}
