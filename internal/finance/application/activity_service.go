package application

import (
	"context"
	"log"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

const defaultActivityWindow = 20

type ActivityService struct {
	repo domain.ActivityRepository
}

func NewActivityService(repo domain.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// LogActivity appends a client-supplied audit entry, then trims the user's
// log back to the retention cap. The trim is best effort: a failed trim never
// fails the write.
func (s *ActivityService) LogActivity(ctx context.Context, entry *domain.ActivityEntry) error {
	if entry.Description == "" {
		return financeErrors.NewValidationError("Activity description is required")
	}
	if entry.Kind == "" {
		entry.Kind = "sistema"
	}
	if entry.Screen == "" {
		entry.Screen = "Sistema"
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		return err
	}
	if err := s.repo.TrimToCap(ctx, entry.UserID, domain.ActivityRetentionCap); err != nil {
		log.Printf("Error trimming activity log for user %s: %v", entry.UserID, err)
	}
	return nil
}

func (s *ActivityService) GetRecentActivities(ctx context.Context, userID string) ([]domain.ActivityEntry, error) {
	entries, err := s.repo.FindRecentByUser(ctx, userID, defaultActivityWindow)
	if err != nil {
		return nil, financeErrors.NewQueryFailedError(err)
	}
	if entries == nil {
		return []domain.ActivityEntry{}, nil
	}
	return entries, nil
}

func (s *ActivityService) ClearActivities(ctx context.Context, userID string) error {
	return s.repo.ClearForUser(ctx, userID)
}

// EnforceRetention trims every user's log to the cap; the scheduler calls
// this periodically so the cap holds even for entries written by the ledger
// writer itself.
func (s *ActivityService) EnforceRetention(ctx context.Context) error {
	return s.repo.TrimAllToCap(ctx, domain.ActivityRetentionCap)
}
