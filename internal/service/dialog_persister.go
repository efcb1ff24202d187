package service

import (
	"context"

	"github.com/akozyreva/somnus/internal/domain"
)

// DialogPersister bundles the single-write operations the dialog
// validators persist through, so the dialog package needs one dependency
// instead of three services.
type DialogPersister struct {
	Profile ProfileService
	Sleep   SleepService
	Data    DataService
}

func (p DialogPersister) SetReminderTime(ctx context.Context, userID int64, clock domain.Clock) error {
	return p.Profile.SetReminderTime(ctx, userID, clock)
}

func (p DialogPersister) SetSleepGoal(ctx context.Context, userID int64, hours float64) error {
	return p.Profile.SetSleepGoal(ctx, userID, hours)
}

func (p DialogPersister) SetWakeTime(ctx context.Context, userID int64, clock domain.Clock) error {
	return p.Profile.SetWakeTime(ctx, userID, clock)
}

func (p DialogPersister) RateSleepQuality(ctx context.Context, userID int64, rating int) error {
	return p.Sleep.RateSleepQuality(ctx, userID, rating)
}

func (p DialogPersister) RateMood(ctx context.Context, userID int64, rating int) error {
	return p.Sleep.RateMood(ctx, userID, rating)
}

func (p DialogPersister) DeleteAllData(ctx context.Context, userID int64) error {
	return p.Data.DeleteAllData(ctx, userID)
}
