package service

import (
	"context"
	"errors"
	"time"

	"github.com/akozyreva/somnus/internal/domain"
)

// ErrNoOpenRecord is returned when wake-up is marked without an open
// sleep record.
var ErrNoOpenRecord = errors.New("no open sleep record")

type SleepService interface {
	// MarkSleep opens a sleep record at now. When a record is already
	// open its sleep time moves to now instead (last-bedtime-wins);
	// created reports which of the two happened.
	MarkSleep(ctx context.Context, userID int64, now time.Time) (created bool, err error)
	// MarkWake closes the open record at now. ErrNoOpenRecord when the
	// user is not currently marked asleep.
	MarkWake(ctx context.Context, userID int64, now time.Time) error
	// LastRecord returns the user's most recent record, open or closed.
	LastRecord(ctx context.Context, userID int64) (*domain.SleepRecord, error)
	RateSleepQuality(ctx context.Context, userID int64, rating int) error
	RateMood(ctx context.Context, userID int64, rating int) error
}

type ProfileService interface {
	// Register inserts the user or refreshes identity fields.
	Register(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID int64) (*domain.User, error)
	SetSleepGoal(ctx context.Context, userID int64, hours float64) error
	SetWakeTime(ctx context.Context, userID int64, clock domain.Clock) error
	SetCity(ctx context.Context, userID int64, city string) error
	SetReminderTime(ctx context.Context, userID int64, clock domain.Clock) error
	RemoveReminder(ctx context.Context, userID int64) error
	Reminder(ctx context.Context, userID int64) (*domain.Reminder, error)
}

type DataService interface {
	// DeleteAllData removes the user's sleep records, reminder, and user
	// row in that order, inside one transaction.
	DeleteAllData(ctx context.Context, userID int64) error
	// ExportCSV renders all of the user's sleep records as CSV.
	ExportCSV(ctx context.Context, userID int64) ([]byte, error)
	// ListUsers returns every registered user, for admin tooling.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
