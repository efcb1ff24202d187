package repository

import (
	"context"
	"errors"
	"time"

	"github.com/akozyreva/somnus/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type UserRepo interface {
	// Upsert inserts the user or refreshes identity fields (username,
	// first/last name) for an existing row, leaving settings untouched.
	Upsert(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// ListWithCity returns users eligible for weather reminders.
	ListWithCity(ctx context.Context) ([]*domain.User, error)
	SetCity(ctx context.Context, id int64, city string) error
	SetTimezone(ctx context.Context, id int64, tz string) error
	SetSleepGoal(ctx context.Context, id int64, goalHours float64) error
	SetWakeTime(ctx context.Context, id int64, clock string) error
	Delete(ctx context.Context, id int64) error
}

type SleepRecordRepo interface {
	// UpsertOpen opens a sleep record at sleepTime, or moves the existing
	// open record's sleep time when one is already open (last-bedtime-wins).
	// Reports whether a new record was created.
	UpsertOpen(ctx context.Context, userID int64, sleepTime time.Time) (bool, error)
	GetOpen(ctx context.Context, userID int64) (*domain.SleepRecord, error)
	// Close stamps the open record with wakeTime. ErrNotFound when the
	// user has no open record.
	Close(ctx context.Context, userID int64, wakeTime time.Time) error
	GetLast(ctx context.Context, userID int64) (*domain.SleepRecord, error)
	GetLastClosed(ctx context.Context, userID int64) (*domain.SleepRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.SleepRecord, error)
	ListClosedRecent(ctx context.Context, userID int64, limit int) ([]*domain.SleepRecord, error)
	// SetQuality rates the most recently closed record. ErrNotFound when
	// the user has no closed records.
	SetQuality(ctx context.Context, userID int64, quality int) error
	SetMood(ctx context.Context, userID int64, mood int) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type ReminderRepo interface {
	Get(ctx context.Context, userID int64) (*domain.Reminder, error)
	Upsert(ctx context.Context, userID int64, clock string) error
	Delete(ctx context.Context, userID int64) error
	// ListUserIDs returns every user with an active reminder.
	ListUserIDs(ctx context.Context) ([]int64, error)
}
