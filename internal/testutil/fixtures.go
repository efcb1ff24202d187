package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/akozyreva/somnus/internal/domain"
)

// User options
type UserOption func(*domain.User)

func WithCity(city string) UserOption {
	return func(u *domain.User) {
		u.CityName = city
		u.HasLocation = true
	}
}

func WithTimezone(zone string) UserOption {
	return func(u *domain.User) {
		u.Timezone = zone
	}
}

func WithSleepGoal(hours float64) UserOption {
	return func(u *domain.User) {
		u.SleepGoal = &hours
	}
}

func WithWakeTime(clock string) UserOption {
	return func(u *domain.User) {
		u.WakeTime = &clock
	}
}

func NewTestUser(id int64, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        id,
		Username:  "tester",
		FirstName: "Test",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// SleepRecord options
type RecordOption func(*domain.SleepRecord)

func WithWake(t time.Time) RecordOption {
	return func(r *domain.SleepRecord) {
		r.WakeTime = &t
	}
}

func WithQuality(rating int) RecordOption {
	return func(r *domain.SleepRecord) {
		r.Quality = &rating
	}
}

func WithMood(rating int) RecordOption {
	return func(r *domain.SleepRecord) {
		r.Mood = &rating
	}
}

func NewTestRecord(userID int64, sleepAt time.Time, opts ...RecordOption) *domain.SleepRecord {
	r := &domain.SleepRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		SleepTime: sleepAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestReminder(userID int64, clock string) *domain.Reminder {
	now := time.Now().UTC()
	return &domain.Reminder{
		UserID:       userID,
		ReminderTime: clock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
