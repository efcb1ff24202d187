package service

import (
	"context"
	"fmt"
	"time"

	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
)

type profileService struct {
	users     repository.UserRepo
	reminders repository.ReminderRepo
	observer  UseCaseObserver
}

func NewProfileService(users repository.UserRepo, reminders repository.ReminderRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		users:     users,
		reminders: reminders,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *profileService) Register(ctx context.Context, u *domain.User) error {
	start := time.Now()
	err := s.users.Upsert(ctx, u)
	observe(ctx, s.observer, "register_user", start, err, map[string]any{"user_id": u.ID})
	if err != nil {
		return fmt.Errorf("registering user %d: %w", u.ID, err)
	}
	return nil
}

func (s *profileService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *profileService) SetSleepGoal(ctx context.Context, userID int64, hours float64) error {
	if hours <= 0 || hours > 24 {
		return fmt.Errorf("sleep goal %g out of range (0, 24]", hours)
	}
	start := time.Now()
	err := s.users.SetSleepGoal(ctx, userID, hours)
	observe(ctx, s.observer, "set_sleep_goal", start, err, map[string]any{
		"user_id": userID,
		"hours":   hours,
	})
	return err
}

func (s *profileService) SetWakeTime(ctx context.Context, userID int64, clock domain.Clock) error {
	start := time.Now()
	err := s.users.SetWakeTime(ctx, userID, clock.String())
	observe(ctx, s.observer, "set_wake_time", start, err, map[string]any{
		"user_id": userID,
		"time":    clock.String(),
	})
	return err
}

func (s *profileService) SetCity(ctx context.Context, userID int64, city string) error {
	start := time.Now()
	err := s.users.SetCity(ctx, userID, city)
	observe(ctx, s.observer, "set_city", start, err, map[string]any{
		"user_id": userID,
		"city":    city,
	})
	return err
}

func (s *profileService) SetReminderTime(ctx context.Context, userID int64, clock domain.Clock) error {
	start := time.Now()
	err := s.reminders.Upsert(ctx, userID, clock.String())
	observe(ctx, s.observer, "set_reminder_time", start, err, map[string]any{
		"user_id": userID,
		"time":    clock.String(),
	})
	return err
}

func (s *profileService) RemoveReminder(ctx context.Context, userID int64) error {
	start := time.Now()
	err := s.reminders.Delete(ctx, userID)
	observe(ctx, s.observer, "remove_reminder", start, err, map[string]any{"user_id": userID})
	return err
}

func (s *profileService) Reminder(ctx context.Context, userID int64) (*domain.Reminder, error) {
	return s.reminders.Get(ctx, userID)
}
