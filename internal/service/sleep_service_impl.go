package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
)

type sleepService struct {
	records  repository.SleepRecordRepo
	observer UseCaseObserver
}

func NewSleepService(records repository.SleepRecordRepo, observers ...UseCaseObserver) SleepService {
	return &sleepService{
		records:  records,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sleepService) MarkSleep(ctx context.Context, userID int64, now time.Time) (bool, error) {
	start := time.Now()
	created, err := s.records.UpsertOpen(ctx, userID, now)
	observe(ctx, s.observer, "mark_sleep", start, err, map[string]any{
		"user_id": userID,
		"created": created,
	})
	if err != nil {
		return false, fmt.Errorf("marking sleep for user %d: %w", userID, err)
	}
	return created, nil
}

func (s *sleepService) MarkWake(ctx context.Context, userID int64, now time.Time) error {
	start := time.Now()
	err := s.records.Close(ctx, userID, now)
	observe(ctx, s.observer, "mark_wake", start, err, map[string]any{"user_id": userID})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoOpenRecord
	}
	if err != nil {
		return fmt.Errorf("marking wake for user %d: %w", userID, err)
	}
	return nil
}

func (s *sleepService) LastRecord(ctx context.Context, userID int64) (*domain.SleepRecord, error) {
	return s.records.GetLast(ctx, userID)
}

func (s *sleepService) RateSleepQuality(ctx context.Context, userID int64, rating int) error {
	start := time.Now()
	err := s.records.SetQuality(ctx, userID, rating)
	observe(ctx, s.observer, "rate_sleep_quality", start, err, map[string]any{
		"user_id": userID,
		"rating":  rating,
	})
	return err
}

func (s *sleepService) RateMood(ctx context.Context, userID int64, rating int) error {
	start := time.Now()
	err := s.records.SetMood(ctx, userID, rating)
	observe(ctx, s.observer, "rate_mood", start, err, map[string]any{
		"user_id": userID,
		"rating":  rating,
	})
	return err
}
