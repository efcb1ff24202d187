package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/akozyreva/somnus/internal/db"
	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
)

type dataService struct {
	users    repository.UserRepo
	records  repository.SleepRecordRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewDataService(users repository.UserRepo, records repository.SleepRecordRepo, uow db.UnitOfWork, observers ...UseCaseObserver) DataService {
	return &dataService{
		users:    users,
		records:  records,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dataService) DeleteAllData(ctx context.Context, userID int64) error {
	start := time.Now()

	// Records and reminder go before the user row so a failure partway
	// never leaves rows pointing at a deleted user.
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteSleepRecordRepo(tx)
		txReminders := repository.NewSQLiteReminderRepo(tx)
		txUsers := repository.NewSQLiteUserRepo(tx)

		if err := txRecords.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := txReminders.Delete(ctx, userID); err != nil {
			return err
		}
		return txUsers.Delete(ctx, userID)
	})

	observe(ctx, s.observer, "delete_all_data", start, err, map[string]any{"user_id": userID})
	if err != nil {
		return fmt.Errorf("deleting data for user %d: %w", userID, err)
	}
	return nil
}

func (s *dataService) ExportCSV(ctx context.Context, userID int64) ([]byte, error) {
	start := time.Now()

	records, err := s.records.ListByUser(ctx, userID)
	observe(ctx, s.observer, "export_csv", start, err, map[string]any{
		"user_id": userID,
		"records": len(records),
	})
	if err != nil {
		return nil, fmt.Errorf("exporting data for user %d: %w", userID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sleep records for user %d: %w", userID, repository.ErrNotFound)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "sleep_time", "wake_time", "quality", "mood"}); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.ID, rec.SleepTime.Format(time.RFC3339), "", "", ""}
		if rec.WakeTime != nil {
			row[2] = rec.WakeTime.Format(time.RFC3339)
		}
		if rec.Quality != nil {
			row[3] = strconv.Itoa(*rec.Quality)
		}
		if rec.Mood != nil {
			row[4] = strconv.Itoa(*rec.Mood)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *dataService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	start := time.Now()

	users, err := s.users.List(ctx)
	observe(ctx, s.observer, "list_users", start, err, map[string]any{"users": len(users)})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
