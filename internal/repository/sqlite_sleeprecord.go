package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akozyreva/somnus/internal/db"
	"github.com/akozyreva/somnus/internal/domain"
	"github.com/google/uuid"
)

// SQLiteSleepRecordRepo implements SleepRecordRepo using a SQLite database.
type SQLiteSleepRecordRepo struct {
	db db.DBTX
}

// NewSQLiteSleepRecordRepo creates a new SQLiteSleepRecordRepo.
func NewSQLiteSleepRecordRepo(conn db.DBTX) *SQLiteSleepRecordRepo {
	return &SQLiteSleepRecordRepo{db: conn}
}

const sleepRecordColumns = `id, user_id, sleep_time, wake_time, quality, mood, created_at`

func (r *SQLiteSleepRecordRepo) UpsertOpen(ctx context.Context, userID int64, sleepTime time.Time) (bool, error) {
	// Move the open record's sleep time first; insert only when no open
	// record exists. The partial unique index on (user_id) WHERE
	// wake_time IS NULL guards against a second open row racing in.
	res, err := r.db.ExecContext(ctx,
		`UPDATE sleep_records SET sleep_time = ? WHERE user_id = ? AND wake_time IS NULL`,
		sleepTime.UTC().Format(time.RFC3339), userID)
	if err != nil {
		return false, fmt.Errorf("updating open sleep record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating open sleep record: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sleep_records (id, user_id, sleep_time, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), userID, sleepTime.UTC().Format(time.RFC3339), nowUTC())
	if err != nil {
		return false, fmt.Errorf("inserting sleep record: %w", err)
	}
	return true, nil
}

func (r *SQLiteSleepRecordRepo) GetOpen(ctx context.Context, userID int64) (*domain.SleepRecord, error) {
	query := `SELECT ` + sleepRecordColumns + ` FROM sleep_records
		WHERE user_id = ? AND wake_time IS NULL`
	row := r.db.QueryRowContext(ctx, query, userID)
	rec, err := scanSleepRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("open sleep record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning open sleep record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteSleepRecordRepo) Close(ctx context.Context, userID int64, wakeTime time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sleep_records SET wake_time = ? WHERE user_id = ? AND wake_time IS NULL`,
		wakeTime.UTC().Format(time.RFC3339), userID)
	if err != nil {
		return fmt.Errorf("closing sleep record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("closing sleep record: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("open sleep record: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSleepRecordRepo) GetLast(ctx context.Context, userID int64) (*domain.SleepRecord, error) {
	query := `SELECT ` + sleepRecordColumns + ` FROM sleep_records
		WHERE user_id = ? ORDER BY sleep_time DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID)
	rec, err := scanSleepRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sleep record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sleep record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteSleepRecordRepo) GetLastClosed(ctx context.Context, userID int64) (*domain.SleepRecord, error) {
	query := `SELECT ` + sleepRecordColumns + ` FROM sleep_records
		WHERE user_id = ? AND wake_time IS NOT NULL
		ORDER BY sleep_time DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID)
	rec, err := scanSleepRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("closed sleep record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning closed sleep record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteSleepRecordRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.SleepRecord, error) {
	query := `SELECT ` + sleepRecordColumns + ` FROM sleep_records
		WHERE user_id = ? ORDER BY sleep_time`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sleep records: %w", err)
	}
	defer rows.Close()
	return scanSleepRecords(rows)
}

func (r *SQLiteSleepRecordRepo) ListClosedRecent(ctx context.Context, userID int64, limit int) ([]*domain.SleepRecord, error) {
	query := `SELECT ` + sleepRecordColumns + ` FROM sleep_records
		WHERE user_id = ? AND wake_time IS NOT NULL
		ORDER BY sleep_time DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent closed sleep records: %w", err)
	}
	defer rows.Close()
	return scanSleepRecords(rows)
}

func (r *SQLiteSleepRecordRepo) SetQuality(ctx context.Context, userID int64, quality int) error {
	return r.rateLastClosed(ctx, "quality", userID, quality)
}

func (r *SQLiteSleepRecordRepo) SetMood(ctx context.Context, userID int64, mood int) error {
	return r.rateLastClosed(ctx, "mood", userID, mood)
}

// rateLastClosed applies a 1-5 rating to the latest record with a
// non-null wake_time. Open records are never rated.
func (r *SQLiteSleepRecordRepo) rateLastClosed(ctx context.Context, column string, userID int64, rating int) error {
	query := fmt.Sprintf(`UPDATE sleep_records SET %s = ?
		WHERE id = (
			SELECT id FROM sleep_records
			WHERE user_id = ? AND wake_time IS NOT NULL
			ORDER BY sleep_time DESC LIMIT 1
		)`, column)
	res, err := r.db.ExecContext(ctx, query, rating, userID)
	if err != nil {
		return fmt.Errorf("rating sleep record %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rating sleep record %s: %w", column, err)
	}
	if n == 0 {
		return fmt.Errorf("closed sleep record: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSleepRecordRepo) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sleep_records WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting sleep records: %w", err)
	}
	return nil
}

func scanSleepRecord(row rowScanner) (*domain.SleepRecord, error) {
	var rec domain.SleepRecord
	var sleepTimeStr, createdAtStr string
	var wakeTime sql.NullString
	var quality, mood sql.NullInt64

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&sleepTimeStr,
		&wakeTime,
		&quality,
		&mood,
		&createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	var parseErr error
	rec.SleepTime, parseErr = time.Parse(time.RFC3339, sleepTimeStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing sleep_time: %w", parseErr)
	}
	rec.WakeTime = parseNullableTime(wakeTime)
	rec.Quality = nullableIntValue(quality)
	rec.Mood = nullableIntValue(mood)
	rec.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &rec, nil
}

func scanSleepRecords(rows *sql.Rows) ([]*domain.SleepRecord, error) {
	var records []*domain.SleepRecord
	for rows.Next() {
		rec, err := scanSleepRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sleep record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sleep records: %w", err)
	}
	return records, nil
}
