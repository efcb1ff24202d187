package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akozyreva/somnus/internal/db"
	"github.com/akozyreva/somnus/internal/domain"
)

// SQLiteReminderRepo implements ReminderRepo using a SQLite database.
type SQLiteReminderRepo struct {
	db db.DBTX
}

// NewSQLiteReminderRepo creates a new SQLiteReminderRepo.
func NewSQLiteReminderRepo(conn db.DBTX) *SQLiteReminderRepo {
	return &SQLiteReminderRepo{db: conn}
}

func (r *SQLiteReminderRepo) Get(ctx context.Context, userID int64) (*domain.Reminder, error) {
	query := `SELECT user_id, reminder_time, created_at, updated_at FROM reminders WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var rem domain.Reminder
	var createdAt, updatedAt string
	err := row.Scan(&rem.UserID, &rem.ReminderTime, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reminder: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}

	var parseErr error
	rem.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	rem.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &rem, nil
}

func (r *SQLiteReminderRepo) Upsert(ctx context.Context, userID int64, clock string) error {
	query := `INSERT INTO reminders (user_id, reminder_time, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			reminder_time = excluded.reminder_time,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, userID, clock, nowUTC(), nowUTC())
	if err != nil {
		return fmt.Errorf("upserting reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM reminders ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("listing reminder users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning reminder user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminder users: %w", err)
	}
	return ids, nil
}
