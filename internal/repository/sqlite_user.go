package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akozyreva/somnus/internal/db"
	"github.com/akozyreva/somnus/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

const userColumns = `id, username, first_name, last_name, city_name, timezone,
	sleep_goal, wake_time, has_provided_location, created_at, updated_at`

func (r *SQLiteUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, username, first_name, last_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.FirstName,
		u.LastName,
		nowUTC(),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *SQLiteUserRepo) ListWithCity(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE city_name != '' ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users with city: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *SQLiteUserRepo) SetCity(ctx context.Context, id int64, city string) error {
	query := `UPDATE users SET city_name = ?, has_provided_location = 1, updated_at = ? WHERE id = ?`
	return r.exec(ctx, query, "updating user city", city, nowUTC(), id)
}

func (r *SQLiteUserRepo) SetTimezone(ctx context.Context, id int64, tz string) error {
	query := `UPDATE users SET timezone = ?, updated_at = ? WHERE id = ?`
	return r.exec(ctx, query, "updating user timezone", tz, nowUTC(), id)
}

func (r *SQLiteUserRepo) SetSleepGoal(ctx context.Context, id int64, goalHours float64) error {
	query := `UPDATE users SET sleep_goal = ?, updated_at = ? WHERE id = ?`
	return r.exec(ctx, query, "updating sleep goal", goalHours, nowUTC(), id)
}

func (r *SQLiteUserRepo) SetWakeTime(ctx context.Context, id int64, clock string) error {
	query := `UPDATE users SET wake_time = ?, updated_at = ? WHERE id = ?`
	return r.exec(ctx, query, "updating wake time", clock, nowUTC(), id)
}

func (r *SQLiteUserRepo) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = ?`, "deleting user", id)
}

func (r *SQLiteUserRepo) exec(ctx context.Context, query, action string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: user: %w", action, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var goal sql.NullFloat64
	var wake sql.NullString
	var hasLocation int
	var createdAt, updatedAt string

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.CityName,
		&u.Timezone,
		&goal,
		&wake,
		&hasLocation,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.SleepGoal = nullableFloatValue(goal)
	u.WakeTime = nullableStringValue(wake)
	u.HasLocation = hasLocation != 0

	var parseErr error
	u.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	u.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &u, nil
}

func scanUsers(rows *sql.Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}
