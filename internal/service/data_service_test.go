package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyreva/somnus/internal/repository"
	"github.com/akozyreva/somnus/internal/testutil"
)

type dataServiceFixture struct {
	svc       DataService
	users     repository.UserRepo
	records   repository.SleepRecordRepo
	reminders repository.ReminderRepo
}

func dataServiceSetup(t *testing.T) *dataServiceFixture {
	t.Helper()
	db := testutil.NewTestDB(t)

	f := &dataServiceFixture{
		users:     repository.NewSQLiteUserRepo(db),
		records:   repository.NewSQLiteSleepRecordRepo(db),
		reminders: repository.NewSQLiteReminderRepo(db),
	}
	f.svc = NewDataService(f.users, f.records, testutil.NewTestUoW(db))
	return f
}

func (f *dataServiceFixture) seedUser(t *testing.T, userID int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.users.Upsert(ctx, testutil.NewTestUser(userID)))
	require.NoError(t, f.reminders.Upsert(ctx, userID, "22:30"))

	bed := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	_, err := f.records.UpsertOpen(ctx, userID, bed)
	require.NoError(t, err)
	require.NoError(t, f.records.Close(ctx, userID, bed.Add(8*time.Hour)))
}

func TestDataService_DeleteAllData(t *testing.T) {
	f := dataServiceSetup(t)
	ctx := context.Background()

	f.seedUser(t, 42)

	require.NoError(t, f.svc.DeleteAllData(ctx, 42))

	_, err := f.users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.reminders.Get(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	records, err := f.records.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDataService_DeleteAllData_RollsBackOnFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	users := repository.NewSQLiteUserRepo(db)
	records := repository.NewSQLiteSleepRecordRepo(db)
	reminders := repository.NewSQLiteReminderRepo(db)

	require.NoError(t, users.Upsert(ctx, testutil.NewTestUser(42)))
	require.NoError(t, reminders.Upsert(ctx, 42, "22:30"))
	_, err := records.UpsertOpen(ctx, 42, time.Now().UTC())
	require.NoError(t, err)

	// Records and reminder deletes succeed, the user delete fails; the
	// whole transaction must roll back.
	injected := errors.New("disk I/O error")
	uow := &testutil.FailOnNthExecUoW{DB: db, FailOn: 3, Err: injected}
	svc := NewDataService(users, records, uow)

	err = svc.DeleteAllData(ctx, 42)
	require.ErrorIs(t, err, injected)

	_, err = users.GetByID(ctx, 42)
	assert.NoError(t, err)
	_, err = reminders.Get(ctx, 42)
	assert.NoError(t, err, "reminder delete must have been rolled back")
	recs, err := records.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "record delete must have been rolled back")
}

func TestDataService_ExportCSV(t *testing.T) {
	f := dataServiceSetup(t)
	ctx := context.Background()

	f.seedUser(t, 42)
	require.NoError(t, f.records.SetQuality(ctx, 42, 4))

	data, err := f.svc.ExportCSV(ctx, 42)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,sleep_time,wake_time,quality,mood", lines[0])
	assert.Contains(t, lines[1], "2024-01-01T23:00:00Z")
	assert.Contains(t, lines[1], "2024-01-02T07:00:00Z")
	assert.Contains(t, lines[1], ",4,")
}

func TestDataService_ExportCSV_NoRecords(t *testing.T) {
	f := dataServiceSetup(t)
	ctx := context.Background()

	require.NoError(t, f.users.Upsert(ctx, testutil.NewTestUser(1)))

	_, err := f.svc.ExportCSV(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDataService_ListUsers(t *testing.T) {
	f := dataServiceSetup(t)
	ctx := context.Background()

	users, err := f.svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, f.users.Upsert(ctx, testutil.NewTestUser(1)))
	require.NoError(t, f.users.Upsert(ctx, testutil.NewTestUser(2)))

	users, err = f.svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
