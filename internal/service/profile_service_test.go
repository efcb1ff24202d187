package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
	"github.com/akozyreva/somnus/internal/testutil"
)

func profileServiceSetup(t *testing.T) ProfileService {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewProfileService(
		repository.NewSQLiteUserRepo(db),
		repository.NewSQLiteReminderRepo(db))
}

func TestProfileService_RegisterAndGet(t *testing.T) {
	svc := profileServiceSetup(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, testutil.NewTestUser(42)))

	user, err := svc.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "tester", user.Username)

	// Registering again is idempotent.
	require.NoError(t, svc.Register(ctx, testutil.NewTestUser(42)))
}

func TestProfileService_SetSleepGoal_RejectsOutOfRange(t *testing.T) {
	svc := profileServiceSetup(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, testutil.NewTestUser(1)))

	assert.Error(t, svc.SetSleepGoal(ctx, 1, 0))
	assert.Error(t, svc.SetSleepGoal(ctx, 1, -1))
	assert.Error(t, svc.SetSleepGoal(ctx, 1, 24.5))
	require.NoError(t, svc.SetSleepGoal(ctx, 1, 24))
	require.NoError(t, svc.SetSleepGoal(ctx, 1, 7.5))

	user, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, user.SleepGoal)
	assert.Equal(t, 7.5, *user.SleepGoal)
}

func TestProfileService_WakeTimeAndCity(t *testing.T) {
	svc := profileServiceSetup(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, testutil.NewTestUser(1)))
	require.NoError(t, svc.SetWakeTime(ctx, 1, domain.Clock{Hour: 7, Minute: 0}))
	require.NoError(t, svc.SetCity(ctx, 1, "Lisbon"))

	user, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, user.WakeTime)
	assert.Equal(t, "07:00", *user.WakeTime)
	assert.Equal(t, "Lisbon", user.CityName)
	assert.True(t, user.HasLocation)
}

func TestProfileService_ReminderLifecycle(t *testing.T) {
	svc := profileServiceSetup(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, testutil.NewTestUser(1)))

	_, err := svc.Reminder(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.SetReminderTime(ctx, 1, domain.Clock{Hour: 22, Minute: 30}))

	rem, err := svc.Reminder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "22:30", rem.ReminderTime)

	require.NoError(t, svc.RemoveReminder(ctx, 1))
	_, err = svc.Reminder(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Removing an absent reminder is not an error.
	require.NoError(t, svc.RemoveReminder(ctx, 1))
}
