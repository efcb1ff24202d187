package dialog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
)

// recordingPersister captures writes and can be forced to fail.
type recordingPersister struct {
	err error

	reminderTime *domain.Clock
	sleepGoal    *float64
	wakeTime     *domain.Clock
	quality      *int
	mood         *int
	deleted      bool
}

func (p *recordingPersister) SetReminderTime(ctx context.Context, userID int64, clock domain.Clock) error {
	if p.err != nil {
		return p.err
	}
	p.reminderTime = &clock
	return nil
}

func (p *recordingPersister) SetSleepGoal(ctx context.Context, userID int64, hours float64) error {
	if p.err != nil {
		return p.err
	}
	p.sleepGoal = &hours
	return nil
}

func (p *recordingPersister) SetWakeTime(ctx context.Context, userID int64, clock domain.Clock) error {
	if p.err != nil {
		return p.err
	}
	p.wakeTime = &clock
	return nil
}

func (p *recordingPersister) RateSleepQuality(ctx context.Context, userID int64, rating int) error {
	if p.err != nil {
		return p.err
	}
	p.quality = &rating
	return nil
}

func (p *recordingPersister) RateMood(ctx context.Context, userID int64, rating int) error {
	if p.err != nil {
		return p.err
	}
	p.mood = &rating
	return nil
}

func (p *recordingPersister) DeleteAllData(ctx context.Context, userID int64) error {
	if p.err != nil {
		return p.err
	}
	p.deleted = true
	return nil
}

func newTestDispatcher(persist Persister) *Dispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(NewStore(), persist, logger)
}

func TestDispatch_NoOpenDialog(t *testing.T) {
	d := newTestDispatcher(&recordingPersister{})

	out, err := d.Dispatch(context.Background(), 1, "hello")
	require.NoError(t, err)
	assert.False(t, out.Handled)
	assert.Empty(t, out.Reply)
}

func TestDispatch_SleepGoalRoundTrip(t *testing.T) {
	p := &recordingPersister{}
	d := newTestDispatcher(p)
	ctx := context.Background()

	prompt := d.Begin(1, domain.DialogAwaitingSleepGoal)
	assert.Contains(t, prompt, "hours")
	assert.True(t, d.Pending(1))

	out, err := d.Dispatch(ctx, 1, "7.5")
	require.NoError(t, err)
	assert.True(t, out.Handled)
	assert.Contains(t, out.Reply, "7.5")

	require.NotNil(t, p.sleepGoal)
	assert.Equal(t, 7.5, *p.sleepGoal)
	assert.False(t, d.Pending(1))
}

func TestDispatch_InvalidInputKeepsDialogOpen(t *testing.T) {
	p := &recordingPersister{}
	d := newTestDispatcher(p)
	ctx := context.Background()

	d.Begin(1, domain.DialogAwaitingSleepGoal)

	out, err := d.Dispatch(ctx, 1, "30")
	require.NoError(t, err)
	assert.True(t, out.Handled)
	assert.Contains(t, out.Reply, "at most 24")
	assert.Nil(t, p.sleepGoal)
	assert.True(t, d.Pending(1), "dialog must stay open for a retry")

	// The retry with a valid value succeeds.
	out, err = d.Dispatch(ctx, 1, "8")
	require.NoError(t, err)
	assert.True(t, out.Handled)
	require.NotNil(t, p.sleepGoal)
	assert.Equal(t, 8.0, *p.sleepGoal)
	assert.False(t, d.Pending(1))
}

func TestDispatch_ReminderTime(t *testing.T) {
	p := &recordingPersister{}
	d := newTestDispatcher(p)
	ctx := context.Background()

	d.Begin(1, domain.DialogAwaitingReminderTime)

	out, err := d.Dispatch(ctx, 1, "25:00")
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "Invalid time format")
	assert.True(t, d.Pending(1))

	out, err = d.Dispatch(ctx, 1, " 22:30 ")
	require.NoError(t, err)
	assert.Equal(t, "Reminder set for 22:30.", out.Reply)
	require.NotNil(t, p.reminderTime)
	assert.Equal(t, domain.Clock{Hour: 22, Minute: 30}, *p.reminderTime)
}

func TestDispatch_WakeTime(t *testing.T) {
	p := &recordingPersister{}
	d := newTestDispatcher(p)
	ctx := context.Background()

	d.Begin(1, domain.DialogAwaitingWakeTime)

	out, err := d.Dispatch(ctx, 1, "7:00")
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "07:00")
	require.NotNil(t, p.wakeTime)
	assert.Equal(t, domain.Clock{Hour: 7, Minute: 0}, *p.wakeTime)
}

func TestDispatch_Ratings(t *testing.T) {
	p := &recordingPersister{}
	d := newTestDispatcher(p)
	ctx := context.Background()

	d.Begin(1, domain.DialogAwaitingSleepQuality)
	out, err := d.Dispatch(ctx, 1, "6")
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "1 to 5")
	assert.True(t, d.Pending(1))

	out, err = d.Dispatch(ctx, 1, "4")
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "saved")
	require.NotNil(t, p.quality)
	assert.Equal(t, 4, *p.quality)

	d.Begin(1, domain.DialogAwaitingMood)
	_, err = d.Dispatch(ctx, 1, "5")
	require.NoError(t, err)
	require.NotNil(t, p.mood)
	assert.Equal(t, 5, *p.mood)
}

func TestDispatch_RatingWithoutClosedRecordsClosesDialog(t *testing.T) {
	p := &recordingPersister{err: repository.ErrNotFound}
	d := newTestDispatcher(p)
	ctx := context.Background()

	d.Begin(1, domain.DialogAwaitingSleepQuality)

	out, err := d.Dispatch(ctx, 1, "4")
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "no completed sleep records")
	assert.False(t, d.Pending(1), "retrying the same input cannot help")
}

func TestDispatch_DeleteConfirmation(t *testing.T) {
	p := &recordingPersister{}
	d := newTestDispatcher(p)
	ctx := context.Background()

	// Anything but "yes" cancels.
	d.Begin(1, domain.DialogAwaitingDeleteConfirm)
	out, err := d.Dispatch(ctx, 1, "no")
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "cancelled")
	assert.False(t, p.deleted)
	assert.False(t, d.Pending(1))

	d.Begin(1, domain.DialogAwaitingDeleteConfirm)
	out, err = d.Dispatch(ctx, 1, "YES")
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "deleted")
	assert.True(t, p.deleted)
}

func TestDispatch_PersistFailureKeepsDialogOpen(t *testing.T) {
	dbErr := errors.New("disk full")
	p := &recordingPersister{err: dbErr}
	d := newTestDispatcher(p)
	ctx := context.Background()

	d.Begin(1, domain.DialogAwaitingSleepGoal)

	out, err := d.Dispatch(ctx, 1, "8")
	require.ErrorIs(t, err, dbErr)
	assert.True(t, out.Handled)
	assert.Contains(t, out.Reply, "try again")
	assert.True(t, d.Pending(1), "user should be able to retry after the store recovers")
}

func TestDispatch_IndependentUsers(t *testing.T) {
	p := &recordingPersister{}
	d := newTestDispatcher(p)
	ctx := context.Background()

	d.Begin(1, domain.DialogAwaitingSleepGoal)

	// User 2 has no dialog open even while user 1 does.
	out, err := d.Dispatch(ctx, 2, "8")
	require.NoError(t, err)
	assert.False(t, out.Handled)
	assert.True(t, d.Pending(1))
}
