package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
)

// Persister is the slice of the service layer the dialog validators
// write through. One dialog answer maps to exactly one write.
type Persister interface {
	SetReminderTime(ctx context.Context, userID int64, clock domain.Clock) error
	SetSleepGoal(ctx context.Context, userID int64, hours float64) error
	SetWakeTime(ctx context.Context, userID int64, clock domain.Clock) error
	RateSleepQuality(ctx context.Context, userID int64, rating int) error
	RateMood(ctx context.Context, userID int64, rating int) error
	DeleteAllData(ctx context.Context, userID int64) error
}

// Outcome is the result of dispatching one inbound message.
type Outcome struct {
	// Handled is false when the user had no dialog open; the message
	// belongs to the command router instead.
	Handled bool
	// Reply is the user-facing response: a confirmation, a re-prompt, or
	// an apology.
	Reply string
}

// Dispatcher routes a user's free-text reply to the validator matching
// their open dialog state. Dispatch calls for the same user are
// serialized; different users proceed concurrently.
type Dispatcher struct {
	states  *Store
	persist Persister
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewDispatcher creates a Dispatcher over the given state store.
func NewDispatcher(states *Store, persist Persister, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		states:  states,
		persist: persist,
		logger:  logger,
		locks:   make(map[int64]*sync.Mutex),
	}
}

// Prompt returns the question to ask when opening the given dialog.
func Prompt(state domain.DialogState) string {
	switch state {
	case domain.DialogAwaitingReminderTime:
		return "Send the time you want your sleep reminder, in 24-hour HH:MM format.\nFor example: 22:30"
	case domain.DialogAwaitingSleepQuality:
		return "Rate your last night's sleep from 1 (poor) to 5 (excellent)."
	case domain.DialogAwaitingSleepGoal:
		return "Enter your sleep duration goal in hours (for example, 7.5)."
	case domain.DialogAwaitingWakeTime:
		return "Send your preferred wake-up time, in 24-hour HH:MM format.\nFor example: 07:00"
	case domain.DialogAwaitingMood:
		return "Rate your mood from 1 (bad) to 5 (great)."
	case domain.DialogAwaitingDeleteConfirm:
		return "Are you sure you want to delete all your data? This cannot be undone.\nReply \"yes\" to confirm."
	default:
		return ""
	}
}

// Begin opens a dialog for the user and returns the prompt to send.
func (d *Dispatcher) Begin(userID int64, state domain.DialogState) string {
	d.states.Set(userID, state)
	return Prompt(state)
}

// Pending reports whether the user has a dialog awaiting an answer.
func (d *Dispatcher) Pending(userID int64) bool {
	return d.states.Get(userID) != domain.DialogNone
}

// Dispatch hands text to the validator for the user's open dialog. On
// success the value is persisted and the dialog closes; on validation
// failure the dialog stays open and the reply re-prompts.
func (d *Dispatcher) Dispatch(ctx context.Context, userID int64, text string) (Outcome, error) {
	lock := d.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state := d.states.Get(userID)
	switch state {
	case domain.DialogNone:
		return Outcome{Handled: false}, nil
	case domain.DialogAwaitingReminderTime:
		return d.saveReminderTime(ctx, userID, text)
	case domain.DialogAwaitingSleepQuality:
		return d.saveRating(ctx, userID, text, "sleep quality", d.persist.RateSleepQuality)
	case domain.DialogAwaitingSleepGoal:
		return d.saveSleepGoal(ctx, userID, text)
	case domain.DialogAwaitingWakeTime:
		return d.saveWakeTime(ctx, userID, text)
	case domain.DialogAwaitingMood:
		return d.saveRating(ctx, userID, text, "mood", d.persist.RateMood)
	case domain.DialogAwaitingDeleteConfirm:
		return d.confirmDelete(ctx, userID, text)
	default:
		// A state outside the known set risks corrupting the next write.
		d.logger.Error("unknown dialog state, resetting",
			"user_id", userID, "state", int(state))
		d.states.Clear(userID)
		return Outcome{Handled: true, Reply: "Something went wrong. Please start over from the menu."}, nil
	}
}

func (d *Dispatcher) saveReminderTime(ctx context.Context, userID int64, text string) (Outcome, error) {
	clock, invalid := validateClock(text)
	if invalid != "" {
		d.logger.Warn("invalid reminder time", "user_id", userID, "input", text)
		return Outcome{Handled: true, Reply: invalid}, nil
	}
	if err := d.persist.SetReminderTime(ctx, userID, clock); err != nil {
		return d.persistFailed(userID, "set_reminder_time", err)
	}
	d.states.Clear(userID)
	d.logger.Info("reminder time set", "user_id", userID, "time", clock.String())
	return Outcome{Handled: true, Reply: fmt.Sprintf("Reminder set for %s.", clock)}, nil
}

func (d *Dispatcher) saveSleepGoal(ctx context.Context, userID int64, text string) (Outcome, error) {
	goal, invalid := validateGoal(text)
	if invalid != "" {
		d.logger.Warn("invalid sleep goal", "user_id", userID, "input", text)
		return Outcome{Handled: true, Reply: invalid}, nil
	}
	if err := d.persist.SetSleepGoal(ctx, userID, goal); err != nil {
		return d.persistFailed(userID, "set_sleep_goal", err)
	}
	d.states.Clear(userID)
	d.logger.Info("sleep goal set", "user_id", userID, "hours", goal)
	return Outcome{Handled: true, Reply: fmt.Sprintf("Your sleep goal is set to %g hours.", goal)}, nil
}

func (d *Dispatcher) saveWakeTime(ctx context.Context, userID int64, text string) (Outcome, error) {
	clock, invalid := validateClock(text)
	if invalid != "" {
		d.logger.Warn("invalid wake time", "user_id", userID, "input", text)
		return Outcome{Handled: true, Reply: invalid}, nil
	}
	if err := d.persist.SetWakeTime(ctx, userID, clock); err != nil {
		return d.persistFailed(userID, "set_wake_time", err)
	}
	d.states.Clear(userID)
	d.logger.Info("wake time preference set", "user_id", userID, "time", clock.String())
	return Outcome{Handled: true, Reply: fmt.Sprintf("Your preferred wake-up time is set to %s.", clock)}, nil
}

func (d *Dispatcher) saveRating(ctx context.Context, userID int64, text, kind string,
	save func(context.Context, int64, int) error) (Outcome, error) {

	rating, invalid := validateRating(text)
	if invalid != "" {
		d.logger.Warn("invalid rating", "user_id", userID, "kind", kind, "input", text)
		return Outcome{Handled: true, Reply: invalid}, nil
	}
	err := save(ctx, userID, rating)
	if errors.Is(err, repository.ErrNotFound) {
		// Nothing to rate; retrying the input cannot help, so close the dialog.
		d.states.Clear(userID)
		return Outcome{Handled: true, Reply: "You have no completed sleep records to rate yet."}, nil
	}
	if err != nil {
		return d.persistFailed(userID, "rate_"+kind, err)
	}
	d.states.Clear(userID)
	d.logger.Info("rating saved", "user_id", userID, "kind", kind, "rating", rating)
	return Outcome{Handled: true, Reply: "Thanks! Your rating has been saved."}, nil
}

func (d *Dispatcher) confirmDelete(ctx context.Context, userID int64, text string) (Outcome, error) {
	if !confirmsDelete(text) {
		d.states.Clear(userID)
		d.logger.Info("data deletion cancelled", "user_id", userID)
		return Outcome{Handled: true, Reply: "Deletion cancelled. Your data is untouched."}, nil
	}
	if err := d.persist.DeleteAllData(ctx, userID); err != nil {
		return d.persistFailed(userID, "delete_all_data", err)
	}
	d.states.Clear(userID)
	d.logger.Info("all user data deleted", "user_id", userID)
	return Outcome{Handled: true, Reply: "All your data has been deleted."}, nil
}

// persistFailed keeps the dialog open so the user may try again once the
// store recovers, and reports a generic apology without internal detail.
func (d *Dispatcher) persistFailed(userID int64, op string, err error) (Outcome, error) {
	d.logger.Error("dialog persistence failed", "user_id", userID, "op", op, "error", err)
	return Outcome{Handled: true, Reply: "Sorry, something went wrong saving your answer. Please try again."},
		fmt.Errorf("%s for user %d: %w", op, userID, err)
}

func (d *Dispatcher) userLock(userID int64) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		d.locks[userID] = lock
	}
	return lock
}
