package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
)

const (
	bedtimeMessage = "🌙 Time to go to bed so you can reach your sleep duration goal before your wake-up time!"
	wakeUpMessage  = "☀️ Time to get up to stay on track with your goals!"
)

// Notifier delivers a message to a user. Fire-and-forget from the
// evaluator's perspective: failures are logged, never retried.
type Notifier interface {
	Send(ctx context.Context, userID int64, text string) error
}

// LocationResolver maps a user to their local timezone, defaulting to
// UTC when unknown.
type LocationResolver interface {
	Location(user *domain.User) *time.Location
}

// AdviceProvider fetches weather for a city and composes sleep advice.
type AdviceProvider interface {
	Advise(ctx context.Context, city string) (string, error)
}

// Evaluator recomputes every user's bedtime, wake-up, and weather
// targets on each tick and fires a notification when the tick's local
// hour and minute match a target exactly. It keeps no state between
// ticks: every run is a pure function of the store contents and "now".
type Evaluator struct {
	users     repository.UserRepo
	records   repository.SleepRecordRepo
	reminders repository.ReminderRepo
	tz        LocationResolver
	weather   AdviceProvider
	notifier  Notifier
	logger    *slog.Logger
}

// NewEvaluator wires an Evaluator. weather may be nil to disable the
// weather trigger entirely.
func NewEvaluator(
	users repository.UserRepo,
	records repository.SleepRecordRepo,
	reminders repository.ReminderRepo,
	tz LocationResolver,
	weather AdviceProvider,
	notifier Notifier,
	logger *slog.Logger,
) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		users:     users,
		records:   records,
		reminders: reminders,
		tz:        tz,
		weather:   weather,
		notifier:  notifier,
		logger:    logger,
	}
}

// Run drives the evaluator once per interval until ctx is cancelled.
// The first tick is aligned to the next wall-clock minute so that the
// exact hour:minute match holds. An in-flight tick is allowed to finish
// after cancellation rather than abandoned mid-write.
func (e *Evaluator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	next := time.Now().Truncate(interval).Add(interval)
	select {
	case <-ctx.Done():
		return
	case <-time.After(time.Until(next)):
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.EvaluateTick(context.WithoutCancel(ctx), time.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.EvaluateTick(context.WithoutCancel(ctx), now)
		}
	}
}

// EvaluateTick runs all three triggers for the given instant. A failure
// for one user never prevents evaluation of the rest.
func (e *Evaluator) EvaluateTick(ctx context.Context, now time.Time) {
	e.evaluateSleepTriggers(ctx, now)
	e.evaluateWeatherTrigger(ctx, now)
}

// evaluateSleepTriggers fires the bedtime and wake-up notifications for
// every user with an active reminder configuration.
func (e *Evaluator) evaluateSleepTriggers(ctx context.Context, now time.Time) {
	ids, err := e.reminders.ListUserIDs(ctx)
	if err != nil {
		e.logger.Error("listing reminder users", "error", err)
		return
	}

	for _, id := range ids {
		if err := e.evaluateUserSleep(ctx, id, now); err != nil {
			e.logger.Error("evaluating sleep triggers", "user_id", id, "error", err)
		}
	}
}

func (e *Evaluator) evaluateUserSleep(ctx context.Context, userID int64, now time.Time) error {
	user, err := e.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	local := now.In(e.tz.Location(user))

	reminder, err := e.reminders.Get(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	open, err := e.records.GetOpen(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	// Bedtime: only while the user has not already gone to bed.
	if bedtime, ok := Bedtime(user, reminder); ok && open == nil && bedtime.Matches(local) {
		e.send(ctx, userID, bedtimeMessage, "bedtime")
	}

	// Wake-up: an open record is a precondition of the computation itself.
	if wakeAt, ok := WakeUpTime(user, open); ok {
		wakeLocal := wakeAt.In(e.tz.Location(user))
		if wakeLocal.Hour() == local.Hour() && wakeLocal.Minute() == local.Minute() {
			e.send(ctx, userID, wakeUpMessage, "wake_up")
		}
	}

	return nil
}

// evaluateWeatherTrigger sends weather-linked sleep advice to every user
// with a known city, at their reminder time or the 20:00 fallback. A
// failed weather fetch suppresses only this trigger for this user.
func (e *Evaluator) evaluateWeatherTrigger(ctx context.Context, now time.Time) {
	if e.weather == nil {
		return
	}

	users, err := e.users.ListWithCity(ctx)
	if err != nil {
		e.logger.Error("listing users with city", "error", err)
		return
	}

	for _, user := range users {
		local := now.In(e.tz.Location(user))

		reminder, err := e.reminders.Get(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			e.logger.Error("loading reminder", "user_id", user.ID, "error", err)
			continue
		}

		if !WeatherReminderClock(reminder).Matches(local) {
			continue
		}

		advice, err := e.weather.Advise(ctx, user.CityName)
		if err != nil {
			e.logger.Error("fetching weather advice",
				"user_id", user.ID, "city", user.CityName, "error", err)
			continue
		}
		e.send(ctx, user.ID, advice, "weather")
	}
}

func (e *Evaluator) send(ctx context.Context, userID int64, text, trigger string) {
	if err := e.notifier.Send(ctx, userID, text); err != nil {
		e.logger.Error("sending notification", "user_id", userID, "trigger", trigger, "error", err)
		return
	}
	e.logger.Info("notification sent", "user_id", userID, "trigger", trigger)
}
