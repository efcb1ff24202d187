package scheduler

import (
	"time"

	"github.com/akozyreva/somnus/internal/domain"
)

// Target times are derived on every tick, never stored, so an edited goal
// takes effect immediately.

// defaultWeatherClock is when weather advice goes out for users who never
// configured a reminder time.
var defaultWeatherClock = domain.Clock{Hour: 20, Minute: 0}

// Bedtime derives the go-to-bed time of day from the user's sleep goal
// and a wake reference: the explicit wake-time preference when set,
// otherwise the reminder time. Returns false when either input is
// missing; callers must not fire then.
func Bedtime(user *domain.User, reminder *domain.Reminder) (domain.Clock, bool) {
	if user == nil || user.SleepGoal == nil {
		return domain.Clock{}, false
	}
	wakeRef, ok := user.WakeClock()
	if !ok && reminder != nil {
		wakeRef, ok = reminder.Clock()
	}
	if !ok {
		return domain.Clock{}, false
	}
	return wakeRef.SubHours(*user.SleepGoal), true
}

// WakeUpTime derives the full wake-up timestamp from the user's open
// sleep record: sleep time plus the goal. A timestamp rather than a time
// of day, since the goal may cross midnight.
func WakeUpTime(user *domain.User, open *domain.SleepRecord) (time.Time, bool) {
	if user == nil || user.SleepGoal == nil || open == nil || !open.Open() {
		return time.Time{}, false
	}
	return open.SleepTime.Add(time.Duration(*user.SleepGoal * float64(time.Hour))), true
}

// WeatherReminderClock returns the user's configured reminder time, or
// the 20:00 local fallback.
func WeatherReminderClock(reminder *domain.Reminder) domain.Clock {
	if reminder != nil {
		if c, ok := reminder.Clock(); ok {
			return c
		}
	}
	return defaultWeatherClock
}
