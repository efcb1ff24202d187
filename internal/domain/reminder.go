package domain

import "time"

// Reminder is a user's opt-in to bedtime and weather notifications.
// ReminderTime is the configured "HH:MM" delivery time in the user's
// local timezone; it doubles as the wake reference for bedtime math when
// no explicit wake-time preference is stored.
type Reminder struct {
	UserID       int64
	ReminderTime string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clock parses the configured reminder time.
func (r *Reminder) Clock() (Clock, bool) {
	c, err := ParseClock(r.ReminderTime)
	if err != nil {
		return Clock{}, false
	}
	return c, true
}
