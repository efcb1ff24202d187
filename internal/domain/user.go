package domain

import "time"

// User is a registered bot user. Optional attributes are nil until the
// user has provided them through a dialog or shared their location.
type User struct {
	ID          int64
	Username    string
	FirstName   string
	LastName    string
	CityName    string
	Timezone    string // IANA name; empty means unknown, treated as UTC
	SleepGoal   *float64
	WakeTime    *string // preferred wake time "HH:MM"
	HasLocation bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WakeClock parses the wake-time preference. Returns false when the
// preference is unset or malformed.
func (u *User) WakeClock() (Clock, bool) {
	if u.WakeTime == nil {
		return Clock{}, false
	}
	c, err := ParseClock(*u.WakeTime)
	if err != nil {
		return Clock{}, false
	}
	return c, true
}

// Location resolves the user's timezone, defaulting to UTC when unknown
// or unloadable.
func (u *User) Location() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
