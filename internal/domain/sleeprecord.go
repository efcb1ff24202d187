package domain

import "time"

// SleepRecord is one sleep attempt. A record with a nil WakeTime is open:
// the user has marked bedtime but not yet woken up. At most one record per
// user is open at any time.
type SleepRecord struct {
	ID        string
	UserID    int64
	SleepTime time.Time
	WakeTime  *time.Time
	Quality   *int // 1-5, set on a closed record
	Mood      *int // 1-5, set on a closed record
	CreatedAt time.Time
}

// Open reports whether the record represents an in-progress sleep session.
func (r *SleepRecord) Open() bool {
	return r.WakeTime == nil
}

// Duration returns the slept duration of a closed record, or zero for an
// open one.
func (r *SleepRecord) Duration() time.Duration {
	if r.WakeTime == nil {
		return 0
	}
	return r.WakeTime.Sub(r.SleepTime)
}
