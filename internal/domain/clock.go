package domain

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock parses a 24-hour "H:MM" or "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	var h, min int
	fmt.Sscanf(m[1], "%d", &h)
	fmt.Sscanf(m[2], "%d", &min)
	if h > 23 || min > 59 {
		return Clock{}, fmt.Errorf("invalid time %q: hour must be 0-23 and minute 0-59", s)
	}
	return Clock{Hour: h, Minute: min}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// SubHours shifts the clock back by a fractional number of hours,
// wrapping around midnight.
func (c Clock) SubHours(hours float64) Clock {
	total := c.Hour*60 + c.Minute - int(math.Round(hours*60))
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return Clock{Hour: total / 60, Minute: total % 60}
}

// Matches reports whether t falls in the same hour and minute as the clock.
func (c Clock) Matches(t time.Time) bool {
	return t.Hour() == c.Hour && t.Minute() == c.Minute
}
