package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_WakeClock(t *testing.T) {
	u := &User{ID: 1}
	_, ok := u.WakeClock()
	assert.False(t, ok)

	wake := "07:00"
	u.WakeTime = &wake
	c, ok := u.WakeClock()
	require.True(t, ok)
	assert.Equal(t, Clock{7, 0}, c)

	bad := "25:99"
	u.WakeTime = &bad
	_, ok = u.WakeClock()
	assert.False(t, ok)
}

func TestUser_Location(t *testing.T) {
	u := &User{ID: 1}
	assert.Equal(t, time.UTC, u.Location())

	u.Timezone = "Europe/Berlin"
	loc := u.Location()
	assert.Equal(t, "Europe/Berlin", loc.String())

	u.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, u.Location())
}

func TestSleepRecord_Duration(t *testing.T) {
	bed := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	rec := &SleepRecord{SleepTime: bed}

	assert.True(t, rec.Open())
	assert.Zero(t, rec.Duration())

	wake := bed.Add(7*time.Hour + 30*time.Minute)
	rec.WakeTime = &wake
	assert.False(t, rec.Open())
	assert.Equal(t, 7*time.Hour+30*time.Minute, rec.Duration())
}
