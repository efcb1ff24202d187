package tz

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyreva/somnus/internal/repository"
	"github.com/akozyreva/somnus/internal/testutil"
)

// fakeFinder returns a fixed zone name and counts lookups.
type fakeFinder struct {
	zone    string
	lookups int
}

func (f *fakeFinder) GetTimezoneName(lng float64, lat float64) string {
	f.lookups++
	return f.zone
}

func resolverSetup(t *testing.T, zone string) (*Resolver, *fakeFinder, repository.UserRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	users := repository.NewSQLiteUserRepo(db)
	require.NoError(t, users.Upsert(ctx, testutil.NewTestUser(42)))

	finder := &fakeFinder{zone: zone}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResolver(finder, users, logger), finder, users
}

func TestResolver_ResolvePersistsLookup(t *testing.T) {
	r, finder, users := resolverSetup(t, "Europe/Berlin")
	ctx := context.Background()

	zone, err := r.Resolve(ctx, 42, &Coordinates{Lat: 52.52, Lng: 13.40})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", zone)
	assert.Equal(t, 1, finder.lookups)

	user, err := users.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", user.Timezone)
}

func TestResolver_ResolveWithoutCoordsReturnsStored(t *testing.T) {
	r, finder, users := resolverSetup(t, "Europe/Berlin")
	ctx := context.Background()

	require.NoError(t, users.SetTimezone(ctx, 42, "Asia/Tokyo"))

	zone, err := r.Resolve(ctx, 42, nil)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", zone)
	assert.Zero(t, finder.lookups, "no coordinates, no lookup")
}

func TestResolver_ResolveUnknownCoordinatesKeepsStored(t *testing.T) {
	r, _, users := resolverSetup(t, "")
	ctx := context.Background()

	require.NoError(t, users.SetTimezone(ctx, 42, "Asia/Tokyo"))

	// Mid-ocean coordinates with no zone leave the stored value alone.
	zone, err := r.Resolve(ctx, 42, &Coordinates{Lat: 0, Lng: -160})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", zone)
}

func TestResolver_ResolveUnknownUser(t *testing.T) {
	r, _, _ := resolverSetup(t, "Europe/Berlin")
	ctx := context.Background()

	_, err := r.Resolve(ctx, 999, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResolver_Location(t *testing.T) {
	r, _, _ := resolverSetup(t, "")

	user := testutil.NewTestUser(1, testutil.WithTimezone("Europe/Berlin"))
	assert.Equal(t, "Europe/Berlin", r.Location(user).String())

	assert.Equal(t, "UTC", r.Location(testutil.NewTestUser(2)).String())
}
