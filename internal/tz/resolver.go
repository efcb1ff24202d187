package tz

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
	"github.com/ringsaturn/tzf"
)

// Coordinates is a WGS84 point from a shared location.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Finder maps a coordinate pair to an IANA timezone name. Satisfied by
// tzf finders; the lookup is offline and pure.
type Finder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Resolver resolves and persists user timezones. Lookups happen only
// when coordinates are supplied; otherwise the stored value is returned
// verbatim. Resolving the same coordinates twice is a no-op the second
// time.
type Resolver struct {
	finder Finder
	users  repository.UserRepo
	logger *slog.Logger
}

// NewResolver creates a Resolver over the given finder.
func NewResolver(finder Finder, users repository.UserRepo, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{finder: finder, users: users, logger: logger}
}

// NewDefaultResolver creates a Resolver backed by the embedded tzf
// timezone shape data.
func NewDefaultResolver(users repository.UserRepo, logger *slog.Logger) (*Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("initializing timezone finder: %w", err)
	}
	return NewResolver(finder, users, logger), nil
}

// Resolve returns the user's IANA timezone. With coordinates, a lookup
// runs and a discovered or changed value is written through; without,
// the stored value is returned as-is. An empty result means unknown and
// callers must fall back to UTC.
func (r *Resolver) Resolve(ctx context.Context, userID int64, coords *Coordinates) (string, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("resolving timezone: %w", err)
	}
	if coords == nil {
		return user.Timezone, nil
	}

	name := r.finder.GetTimezoneName(coords.Lng, coords.Lat)
	if name == "" {
		r.logger.Warn("no timezone for coordinates",
			"user_id", userID, "lat", coords.Lat, "lng", coords.Lng)
		return user.Timezone, nil
	}
	if name == user.Timezone {
		return name, nil
	}

	if err := r.users.SetTimezone(ctx, userID, name); err != nil {
		return "", fmt.Errorf("persisting timezone: %w", err)
	}
	r.logger.Info("timezone updated", "user_id", userID, "timezone", name)
	return name, nil
}

// Location converts a user's stored timezone into a *time.Location,
// defaulting to UTC when unknown.
func (r *Resolver) Location(user *domain.User) *time.Location {
	return user.Location()
}
