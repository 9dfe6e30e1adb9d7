// Package cache holds the catalog lookup cache (categories, glass types).
//
// The catalog is reference data written only by cocktailctl and the import scripts,
// so entries simply expire after a TTL.
package cache

import (
	"context"
	"log/slog"
)

// Keys for the cached catalog lookups.
const (
	KeyCategories = "catalog:categories"
	KeyGlasses    = "catalog:glasses"
)

// Cache stores string lists by key.
type Cache interface {
	// GetStrings returns the cached list and whether the key was present.
	GetStrings(ctx context.Context, key string) ([]string, bool, error)
	SetStrings(ctx context.Context, key string, values []string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Observer is notified of hits and misses. *metrics.Metrics satisfies it.
type Observer interface {
	RecordCacheLookup(key string, hit bool)
}

// Noop never stores anything; every lookup is a miss.
type Noop struct{}

// GetStrings always misses.
func (Noop) GetStrings(context.Context, string) ([]string, bool, error) { return nil, false, nil }

// SetStrings discards values.
func (Noop) SetStrings(context.Context, string, []string) error { return nil }

// Delete does nothing.
func (Noop) Delete(context.Context, ...string) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }

// Strings is a cache-aside read: it returns the cached list for key, or calls load and stores the result.
// Cache failures are logged and fall through to load; they never fail the request.
func Strings(ctx context.Context, c Cache, obs Observer, logger *slog.Logger, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	values, hit, err := c.GetStrings(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
	}
	if obs != nil {
		obs.RecordCacheLookup(key, hit)
	}
	if hit {
		return values, nil
	}

	values, err = load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.SetStrings(ctx, key, values); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
	}
	return values, nil
}
