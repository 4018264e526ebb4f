// Package geo - cache.go wraps a Geocoder with per-location caching.
package geo

import (
	"context"
	"strings"
	"sync"
)

// cacheEntry stores a resolved point or the fact that resolution failed.
// Provider errors are not cached so transient failures can recover.
type cacheEntry struct {
	point *Point
}

// CachedGeocoder memoizes geocode results per normalized location string.
// Location strings repeat heavily across candidates, and one ranking pass
// used to trigger one provider call per candidate; the cache collapses
// that to one call per distinct location.
type CachedGeocoder struct {
	inner Geocoder

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCached wraps a geocoder with an in-memory cache.
func NewCached(inner Geocoder) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		entries: make(map[string]cacheEntry),
	}
}

// Geocode resolves a location, serving repeated lookups from memory.
// Both successful resolutions and definitive "no result" answers are
// cached; errors are passed through uncached.
func (c *CachedGeocoder) Geocode(ctx context.Context, location string) (*Point, error) {
	key := strings.ToLower(strings.TrimSpace(location))

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return entry.point, nil
	}

	point, err := c.inner.Geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{point: point}
	c.mu.Unlock()

	return point, nil
}

// Len returns the number of cached locations.
func (c *CachedGeocoder) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
