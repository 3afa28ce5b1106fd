package detect

import (
	"sync"
	"time"
)

// OptionsCache holds a detection options value that is refreshed from an
// external source at most once per TTL. It replaces ad-hoc module-level
// caching with an explicit handle the caller passes around; the refresh
// decision is a pure function of elapsed time against an injectable clock,
// so TTL behavior is testable without sleeping.
//
// The cache is read-mostly. Concurrent Get calls may race a refresh, which
// is acceptable: a stale options value is still a valid options value.
type OptionsCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	refresh func() (DetectionOptions, error)

	value    DetectionOptions
	loadedAt time.Time
	loaded   bool
}

// NewOptionsCache creates a cache that calls refresh when the cached value
// is older than ttl. A nil clock uses time.Now.
func NewOptionsCache(ttl time.Duration, refresh func() (DetectionOptions, error), clock func() time.Time) *OptionsCache {
	if clock == nil {
		clock = time.Now
	}
	return &OptionsCache{
		ttl:     ttl,
		now:     clock,
		refresh: refresh,
	}
}

// Get returns the cached options, refreshing first when the TTL has lapsed
// or nothing has been loaded yet. A failed refresh returns the previous
// value when one exists, so transient source errors do not take detection
// down; with no previous value the error is returned.
func (c *OptionsCache) Get() (DetectionOptions, error) {
	c.mu.RLock()
	if c.loaded && c.now().Sub(c.loadedAt) < c.ttl {
		value := c.value
		c.mu.RUnlock()
		return value, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if c.loaded && c.now().Sub(c.loadedAt) < c.ttl {
		return c.value, nil
	}

	value, err := c.refresh()
	if err != nil {
		if c.loaded {
			return c.value, nil
		}
		return DetectionOptions{}, err
	}

	c.value = value
	c.loadedAt = c.now()
	c.loaded = true
	return c.value, nil
}
