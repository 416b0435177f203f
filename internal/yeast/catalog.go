package yeast

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a fetched catalog is reused.
const DefaultCacheTTL = 5 * time.Minute

// Fetcher loads the full catalog.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]Yeast, error)
}

// Clock abstracts time for cache expiry.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Catalog is a read-through cache over a Fetcher. It is populated lazily and
// refreshed once older than its TTL. An empty result is never cached.
type Catalog struct {
	fetcher Fetcher
	clock   Clock
	ttl     time.Duration

	group singleflight.Group

	mu        sync.RWMutex
	fetchedAt time.Time
	data      []Yeast
}

// NewCatalog constructs a Catalog. A nil clock uses wall time.
func NewCatalog(fetcher Fetcher, ttl time.Duration, clock Clock) *Catalog {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Catalog{fetcher: fetcher, clock: clock, ttl: ttl}
}

// All returns the catalog, fetching it when the cache is empty or stale.
func (c *Catalog) All(ctx context.Context) ([]Yeast, error) {
	if data, ok := c.cached(); ok {
		return data, nil
	}

	v, err, _ := c.group.Do("all", func() (any, error) {
		if data, ok := c.cached(); ok {
			return data, nil
		}
		data, err := c.fetcher.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(data) > 0 {
			c.mu.Lock()
			c.data = data
			c.fetchedAt = c.clock.Now()
			c.mu.Unlock()
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Yeast), nil
}

// Invalidate drops the cached catalog.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.fetchedAt = time.Time{}
}

func (c *Catalog) cached() ([]Yeast, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.data) == 0 {
		return nil, false
	}
	if c.clock.Now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.data, true
}
