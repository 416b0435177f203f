package issues

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultDraftTTL is how long a draft survives without being shown as a modal.
const DefaultDraftTTL = 10 * time.Minute

// DraftStore maps a context id to a pending draft. Entries expire a fixed
// time after they were written; reads do not extend their lifetime.
type DraftStore struct {
	cache *ttlcache.Cache[string, Draft]
}

// NewDraftStore constructs a DraftStore whose entries live for ttl.
func NewDraftStore(ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	cache := ttlcache.New[string, Draft](
		ttlcache.WithTTL[string, Draft](ttl),
		ttlcache.WithDisableTouchOnHit[string, Draft](),
	)
	return &DraftStore{cache: cache}
}

// Start runs the expired-entry sweeper in the background until Stop.
func (s *DraftStore) Start() {
	go s.cache.Start()
}

// Stop halts the sweeper started by Start.
func (s *DraftStore) Stop() {
	s.cache.Stop()
}

// Put stores d under key, replacing any existing entry.
func (s *DraftStore) Put(key string, d Draft) {
	s.cache.Set(key, d, ttlcache.DefaultTTL)
}

// Get returns the draft stored under key, if it has not expired.
func (s *DraftStore) Get(key string) (Draft, bool) {
	item := s.cache.Get(key)
	if item == nil {
		return Draft{}, false
	}
	return item.Value(), true
}

// Len returns the number of entries held, including expired ones not yet swept.
func (s *DraftStore) Len() int {
	return s.cache.Len()
}
