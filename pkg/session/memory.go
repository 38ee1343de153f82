package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MemoryStore is the default in-process backend, built on go-cache with idle
// expiry. A store-wide mutex serializes read-modify-write cycles so a patch
// never lands on a half-written session.
type MemoryStore struct {
	cache *cache.Cache
	mu    sync.Mutex
}

// NewMemoryStore creates an in-process store. Sessions idle longer than ttl
// are purged by go-cache's janitor; the Sweeper additionally reports evictions.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (s *MemoryStore) Create(_ context.Context, ownerId string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &Session{
		Id:           uuid.New().String(),
		OwnerId:      ownerId,
		History:      []Turn{},
		ShownPOIs:    []string{},
		CreatedAt:    now,
		LastAccessed: now,
	}
	sess.normalize()
	s.cache.Set(sess.Id, sess, cache.DefaultExpiration)
	return sess.Id, nil
}

// Get returns a copy of the session so callers never mutate cached state
// directly. Reading refreshes last access and the entry's TTL.
func (s *MemoryStore) Get(_ context.Context, sessionId string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, found := s.lookup(sessionId)
	if !found {
		return nil, false
	}
	stored.LastAccessed = time.Now()
	s.cache.Set(sessionId, stored, cache.DefaultExpiration)

	return stored.clone(), true
}

func (s *MemoryStore) Update(_ context.Context, sessionId string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, found := s.lookup(sessionId)
	if !found {
		// A patch against an expired or unknown id starts a fresh session
		// under the same key; losing context beats losing the turn.
		now := time.Now()
		stored = &Session{
			Id:           sessionId,
			History:      []Turn{},
			ShownPOIs:    []string{},
			CreatedAt:    now,
			LastAccessed: now,
		}
	}
	stored.Apply(patch)
	s.cache.Set(sessionId, stored, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(sessionId)
	return nil
}

func (s *MemoryStore) CountActive(_ context.Context) int {
	return s.cache.ItemCount()
}

// ExpireOlderThan drops sessions idle for longer than age and reports what
// was removed. The background sweeper calls this on a ticker.
func (s *MemoryStore) ExpireOlderThan(_ context.Context, age time.Duration) []Expired {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-age)
	var removed []Expired
	for id, item := range s.cache.Items() {
		sess, ok := item.Object.(*Session)
		if !ok {
			s.cache.Delete(id)
			removed = append(removed, Expired{Id: id})
			continue
		}
		if sess.LastAccessed.Before(cutoff) {
			s.cache.Delete(id)
			removed = append(removed, Expired{Id: id, TurnCount: sess.TurnCount})
		}
	}
	return removed
}

func (s *MemoryStore) lookup(sessionId string) (*Session, bool) {
	x, found := s.cache.Get(sessionId)
	if !found {
		return nil, false
	}
	sess, ok := x.(*Session)
	if !ok {
		return nil, false
	}
	sess.normalize()
	return sess, true
}
