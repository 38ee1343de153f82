package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/pkg/logger"
)

const redisKeyPrefix = "poi:session:"

// RedisStore is the durable backend: sessions live under a sliding TTL that
// every read and write refreshes. Any Redis I/O failure degrades to the
// embedded in-process store instead of failing the request; callers never
// see backend errors, only the logs do.
type RedisStore struct {
	client   *redis.Client
	fallback *MemoryStore
	ttl      time.Duration
	log      logger.ILogger
}

// NewRedisStore wraps a Redis client with a 24h sliding TTL and an
// in-process fallback.
func NewRedisStore(client *redis.Client, fallback *MemoryStore, ttl time.Duration, log logger.ILogger) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{
		client:   client,
		fallback: fallback,
		ttl:      ttl,
		log:      log,
	}
}

func (s *RedisStore) Create(ctx context.Context, ownerId string) (string, error) {
	now := time.Now()
	sess := &Session{
		Id:           uuid.New().String(),
		OwnerId:      ownerId,
		History:      []Turn{},
		ShownPOIs:    []string{},
		CreatedAt:    now,
		LastAccessed: now,
	}
	if err := s.write(ctx, sess); err != nil {
		s.degrade("create", sess.Id, err)
		s.fallback.mu.Lock()
		s.fallback.cache.SetDefault(sess.Id, sess)
		s.fallback.mu.Unlock()
	}
	return sess.Id, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionId string) (*Session, bool) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+sessionId).Bytes()
	if err == redis.Nil {
		// Not in Redis; a degraded earlier write may have parked it locally.
		return s.fallback.Get(ctx, sessionId)
	}
	if err != nil {
		s.degrade("get", sessionId, err)
		return s.fallback.Get(ctx, sessionId)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.degrade("decode", sessionId, err)
		return s.fallback.Get(ctx, sessionId)
	}
	sess.normalize()
	sess.LastAccessed = time.Now()

	// Sliding window: reads refresh both the record and its TTL.
	if err := s.write(ctx, &sess); err != nil {
		s.degrade("refresh", sessionId, err)
	}
	return &sess, true
}

func (s *RedisStore) Update(ctx context.Context, sessionId string, patch Patch) error {
	sess, found := s.Get(ctx, sessionId)
	if !found {
		now := time.Now()
		sess = &Session{
			Id:           sessionId,
			History:      []Turn{},
			ShownPOIs:    []string{},
			CreatedAt:    now,
			LastAccessed: now,
		}
	}
	sess.Apply(patch)

	if err := s.write(ctx, sess); err != nil {
		s.degrade("update", sessionId, err)
		s.fallback.mu.Lock()
		s.fallback.cache.SetDefault(sessionId, sess)
		s.fallback.mu.Unlock()
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionId string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+sessionId).Err(); err != nil {
		s.degrade("delete", sessionId, err)
	}
	return s.fallback.Delete(ctx, sessionId)
}

func (s *RedisStore) CountActive(ctx context.Context) int {
	count := 0
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		s.degrade("count", "", err)
		return s.fallback.CountActive(ctx)
	}
	return count
}

// ExpireOlderThan is a no-op for Redis itself (the sliding TTL already
// expires idle sessions server-side) but still sweeps the local fallback.
func (s *RedisStore) ExpireOlderThan(ctx context.Context, age time.Duration) []Expired {
	return s.fallback.ExpireOlderThan(ctx, age)
}

func (s *RedisStore) write(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+sess.Id, data, s.ttl).Err()
}

func (s *RedisStore) degrade(op, sessionId string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn("session", "redis backend degraded to in-process store", map[string]interface{}{
		"op":         op,
		"session_id": sessionId,
		"error":      err.Error(),
	})
}
