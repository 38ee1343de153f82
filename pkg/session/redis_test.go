package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis returns a client whose every command fails fast, standing
// in for a Redis outage.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisStoreDegradesToFallbackOnIOFailure(t *testing.T) {
	ctx := context.Background()
	store := NewRedisStore(unreachableRedis(), NewMemoryStore(time.Hour), time.Hour, nil)

	id, err := store.Create(ctx, "owner-1")
	require.NoError(t, err, "backend failure must not surface on create")
	require.NotEmpty(t, id)

	require.NoError(t, store.Update(ctx, id, Patch{Query: "q1", SearchType: "general"}))
	require.NoError(t, store.Update(ctx, id, Patch{Query: "q2", SearchType: "general"}))

	sess, found := store.Get(ctx, id)
	require.True(t, found, "session must survive in the in-process fallback")
	assert.Equal(t, 2, sess.TurnCount)
	assert.Equal(t, "q2", sess.Context.LastQuery)
	assert.Len(t, sess.History, 2)
}

func TestRedisStoreDeleteDegrades(t *testing.T) {
	ctx := context.Background()
	store := NewRedisStore(unreachableRedis(), NewMemoryStore(time.Hour), time.Hour, nil)

	id, err := store.Create(ctx, "owner-1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id), "backend failure must not surface on delete")
	_, found := store.Get(ctx, id)
	assert.False(t, found)
}

func TestRedisStoreExpirySweepsFallback(t *testing.T) {
	ctx := context.Background()
	store := NewRedisStore(unreachableRedis(), NewMemoryStore(time.Hour), time.Hour, nil)

	id, err := store.Create(ctx, "owner-1")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	removed := store.ExpireOlderThan(ctx, time.Nanosecond)
	require.Len(t, removed, 1)
	assert.Equal(t, id, removed[0].Id)
}
