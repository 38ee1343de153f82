package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
)

func result(title string) scoring.ScoredCandidate {
	return scoring.ScoredCandidate{
		Candidate: entity.Candidate{Id: uuid.New(), Title: title},
		Breakdown: map[string]float64{},
		Total:     0.5,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	id, err := store.Create(ctx, "owner-1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	patch := Patch{
		Query:      "vegetarian restaurant",
		SearchType: "general",
		Results:    []scoring.ScoredCandidate{result("A"), result("B")},
	}
	require.NoError(t, store.Update(ctx, id, patch))

	sess, found := store.Get(ctx, id)
	require.True(t, found)
	assert.Equal(t, "vegetarian restaurant", sess.Context.LastQuery)
	assert.Equal(t, "general", sess.Context.SearchType)
	require.Len(t, sess.Context.LastResults, 2)
	assert.Equal(t, "A", sess.Context.LastResults[0].Title)
}

func TestTurnCounterIncrementsPerQuery(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")

	const n = 7
	for i := 0; i < n; i++ {
		require.NoError(t, store.Update(ctx, id, Patch{Query: "q", SearchType: "general"}))
	}

	sess, found := store.Get(ctx, id)
	require.True(t, found)
	assert.Equal(t, n, sess.TurnCount)
	assert.Len(t, sess.History, n)
}

func TestHistoryBounded(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")

	for i := 0; i < MaxHistory+10; i++ {
		require.NoError(t, store.Update(ctx, id, Patch{Query: "q", SearchType: "general"}))
	}

	sess, _ := store.Get(ctx, id)
	assert.Len(t, sess.History, MaxHistory)
	assert.Equal(t, MaxHistory+10, sess.TurnCount, "eviction must not touch the turn counter")
}

func TestLastResultsCapped(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")

	results := make([]scoring.ScoredCandidate, 9)
	for i := range results {
		results[i] = result("poi")
	}
	require.NoError(t, store.Update(ctx, id, Patch{Query: "q", SearchType: "general", Results: results}))

	sess, _ := store.Get(ctx, id)
	assert.Len(t, sess.Context.LastResults, MaxLastResults)
}

func TestUpdateUnknownIdStartsFreshSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Update(ctx, "expired-id", Patch{Query: "q", SearchType: "general"}))
	sess, found := store.Get(ctx, "expired-id")
	require.True(t, found)
	assert.Equal(t, 1, sess.TurnCount)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")
	require.NoError(t, store.Update(ctx, id, Patch{Query: "q", SearchType: "general"}))

	a, _ := store.Get(ctx, id)
	a.Context.LastQuery = "mutated"

	b, _ := store.Get(ctx, id)
	assert.Equal(t, "q", b.Context.LastQuery)
}

func TestGetSnapshotSurvivesLaterWrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")
	require.NoError(t, store.Update(ctx, id, Patch{
		Query:      "q1",
		SearchType: "general",
		Results:    []scoring.ScoredCandidate{result("A")},
	}))

	snapshot, found := store.Get(ctx, id)
	require.True(t, found)

	require.NoError(t, store.Update(ctx, id, Patch{
		Query:      "q2",
		SearchType: "general",
		Results:    []scoring.ScoredCandidate{result("B"), result("C")},
	}))

	assert.Len(t, snapshot.History, 1)
	assert.Equal(t, "q1", snapshot.History[0].Query)
	require.Len(t, snapshot.Context.LastResults, 1)
	assert.Equal(t, "A", snapshot.Context.LastResults[0].Title)
}

func TestExpireOlderThan(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")
	require.NoError(t, store.Update(ctx, id, Patch{Query: "q", SearchType: "general"}))

	removed := store.ExpireOlderThan(ctx, 0)
	require.Len(t, removed, 1)
	assert.Equal(t, id, removed[0].Id)
	assert.Equal(t, 1, removed[0].TurnCount)
	_, found := store.Get(ctx, id)
	assert.False(t, found)
	assert.Equal(t, 0, store.CountActive(ctx))
}

func TestCountActive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	for i := 0; i < 3; i++ {
		_, err := store.Create(ctx, "owner")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.CountActive(ctx))
}

func TestConcurrentUpdatesDoNotCorrupt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, id, Patch{Query: "q", SearchType: "general"})
		}()
	}
	wg.Wait()

	sess, found := store.Get(ctx, id)
	require.True(t, found)
	assert.Equal(t, 20, sess.TurnCount)
	assert.Len(t, sess.History, 20)
}
