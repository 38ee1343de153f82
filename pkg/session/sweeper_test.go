package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/events"
)

type capturePublisher struct {
	published []events.Event
	err       error
}

func (p *capturePublisher) Publish(_ context.Context, evt events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, evt)
	return nil
}

func TestSweepPublishesExpiryEvents(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")
	require.NoError(t, store.Update(ctx, id, Patch{Query: "q", SearchType: "general"}))
	time.Sleep(5 * time.Millisecond)

	pub := &capturePublisher{}
	sw := NewSweeper(store, time.Minute, time.Nanosecond, pub, nil)
	sw.sweep(ctx)

	require.Len(t, pub.published, 1)
	evt := pub.published[0]
	assert.Equal(t, events.TypeSessionExpired, evt.EventType())
	assert.Equal(t, id, evt.Payload()["session_id"])
	assert.Equal(t, 1, evt.Payload()["turn_count"])

	_, found := store.Get(ctx, id)
	assert.False(t, found)
}

func TestSweepWithoutPublisherOnlyRemoves(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx, "owner-1")
	time.Sleep(5 * time.Millisecond)

	sw := NewSweeper(store, time.Minute, time.Nanosecond, nil, nil)
	sw.sweep(ctx)

	_, found := store.Get(ctx, id)
	assert.False(t, found)
}

func TestSweepPublishFailureStillExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	_, err := store.Create(ctx, "owner-1")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	pub := &capturePublisher{err: errors.New("bus down")}
	sw := NewSweeper(store, time.Minute, time.Nanosecond, pub, nil)
	sw.sweep(ctx)

	assert.Equal(t, 0, store.CountActive(ctx))
}
