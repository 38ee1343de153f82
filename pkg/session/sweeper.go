package session

import (
	"context"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/pkg/logger"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/events"
)

// EventPublisher receives the expiry events the sweeper emits. The NATS
// publisher satisfies this; a nil publisher means expiries are only logged.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Sweeper periodically expires idle sessions in the background, decoupled
// from request handling. It never blocks live requests: each sweep runs the
// store's own expiry pass and moves on.
type Sweeper struct {
	store    Store
	interval time.Duration
	maxIdle  time.Duration
	pub      EventPublisher
	log      logger.ILogger
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(store Store, interval, maxIdle time.Duration, pub EventPublisher, log logger.ILogger) *Sweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if maxIdle <= 0 {
		maxIdle = 24 * time.Hour
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		maxIdle:  maxIdle,
		pub:      pub,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks until Stop is called. Start it on its own goroutine.
func (s *Sweeper) Run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(context.Background())
		case <-s.stop:
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired := s.store.ExpireOlderThan(ctx, s.maxIdle)
	if len(expired) == 0 {
		return
	}
	if s.log != nil {
		s.log.Info("session", "expired idle sessions", map[string]interface{}{
			"removed": len(expired),
		})
	}
	if s.pub == nil {
		return
	}
	for _, e := range expired {
		if err := s.pub.Publish(ctx, events.NewSessionExpired(e.Id, e.TurnCount)); err != nil && s.log != nil {
			s.log.Warn("session", "failed to publish expiry event", map[string]interface{}{
				"session_id": e.Id,
				"error":      err.Error(),
			})
		}
	}
}

// Stop shuts the sweeper down and waits for the current sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}
