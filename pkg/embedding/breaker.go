package embedding

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerProvider wraps a Provider with a circuit breaker so a flapping
// embedding backend fails fast instead of stacking timed-out requests.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[[]float32]
}

// NewBreakerProvider trips the circuit after 5 consecutive failures and
// probes again after 30 seconds.
func NewBreakerProvider(inner Provider, name string) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerProvider{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[[]float32](settings),
	}
}

func (p *BreakerProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	return p.cb.Execute(func() ([]float32, error) {
		return p.inner.Generate(ctx, text, taskType)
	})
}
