package tokenprovider

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/fanyi/internal/tokenstore"
)

// Breaker stops calling a provider that keeps failing. While open, Acquire
// fails fast with gobreaker.ErrOpenState.
type Breaker struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next. The breaker opens after the given number of
// consecutive failures and allows one probe after cooldown.
func NewBreaker(next Provider, failures uint32, cooldown time.Duration) *Breaker {
	settings := gobreaker.Settings{
		Name:        "token-provider",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("tokenprovider: %s breaker %s -> %s", name, from, to)
		},
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) Acquire(ctx context.Context, seed string) (tokenstore.Token, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Acquire(ctx, seed)
	})
	if err != nil {
		return "", err
	}
	return v.(tokenstore.Token), nil
}

// State reports the breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
