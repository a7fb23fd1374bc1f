package arena

import (
	"context"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// PacerConfig groups the rate-gate tunables. Values are taken from
// environment variables with the prefix "ARENA_PACE_".
// Example: ARENA_PACE_INTERVAL=500ms .
type PacerConfig struct {
	Interval time.Duration `envconfig:"INTERVAL" default:"200ms"`
}

// LoadPacerConfig populates PacerConfig from environment variables.
func LoadPacerConfig() (PacerConfig, error) {
	var c PacerConfig
	return c, envconfig.Process("ARENA_PACE", &c)
}

// pacer serializes outbound requests so consecutive sends are at least
// `interval` apart. One instance is shared by every operation on a Client so
// concurrent commands cannot collectively burst above the floor.
type pacer struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time // earliest time the next send may go out
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval}
}

// acquire blocks until the caller's send slot arrives, then records the new
// send time. Slots are granted in lock-acquisition order, so first-requested
// is first-granted.
func (p *pacer) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	now := time.Now()
	grant := p.next
	if grant.Before(now) {
		grant = now
	}
	p.next = grant.Add(p.interval)
	p.mu.Unlock()

	wait := time.Until(grant)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newDefaultPacer builds a pacer from environment configuration, falling
// back to the compiled default when the environment is malformed.
func newDefaultPacer() *pacer {
	cfg, err := LoadPacerConfig()
	if err != nil || cfg.Interval <= 0 {
		cfg.Interval = 200 * time.Millisecond
	}
	return newPacer(cfg.Interval)
}
