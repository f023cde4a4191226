package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Countdown decrements a number of seconds once per tick and calls onExpire
// when it reaches zero. The tick is configurable so tests can run it fast.
type Countdown struct {
	tick      time.Duration
	remaining atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCountdown(tick time.Duration) *Countdown {
	if tick <= 0 {
		tick = time.Second
	}
	return &Countdown{tick: tick}
}

// Remaining returns the seconds left as of the last tick.
func (c *Countdown) Remaining() int64 {
	return c.remaining.Load()
}

// Run blocks until the countdown expires or ctx is done. onExpire is called at
// most once and only when the countdown reached zero; onTick may be nil.
func (c *Countdown) Run(ctx context.Context, seconds int64, onTick func(left int64), onExpire func()) error {
	if seconds < 0 {
		seconds = 0
	}
	c.remaining.Store(seconds)
	if seconds == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		onExpire()
		return nil
	}

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			left := c.remaining.Add(-1)
			if onTick != nil {
				onTick(left)
			}
			if left <= 0 {
				onExpire()
				return nil
			}
		}
	}
}

// Start runs the countdown on its own goroutine. A second Start while one is
// running is ignored.
func (c *Countdown) Start(ctx context.Context, seconds int64, onTick func(left int64), onExpire func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		select {
		case <-c.done:
		default:
			return
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	go func() {
		defer close(done)
		_ = c.Run(ctx, seconds, onTick, onExpire)
	}()
}

// Stop cancels a running countdown and waits for its goroutine to exit. It is
// safe to call more than once and before Start. It must not be called from
// inside onTick or onExpire.
func (c *Countdown) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()
	if done == nil {
		return
	}
	cancel()
	<-done
}
