package phone

import (
	"context"
	"fmt"
	"sync"
	"time"

	"phonechat/internal/logging"
)

// Clock drives the status bar time. It either follows the wall clock,
// refreshed by a periodic ticker, or shows a manually set time.
//
// At most one ticker goroutine runs per Clock: Start cancels and waits for
// the previous one before launching a new one.
type Clock struct {
	mu     sync.Mutex
	now    func() time.Time
	manual time.Time
	frozen bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewClock returns a clock reading now. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Now returns the displayed time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return c.manual
	}
	return c.now()
}

// String renders the displayed time as HH:MM.
func (c *Clock) String() string {
	return c.Now().Format("15:04")
}

// Frozen reports whether a manual time is shown.
func (c *Clock) Frozen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frozen
}

// Running reports whether a ticker is active.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Set freezes the display at hour:minute of the current day and stops the
// ticker so the manual time is not overwritten.
func (c *Clock) Set(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid time %02d:%02d", hour, minute)
	}
	c.Stop()

	c.mu.Lock()
	base := c.now()
	if c.frozen {
		base = c.manual
	}
	y, m, d := base.Date()
	c.manual = time.Date(y, m, d, hour, minute, 0, 0, base.Location())
	c.frozen = true
	c.mu.Unlock()

	logging.Phone("clock set to %02d:%02d", hour, minute)
	return nil
}

// Resume returns to wall-clock time and restarts ticking.
func (c *Clock) Resume(ctx context.Context, interval time.Duration, onTick func(time.Time)) {
	c.mu.Lock()
	c.frozen = false
	c.mu.Unlock()

	logging.Phone("clock resumed")
	c.Start(ctx, interval, onTick)
}

// Start begins calling onTick every interval until ctx is done or Stop is
// called. Any ticker already running is stopped first.
func (c *Clock) Start(ctx context.Context, interval time.Duration, onTick func(time.Time)) {
	c.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if onTick != nil {
					onTick(c.Now())
				}
			}
		}
	}()
	logging.PhoneDebug("clock ticker started (%s)", interval)
}

// Stop cancels the running ticker, if any, and waits for it to exit.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logging.PhoneDebug("clock ticker stopped")
}
