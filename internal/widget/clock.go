package widget

import (
	"sync"
	"time"
)

// Timer is a running periodic callback.
type Timer interface {
	// Stop cancels further callbacks. It never blocks and is safe to call
	// from inside the callback.
	Stop()
}

// Clock schedules periodic callbacks for widget animation.
type Clock interface {
	Every(d time.Duration, fn func()) Timer
}

// RealClock runs callbacks on a time.Ticker goroutine.
type RealClock struct{}

type realTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (RealClock) Every(d time.Duration, fn func()) Timer {
	t := &realTimer{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

func (t *realTimer) run(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

func (t *realTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

// ManualClock only moves when Advance is called. Callbacks run on the
// caller's goroutine.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	period  time.Duration
	next    time.Duration
	fn      func()
	stopped bool
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, period: d, next: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that comes
// due in deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	deadline := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due *manualTimer
		for _, t := range c.timers {
			if t.stopped || t.next > deadline {
				continue
			}
			if due == nil || t.next < due.next {
				due = t
			}
		}
		if due == nil {
			c.now = deadline
			c.prune()
			c.mu.Unlock()
			return
		}
		c.now = due.next
		due.next += due.period
		fn := due.fn
		c.mu.Unlock()

		fn()
	}
}

// Now is the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending is the number of timers that have not been stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (c *ManualClock) prune() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live
}

func (t *manualTimer) Stop() {
	t.clock.mu.Lock()
	t.stopped = true
	t.clock.mu.Unlock()
}
