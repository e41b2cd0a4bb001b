package phase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayoisaiah/ultradian/internal/segment"
	"github.com/ayoisaiah/ultradian/internal/session"
)

// DefaultInterval is the period of the recurring tick.
const DefaultInterval = time.Second

// Entry describes a segment the clock has just observed as active.
type Entry struct {
	Start   time.Time
	End     time.Time
	Anchor  *session.Anchor
	Segment segment.Spec
	Index   int
}

// Listener receives the side effects of a running clock. Each method is
// called at most once per crossing regardless of the tick rate.
type Listener interface {
	// OnSegment is called the first time a tick finds segment Index active.
	OnSegment(ctx context.Context, e Entry)
	// OnTransition is called when the active segment differs from the one
	// seen on the previous tick.
	OnTransition(ctx context.Context, from, to State)
	// OnComplete is called once when the schedule has fully elapsed.
	OnComplete(ctx context.Context, s State)
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow replaces the time source.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// WithInterval sets the tick period.
func WithInterval(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.interval = d
		}
	}
}

// Clock re-derives the schedule position from the anchor on every tick and
// reports segment changes to its listener.
type Clock struct {
	anchor   *session.Anchor
	listener Listener
	now      func() time.Time
	stop     chan struct{}
	last     State
	interval time.Duration
	mu       sync.Mutex
	stopOnce sync.Once
	stopped  atomic.Bool
	ticked   bool
}

// NewClock returns a clock for the schedule anchored at a. A nil or invalid
// anchor produces an idle clock that never ticks.
func NewClock(a *session.Anchor, l Listener, opts ...Option) *Clock {
	c := &Clock{
		anchor:   a,
		listener: l,
		now:      time.Now,
		interval: DefaultInterval,
		stop:     make(chan struct{}),
		last:     State{Phase: Idle, Index: -1},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.listener == nil {
		c.listener = nopListener{}
	}

	return c
}

// Idle reports whether the clock has no usable anchor.
func (c *Clock) Idle() bool {
	return c.anchor.Validate() != nil
}

// Done reports whether the clock has stopped, either because the schedule
// completed or because Stop was called.
func (c *Clock) Done() bool {
	return c.stopped.Load()
}

// Stop halts the clock. It is safe to call more than once and from any
// goroutine.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		close(c.stop)
	})
}

// State returns the state computed by the most recent tick.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}

// Tick derives the state at now and fires the listener for any change
// since the previous tick. Ticks after the clock is done are no-ops that
// return the last state.
func (c *Clock) Tick(ctx context.Context, now time.Time) State {
	if c.Idle() || c.Done() {
		return c.State()
	}

	c.mu.Lock()

	prev, first := c.last, !c.ticked
	s := Compute(c.anchor, now)
	c.last, c.ticked = s, true

	c.mu.Unlock()

	changed := first || s.Index != prev.Index

	if !changed {
		return s
	}

	if s.Phase != Complete {
		c.listener.OnSegment(ctx, Entry{
			Anchor:  c.anchor,
			Index:   s.Index,
			Segment: c.anchor.Segments()[s.Index],
			Start:   s.SegmentStart,
			End:     s.SegmentEnd,
		})
	}

	if !first {
		c.listener.OnTransition(ctx, prev, s)
	}

	if s.Phase == Complete {
		c.Stop()
		c.listener.OnComplete(ctx, s)
	}

	return s
}

// Run ticks immediately and then once per interval until the schedule
// completes, Stop is called or ctx is cancelled. onTick, if not nil,
// receives every computed state. An idle clock returns immediately.
func (c *Clock) Run(ctx context.Context, onTick func(State)) error {
	if c.Idle() {
		return nil
	}

	tick := func() {
		s := c.Tick(ctx, c.now())

		if onTick != nil {
			onTick(s)
		}
	}

	tick()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for !c.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stop:
			return nil
		case <-ticker.C:
			tick()
		}
	}

	return nil
}

type nopListener struct{}

func (nopListener) OnSegment(context.Context, Entry)           {}
func (nopListener) OnTransition(context.Context, State, State) {}
func (nopListener) OnComplete(context.Context, State)          {}
