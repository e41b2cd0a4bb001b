// Package lifecycle creates, resumes and ends the day's session against the
// record service and wires the phase clock to its side effects
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/ultradian/internal/apperr"
	"github.com/ayoisaiah/ultradian/internal/emitter"
	"github.com/ayoisaiah/ultradian/internal/notify"
	"github.com/ayoisaiah/ultradian/internal/phase"
	"github.com/ayoisaiah/ultradian/internal/record"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/store"
)

var (
	errCreateSession = &apperr.Error{
		Message: "unable to create today's session record",
	}

	errSessionEnded = &apperr.Error{
		Message: "today's session has already ended: use --reset to start a new one",
	}

	errNoActiveSession = &apperr.Error{
		Message: "there is no active session today",
	}
)

var (
	// ErrMissingCredential is returned by Start when no bearer token is
	// available.
	ErrMissingCredential = record.ErrMissingCredential
	// ErrCreateSession is returned by Start when the record service rejects
	// or cannot be reached for a new session.
	ErrCreateSession = errCreateSession
	// ErrSessionEnded is returned by Start when today's session was already
	// ended.
	ErrSessionEnded = errSessionEnded
	// ErrNoActiveSession is returned by End when there is nothing to end.
	ErrNoActiveSession = errNoActiveSession
)

// Status is the state of the controller.
type Status int

const (
	NoSession Status = iota
	Active
	Ended
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Ended:
		return "ended"
	}

	return "no session"
}

// Records is the subset of the record service used by the controller.
type Records interface {
	CreateSession(ctx context.Context, req record.CreateSessionRequest) (record.ID, error)
	LogCycleEvent(ctx context.Context, e record.CycleEvent) error
	EndSession(ctx context.Context, id record.ID, endedAt time.Time) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the notifier alerted on phase changes.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithNow replaces the time source.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller owns the session state machine NoSession → Active → Ended. It
// implements phase.Listener so that a clock it creates reports segments to
// the emitter and completion back to the controller.
type Controller struct {
	store    store.SessionStore
	records  Records
	creds    record.Credentials
	emitter  *emitter.Emitter
	notifier notify.Notifier
	now      func() time.Time
	anchor   *session.Anchor
	clock    *phase.Clock
	wg       sync.WaitGroup
	mu       sync.Mutex
	status   Status
}

// New returns a controller persisting to db and talking to records with
// the bearer token from creds.
func New(
	db store.SessionStore,
	records Records,
	creds record.Credentials,
	opts ...Option,
) *Controller {
	c := &Controller{
		store:    db,
		records:  records,
		creds:    creds,
		emitter:  emitter.New(db, records),
		notifier: notify.Nop{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Status returns the controller's current state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// Anchor returns a copy of the active or ended session's anchor, or nil.
func (c *Controller) Anchor() *session.Anchor {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anchor == nil {
		return nil
	}

	a := *c.anchor

	return &a
}

func (c *Controller) checkCredential() error {
	if c.creds == nil {
		return ErrMissingCredential
	}

	token, err := c.creds.Token()
	if err != nil {
		return err
	}

	if token == "" {
		return ErrMissingCredential
	}

	return nil
}

// loadAnchor reads the persisted anchor. A corrupt anchor is discarded and
// reported as absent.
func (c *Controller) loadAnchor(ctx context.Context) (*session.Anchor, error) {
	a, err := c.store.Anchor()
	if errors.Is(err, store.ErrCorruptAnchor) {
		slog.WarnContext(ctx, "discarding unreadable session anchor",
			slog.Any("error", err),
		)

		return nil, c.store.Clear()
	}

	if err != nil {
		return nil, err
	}

	if a != nil && a.Validate() != nil {
		slog.WarnContext(ctx, "discarding invalid session anchor",
			slog.Any("error", a.Validate()),
		)

		return nil, c.store.Clear()
	}

	return a, nil
}

// Start resumes today's session if one is persisted, or creates a new one
// for plan. Calling Start while a session is active returns the active
// anchor without contacting the record service. reset discards today's
// session, ended or not, and creates a fresh one.
func (c *Controller) Start(
	ctx context.Context,
	plan session.Plan,
	reset bool,
) (*session.Anchor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == Active && !reset && c.anchor.SameDay(c.now()) {
		a := *c.anchor
		return &a, nil
	}

	if err := c.checkCredential(); err != nil {
		return nil, err
	}

	now := c.now()

	a, err := c.loadAnchor(ctx)
	if err != nil {
		return nil, err
	}

	if a != nil {
		switch {
		case !a.SameDay(now):
			slog.InfoContext(ctx, "discarding session from a previous day",
				slog.Time("started_at", a.StartTime),
				slog.String("record_id", a.RecordID),
			)
		case reset:
			slog.InfoContext(ctx, "resetting today's session",
				slog.String("record_id", a.RecordID),
			)

			if !a.Ended() {
				c.endRemote(ctx, a, now)
			}
		case a.Ended():
			c.anchor, c.status = a, Ended
			return nil, errSessionEnded
		default:
			slog.InfoContext(ctx, "resuming today's session",
				slog.String("record_id", a.RecordID),
				slog.Time("started_at", a.StartTime),
			)

			c.anchor, c.status = a, Active

			resumed := *a

			return &resumed, nil
		}

		if err = c.store.Clear(); err != nil {
			return nil, err
		}
	}

	return c.create(ctx, plan, now)
}

func (c *Controller) create(
	ctx context.Context,
	plan session.Plan,
	now time.Time,
) (*session.Anchor, error) {
	a, err := session.NewAnchor(plan, now)
	if err != nil {
		return nil, err
	}

	if err = a.Validate(); err != nil {
		return nil, err
	}

	id, err := c.records.CreateSession(ctx, record.CreateSessionRequest{
		StartedAt: a.StartTime,
		WakeTime:  a.WakeTime,
		Peak:      a.Peak,
		Trough:    a.Trough,
		Grog:      a.Grog,
		Cycles:    a.Cycles,
	})
	if err != nil {
		slog.ErrorContext(ctx, "creating session record failed",
			slog.Any("error", err),
		)

		return nil, errCreateSession.Wrap(err)
	}

	a.RecordID = string(id)

	if err = c.store.SaveAnchor(a); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "session created",
		slog.String("record_id", a.RecordID),
		slog.Time("started_at", a.StartTime),
		slog.Int("cycles", a.Cycles),
	)

	c.anchor, c.status = a, Active

	created := *a

	return &created, nil
}

// Clock returns a phase clock for the active session with the controller
// as its listener. The clock is idle when no session is active.
func (c *Controller) Clock(opts ...phase.Option) *phase.Clock {
	c.mu.Lock()
	defer c.mu.Unlock()

	var a *session.Anchor

	if c.status == Active {
		cp := *c.anchor
		a = &cp
	}

	c.clock = phase.NewClock(a, c, opts...)

	return c.clock
}

// OnSegment reports the entered segment to the record service.
func (c *Controller) OnSegment(ctx context.Context, e phase.Entry) {
	c.emitter.LogSegment(ctx, e.Anchor, e.Index, e.Segment, e.Start, e.End)
}

// OnTransition alerts the user about the new phase in the background.
func (c *Controller) OnTransition(ctx context.Context, _, to phase.State) {
	ctx = context.WithoutCancel(ctx)

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.notifier.Notify(ctx, to); err != nil {
			slog.WarnContext(ctx, "phase notification failed",
				slog.String("phase", string(to.Phase)),
				slog.Any("error", err),
			)
		}
	}()
}

// OnComplete ends the session once its schedule has elapsed.
func (c *Controller) OnComplete(ctx context.Context, _ phase.State) {
	err := c.Complete(ctx)
	if err != nil && !errors.Is(err, errNoActiveSession) {
		slog.ErrorContext(ctx, "completing session failed",
			slog.Any("error", err),
		)
	}
}

// Complete moves an active session to Ended after its schedule elapsed.
func (c *Controller) Complete(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != Active {
		return errNoActiveSession
	}

	slog.InfoContext(ctx, "session complete",
		slog.String("record_id", c.anchor.RecordID),
	)

	return c.finish(ctx)
}

// End terminates today's session early and halts the clock. Without a
// prior Start, the persisted session is loaded first.
func (c *Controller) End(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == Ended {
		return errSessionEnded
	}

	if c.status == NoSession {
		a, err := c.loadAnchor(ctx)
		if err != nil {
			return err
		}

		switch {
		case a == nil || !a.SameDay(c.now()):
			return errNoActiveSession
		case a.Ended():
			c.anchor, c.status = a, Ended
			return errSessionEnded
		}

		c.anchor, c.status = a, Active
	}

	if c.clock != nil {
		c.clock.Stop()
	}

	slog.InfoContext(ctx, "ending session",
		slog.String("record_id", c.anchor.RecordID),
	)

	return c.finish(ctx)
}

// finish persists the ended anchor, clears the logged set and ends the
// remote record in the background. The caller holds c.mu.
func (c *Controller) finish(ctx context.Context) error {
	now := c.now()

	c.status = Ended
	c.anchor.EndTime = now

	c.endRemote(ctx, c.anchor, now)

	err := c.store.SaveAnchor(c.anchor)
	if err != nil {
		return err
	}

	return c.store.ClearLogged()
}

// endRemote sends EndSession without waiting for the outcome. Failures are
// only logged.
func (c *Controller) endRemote(ctx context.Context, a *session.Anchor, at time.Time) {
	if a.RecordID == "" {
		return
	}

	ctx = context.WithoutCancel(ctx)
	id := record.ID(a.RecordID)

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		err := c.records.EndSession(ctx, id, at)
		if err != nil {
			slog.ErrorContext(ctx, "ending session record failed",
				slog.String("record_id", string(id)),
				slog.Any("error", err),
			)

			return
		}

		slog.InfoContext(ctx, "session record ended",
			slog.String("record_id", string(id)),
		)
	}()
}

// Wait blocks until every background request and notification finishes.
func (c *Controller) Wait() {
	c.emitter.Wait()
	c.wg.Wait()
}

// RecommendCycles maps a vibe score to a cycle count. A missing score
// yields the default of three cycles.
func RecommendCycles(score *float64) int {
	if score == nil {
		return 3
	}

	switch s := *score; {
	case s >= 90:
		return 5
	case s >= 75:
		return 4
	case s >= 60:
		return 3
	}

	return 2
}
