// Package emitter reports peak and trough segments to the record service
// at most once per session
package emitter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/ultradian/internal/record"
	"github.com/ayoisaiah/ultradian/internal/segment"
	"github.com/ayoisaiah/ultradian/internal/session"
)

// EventLogger sends cycle events to the record service.
type EventLogger interface {
	LogCycleEvent(ctx context.Context, e record.CycleEvent) error
}

// LoggedStore persists the set of reported segment indices.
type LoggedStore interface {
	Logged() (session.Logged, error)
	MarkLogged(index int) error
}

// Emitter sends one cycle event per peak or trough segment. An index is
// persisted as logged before its event is sent, so a failed send is never
// retried.
type Emitter struct {
	store  LoggedStore
	events EventLogger
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// New returns an emitter backed by store that sends through events.
func New(store LoggedStore, events EventLogger) *Emitter {
	return &Emitter{
		store:  store,
		events: events,
	}
}

// LogSegment reports segment index of the session anchored at a. Grog
// segments and indices that are already logged are ignored. It returns
// true if an event was dispatched. The send happens in the background and
// its outcome is only logged.
func (e *Emitter) LogSegment(
	ctx context.Context,
	a *session.Anchor,
	index int,
	seg segment.Spec,
	start, end time.Time,
) bool {
	if seg.Kind != segment.Peak && seg.Kind != segment.Trough {
		return false
	}

	if a == nil || a.RecordID == "" {
		slog.WarnContext(ctx, "no session record to log against",
			slog.Int("index", index),
		)

		return false
	}

	if !e.mark(ctx, index) {
		return false
	}

	ev := record.CycleEvent{
		RecordID: record.ID(a.RecordID),
		Kind:     seg.Kind,
		Start:    start,
		End:      end,
	}

	ctx = context.WithoutCancel(ctx)

	e.wg.Add(1)

	go func() {
		defer e.wg.Done()

		err := e.events.LogCycleEvent(ctx, ev)
		if err != nil {
			slog.ErrorContext(ctx, "logging cycle event failed",
				slog.Int("index", index),
				slog.String("kind", string(seg.Kind)),
				slog.Int("cycle", seg.Cycle),
				slog.Any("error", err),
			)

			return
		}

		slog.InfoContext(ctx, "cycle event logged",
			slog.Int("index", index),
			slog.String("kind", string(seg.Kind)),
			slog.Int("cycle", seg.Cycle),
		)
	}()

	return true
}

// mark records index as logged, reporting false if it already was or if
// the store could not be updated.
func (e *Emitter) mark(ctx context.Context, index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	logged, err := e.store.Logged()
	if err != nil {
		slog.ErrorContext(ctx, "reading logged segments failed",
			slog.Any("error", err),
		)

		return false
	}

	if logged.Has(index) {
		return false
	}

	err = e.store.MarkLogged(index)
	if err != nil {
		slog.ErrorContext(ctx, "marking segment as logged failed",
			slog.Int("index", index),
			slog.Any("error", err),
		)

		return false
	}

	return true
}

// Wait blocks until every dispatched event has finished sending.
func (e *Emitter) Wait() {
	e.wg.Wait()
}
