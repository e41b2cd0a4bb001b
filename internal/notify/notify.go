// Package notify alerts the user when the schedule moves to a new phase
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayoisaiah/ultradian/internal/phase"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

// Notifier alerts the user that the schedule has entered state s.
type Notifier interface {
	Notify(ctx context.Context, s phase.State) error
}

// Message returns the title and body of the alert for s. Times are
// rendered with layout.
func Message(s phase.State, layout string) (title, body string) {
	if layout == "" {
		layout = timeutil.ClockLayout
	}

	title = s.Phase.Label()
	mins := int(s.SegmentEnd.Sub(s.SegmentStart).Minutes())
	until := s.SegmentEnd.Format(layout)

	switch s.Phase {
	case phase.Peak:
		body = fmt.Sprintf(
			"Cycle %d of %d: focus for %d minutes until %s",
			s.Cycle, s.Cycles, mins, until,
		)
	case phase.Trough:
		body = fmt.Sprintf(
			"Cycle %d of %d: step away for %d minutes until %s",
			s.Cycle, s.Cycles, mins, until,
		)
	case phase.Grog:
		body = fmt.Sprintf("Ease into the day until %s", until)
	case phase.Complete:
		body = fmt.Sprintf("All %d cycles are done for today", s.Cycles)
	default:
		body = "There is no session running"
	}

	return title, body
}

// Multi fans out to several notifiers. Every notifier is attempted and the
// failures are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, s phase.State) error {
	var errs []error

	for _, n := range m {
		if n == nil {
			continue
		}

		if err := n.Notify(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Nop discards every alert.
type Nop struct{}

func (Nop) Notify(context.Context, phase.State) error {
	return nil
}
