// Package phase maps the current time onto a session's schedule and drives
// the recurring tick that detects phase transitions
package phase

import (
	"math"
	"time"

	"github.com/ayoisaiah/ultradian/internal/segment"
	"github.com/ayoisaiah/ultradian/internal/session"
)

// Phase is the kind of the active segment, or one of the states outside the
// schedule.
type Phase string

const (
	// Idle means there is no usable anchor to derive a position from.
	Idle     Phase = "idle"
	Grog     Phase = Phase(segment.Grog)
	Peak     Phase = Phase(segment.Peak)
	Trough   Phase = Phase(segment.Trough)
	Complete Phase = "complete"
)

// Label returns a human readable name for the phase.
func (p Phase) Label() string {
	switch p {
	case Grog, Peak, Trough:
		return segment.Kind(p).Label()
	case Complete:
		return "Session complete"
	}

	return "No active session"
}

// State is the position in the schedule at an instant. It is derived on
// every tick and never stored.
type State struct {
	SegmentStart time.Time
	SegmentEnd   time.Time
	Phase        Phase
	// Index is the active segment, or -1 outside the schedule.
	Index int
	// Remaining is the number of seconds left in the active segment.
	Remaining int
	// Cycle is the 1-based cycle of the active segment (0 during grog).
	Cycle int
	// Cycles is the number of cycles in the schedule.
	Cycles int
}

// Progress returns the fraction of the active segment that has elapsed.
func (s State) Progress() float64 {
	total := s.SegmentEnd.Sub(s.SegmentStart).Seconds()
	if total <= 0 {
		return 1
	}

	p := 1 - float64(s.Remaining)/total

	return math.Max(0, math.Min(1, p))
}

// Compute derives the state of the schedule anchored at a at the instant now.
// Segment boundaries are closed-open and resolved to whole minutes; the
// remaining time has one-second resolution.
func Compute(a *session.Anchor, now time.Time) State {
	if a.Validate() != nil {
		return State{Phase: Idle, Index: -1}
	}

	segments := a.Segments()

	elapsedSecs := int(math.Floor(now.Sub(a.StartTime).Seconds()))
	elapsedMins := int(math.Floor(float64(elapsedSecs) / 60))

	i := segment.Locate(segments, elapsedMins)
	if i < 0 {
		return State{
			Phase:  Complete,
			Index:  -1,
			Cycles: a.Cycles,
		}
	}

	_, end := segment.Offsets(segments, i)
	start, stop := a.Bounds(i)

	remaining := end*60 - elapsedSecs
	if remaining < 0 {
		remaining = 0
	}

	return State{
		Phase:        Phase(segments[i].Kind),
		Index:        i,
		Remaining:    remaining,
		Cycle:        segments[i].Cycle,
		Cycles:       a.Cycles,
		SegmentStart: start,
		SegmentEnd:   stop,
	}
}
