// Package session defines the persisted anchor of a day's ultradian session
// and the set of segments already reported for it
package session

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/ayoisaiah/ultradian/internal/apperr"
	"github.com/ayoisaiah/ultradian/internal/segment"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

var errInvalidAnchor = &apperr.Error{
	Message: "invalid session anchor: %s",
}

// ErrInvalidAnchor is returned for anchors that cannot drive a schedule.
var ErrInvalidAnchor = errInvalidAnchor

// Plan is the configuration a session is created from.
type Plan struct {
	// WakeTime is the local HH:MM time of day the schedule starts at.
	WakeTime string `json:"wake_time"`
	Grog     int    `json:"grog_minutes"`
	Peak     int    `json:"peak_minutes"`
	Trough   int    `json:"trough_minutes"`
	Cycles   int    `json:"cycles"`
}

// Segments lays out the plan's schedule.
func (p Plan) Segments() []segment.Spec {
	return segment.Build(p.Grog, p.Peak, p.Trough, p.Cycles)
}

// Anchor is the persisted record of the current session. Every derived
// position in the schedule is computed from StartTime.
type Anchor struct {
	StartTime time.Time `json:"start_time"`
	// EndTime is set once the session has ended.
	EndTime  time.Time `json:"end_time"`
	RecordID string    `json:"record_id,omitempty"`
	Plan
}

// NewAnchor creates an anchor for a plan starting at the plan's wake time on
// the calendar day of day.
func NewAnchor(p Plan, day time.Time) (*Anchor, error) {
	start, err := timeutil.At(day, p.WakeTime)
	if err != nil {
		return nil, err
	}

	return &Anchor{
		StartTime: start,
		Plan:      p,
	}, nil
}

// Validate checks that the anchor can drive a schedule.
func (a *Anchor) Validate() error {
	switch {
	case a == nil:
		return errInvalidAnchor.Fmt("missing")
	case a.StartTime.IsZero():
		return errInvalidAnchor.Fmt("start time is not set")
	case a.Grog < 0 || a.Peak < 0 || a.Trough < 0:
		return errInvalidAnchor.Fmt("durations must not be negative")
	case a.Cycles < 1:
		return errInvalidAnchor.Fmt("at least one cycle is required")
	}

	return nil
}

// Ended reports whether the session has been ended.
func (a *Anchor) Ended() bool {
	return !a.EndTime.IsZero()
}

// SameDay reports whether the session started on the calendar day of t.
func (a *Anchor) SameDay(t time.Time) bool {
	return timeutil.SameDay(a.StartTime, t)
}

// Bounds returns the scheduled start and end instants of segment i.
func (a *Anchor) Bounds(i int) (start, end time.Time) {
	s, e := segment.Offsets(a.Segments(), i)

	return a.StartTime.Add(time.Duration(s) * time.Minute),
		a.StartTime.Add(time.Duration(e) * time.Minute)
}

// EndOfSchedule returns the instant the final segment ends.
func (a *Anchor) EndOfSchedule() time.Time {
	total := segment.Total(a.Segments())

	return a.StartTime.Add(time.Duration(total) * time.Minute)
}

// Logged is the set of segment indices already reported to the record
// service. It is serialised as a sorted JSON array.
type Logged map[int]struct{}

// Has reports whether index i is in the set.
func (l Logged) Has(i int) bool {
	_, ok := l[i]

	return ok
}

// Add inserts index i into the set.
func (l Logged) Add(i int) {
	l[i] = struct{}{}
}

// Indices returns the indices in ascending order.
func (l Logged) Indices() []int {
	out := make([]int, 0, len(l))

	for i := range l {
		out = append(out, i)
	}

	slices.Sort(out)

	return out
}

func (l Logged) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Indices())
}

func (l *Logged) UnmarshalJSON(b []byte) error {
	var indices []int

	if err := json.Unmarshal(b, &indices); err != nil {
		return err
	}

	set := make(Logged, len(indices))

	for _, i := range indices {
		set.Add(i)
	}

	*l = set

	return nil
}
