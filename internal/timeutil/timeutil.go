// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/ayoisaiah/ultradian/internal/apperr"
)

const (
	secondsInAMinute = 60
	minutesInAnHour  = 60
)

// ClockLayout is the layout of a wall-clock time of day such as a wake time.
const ClockLayout = "15:04"

var errInvalidWakeTime = &apperr.Error{
	Message: "invalid wake time %q: expected HH:MM or a phrase like '7am' or '2 hours ago'",
}

// ErrInvalidWakeTime is returned when a wake time cannot be understood.
var ErrInvalidWakeTime = errInvalidWakeTime

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	if val < 0 {
		val = 0
	}

	return val / secondsInAMinute, val % secondsInAMinute
}

// SameDay reports whether a and b fall on the same calendar day in the
// location of b.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())

	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// DayKey returns the calendar day of t in YYYYMMDD form.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%d%02d%02d", t.Year(), t.Month(), t.Day())
}

// At returns the instant on the calendar day of day at the HH:MM clock time.
func At(day time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, errInvalidWakeTime.Fmt(clock).Wrap(err)
	}

	return time.Date(
		day.Year(),
		day.Month(),
		day.Day(),
		c.Hour(),
		c.Minute(),
		0,
		0,
		day.Location(),
	), nil
}

// ParseWakeTime normalises a wake time to HH:MM. Besides HH:MM, it accepts
// natural language input ("7am", "6:45 pm", "2 hours ago") resolved relative
// to now.
func ParseWakeTime(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errInvalidWakeTime.Fmt(s)
	}

	if t, err := time.Parse(ClockLayout, s); err == nil {
		return t.Format(ClockLayout), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	d, err := dateparser.Parse(cfg, s)
	if err != nil {
		return "", errInvalidWakeTime.Fmt(s).Wrap(err)
	}

	if d.Time.IsZero() {
		return "", errInvalidWakeTime.Fmt(s)
	}

	return d.Time.In(now.Location()).Format(ClockLayout), nil
}
