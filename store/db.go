package store

import (
	"time"

	"github.com/ayoisaiah/ultradian/internal/models"
	"github.com/ayoisaiah/ultradian/internal/session"
)

// SessionStore persists the anchor of the current session and the segments
// already reported for it.
type SessionStore interface {
	// Anchor returns the stored anchor, or nil if there is none. An anchor
	// that cannot be decoded yields ErrCorruptAnchor.
	Anchor() (*session.Anchor, error)
	// SaveAnchor creates or overwrites the stored anchor
	SaveAnchor(a *session.Anchor) error
	// Logged returns the set of logged segment indices (empty if none)
	Logged() (session.Logged, error)
	// MarkLogged adds a segment index to the logged set
	MarkLogged(index int) error
	// ClearLogged empties the logged set
	ClearLogged() error
	// Clear removes both the anchor and the logged set
	Clear() error
}

// BaselineStore persists daily baselines keyed by calendar day.
type BaselineStore interface {
	// Baseline returns the baseline logged on the calendar day of day, or
	// nil if there is none
	Baseline(day time.Time) (*models.Baseline, error)
	// SaveBaseline creates or overwrites the baseline for its day
	SaveBaseline(b *models.Baseline) error
}

// DB is the local storage interface.
type DB interface {
	SessionStore
	BaselineStore
	// Close ends the database connection
	Close() error
}
