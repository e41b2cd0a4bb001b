// Package store persists the current session and daily baselines locally
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/ultradian/internal/apperr"
	"github.com/ayoisaiah/ultradian/internal/models"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

const (
	sessionBucket  = "session"
	baselineBucket = "baselines"

	anchorKey = "anchor"
	loggedKey = "logged"
)

// DefaultTimeout is how long NewClient and NewDisk wait for the store lock.
const DefaultTimeout = 1 * time.Second

var (
	errLocked = &apperr.Error{
		Message: "is ultradian already running? Only one instance can be active at a time",
	}

	errCorruptAnchor = &apperr.Error{
		Message: "stored session anchor is unreadable",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend: %s",
	}
)

var (
	// ErrLocked is returned when another process holds the database.
	ErrLocked = errLocked
	// ErrCorruptAnchor is returned when the stored anchor cannot be decoded.
	ErrCorruptAnchor = errCorruptAnchor
)

// Backend names a storage implementation.
type Backend string

const (
	BackendBolt Backend = "bolt"
	BackendDisk Backend = "disk"
)

// Open opens the storage backend at path.
func Open(backend Backend, path string) (DB, error) {
	switch backend {
	case BackendBolt, "":
		return NewClient(path, DefaultTimeout)
	case BackendDisk:
		return NewDisk(path, DefaultTimeout)
	}

	return nil, errUnknownBackend.Fmt(backend)
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) Anchor() (*session.Anchor, error) {
	var a *session.Anchor

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket)).Get([]byte(anchorKey))
		if len(b) == 0 {
			return nil
		}

		var err error

		a, err = decodeAnchor(b)

		return err
	})

	return a, err
}

func (c *Client) SaveAnchor(a *session.Anchor) error {
	value, err := json.Marshal(a)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte(anchorKey), value)
	})
}

func (c *Client) Logged() (session.Logged, error) {
	var logged session.Logged

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		logged, err = decodeLogged(
			tx.Bucket([]byte(sessionBucket)).Get([]byte(loggedKey)),
		)

		return err
	})

	return logged, err
}

func (c *Client) MarkLogged(index int) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		logged, err := decodeLogged(b.Get([]byte(loggedKey)))
		if err != nil {
			return err
		}

		logged.Add(index)

		value, err := json.Marshal(logged)
		if err != nil {
			return err
		}

		return b.Put([]byte(loggedKey), value)
	})
}

func (c *Client) ClearLogged() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(loggedKey))
	})
}

func (c *Client) Clear() error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		if err := b.Delete([]byte(loggedKey)); err != nil {
			return err
		}

		return b.Delete([]byte(anchorKey))
	})
}

func (c *Client) Baseline(day time.Time) (*models.Baseline, error) {
	var baseline *models.Baseline

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(baselineBucket)).Get([]byte(timeutil.DayKey(day)))
		if len(b) == 0 {
			return nil
		}

		baseline = &models.Baseline{}

		return json.Unmarshal(b, baseline)
	})

	return baseline, err
}

func (c *Client) SaveBaseline(baseline *models.Baseline) error {
	key := []byte(timeutil.DayKey(baseline.LoggedAt))

	value, err := json.Marshal(baseline)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(baselineBucket)).Put(key, value)
	})
}

func decodeAnchor(b []byte) (*session.Anchor, error) {
	var a session.Anchor

	if err := json.Unmarshal(b, &a); err != nil {
		return nil, errCorruptAnchor.Wrap(err)
	}

	return &a, nil
}

func decodeLogged(b []byte) (session.Logged, error) {
	logged := make(session.Logged)

	if len(b) == 0 {
		return logged, nil
	}

	if err := json.Unmarshal(b, &logged); err != nil {
		return nil, err
	}

	return logged, nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string, timeout time.Duration) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: timeout},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errLocked
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection. It fails with
// ErrLocked if the database is not released within timeout.
func NewClient(dbPath string, timeout time.Duration) (*Client, error) {
	db, err := openDB(dbPath, timeout)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(baselineBucket))

		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
