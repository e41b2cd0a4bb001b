package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/peterbourgon/diskv/v3"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/ultradian/internal/osutil"

	"github.com/ayoisaiah/ultradian/internal/models"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

const (
	baselinePrefix = "baseline-"
	lockFileName   = ".lock"
)

// Disk is a diskv backed store that keeps one file per key. Like Client, it
// holds an exclusive lock on its directory until it is closed.
type Disk struct {
	d    *diskv.Diskv
	lock *bolt.DB
}

// NewDisk returns a store rooted at basePath. It fails with ErrLocked if
// another process does not release the directory within timeout.
func NewDisk(basePath string, timeout time.Duration) (*Disk, error) {
	if err := os.MkdirAll(basePath, osutil.DirPermission); err != nil {
		return nil, err
	}

	// the bolt file lock is what guards the directory; the file holds no data
	lock, err := openDB(filepath.Join(basePath, lockFileName), timeout)
	if err != nil {
		return nil, err
	}

	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			Transform: func(string) []string {
				return []string{}
			},
			CacheSizeMax: 64 * 1024,
		}),
		lock: lock,
	}, nil
}

func (s *Disk) read(key string) ([]byte, error) {
	b, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	return b, err
}

func (s *Disk) erase(key string) error {
	err := s.d.Erase(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func (s *Disk) Anchor() (*session.Anchor, error) {
	b, err := s.read(anchorKey)
	if err != nil || len(b) == 0 {
		return nil, err
	}

	return decodeAnchor(b)
}

func (s *Disk) SaveAnchor(a *session.Anchor) error {
	value, err := json.Marshal(a)
	if err != nil {
		return err
	}

	return s.d.Write(anchorKey, value)
}

func (s *Disk) Logged() (session.Logged, error) {
	b, err := s.read(loggedKey)
	if err != nil {
		return nil, err
	}

	return decodeLogged(b)
}

func (s *Disk) MarkLogged(index int) error {
	logged, err := s.Logged()
	if err != nil {
		return err
	}

	logged.Add(index)

	value, err := json.Marshal(logged)
	if err != nil {
		return err
	}

	return s.d.Write(loggedKey, value)
}

func (s *Disk) ClearLogged() error {
	return s.erase(loggedKey)
}

func (s *Disk) Clear() error {
	if err := s.erase(loggedKey); err != nil {
		return err
	}

	return s.erase(anchorKey)
}

func (s *Disk) Baseline(day time.Time) (*models.Baseline, error) {
	b, err := s.read(baselinePrefix + timeutil.DayKey(day))
	if err != nil || len(b) == 0 {
		return nil, err
	}

	var baseline models.Baseline

	if err := json.Unmarshal(b, &baseline); err != nil {
		return nil, err
	}

	return &baseline, nil
}

func (s *Disk) SaveBaseline(baseline *models.Baseline) error {
	value, err := json.Marshal(baseline)
	if err != nil {
		return err
	}

	return s.d.Write(baselinePrefix+timeutil.DayKey(baseline.LoggedAt), value)
}

// Close releases the directory lock.
func (s *Disk) Close() error {
	return s.lock.Close()
}
