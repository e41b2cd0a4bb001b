package store

import (
	"sync"
	"time"

	"github.com/ayoisaiah/ultradian/internal/models"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

// Memory is an in-process store. It is used in tests and when nothing needs
// to survive the process.
type Memory struct {
	anchor    *session.Anchor
	logged    session.Logged
	baselines map[string]models.Baseline
	mu        sync.Mutex
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		logged:    make(session.Logged),
		baselines: make(map[string]models.Baseline),
	}
}

func (m *Memory) Anchor() (*session.Anchor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.anchor == nil {
		return nil, nil
	}

	a := *m.anchor

	return &a, nil
}

func (m *Memory) SaveAnchor(a *session.Anchor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *a
	m.anchor = &cp

	return nil
}

func (m *Memory) Logged() (session.Logged, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make(session.Logged, len(m.logged))

	for i := range m.logged {
		cp.Add(i)
	}

	return cp, nil
}

func (m *Memory) MarkLogged(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logged.Add(index)

	return nil
}

func (m *Memory) ClearLogged() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logged = make(session.Logged)

	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.anchor = nil
	m.logged = make(session.Logged)

	return nil
}

func (m *Memory) Baseline(day time.Time) (*models.Baseline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.baselines[timeutil.DayKey(day)]
	if !ok {
		return nil, nil
	}

	return &b, nil
}

func (m *Memory) SaveBaseline(b *models.Baseline) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.baselines[timeutil.DayKey(b.LoggedAt)] = *b

	return nil
}

func (m *Memory) Close() error {
	return nil
}
