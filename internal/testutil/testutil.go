// Package testutil provides fakes shared by the package tests
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ayoisaiah/ultradian/internal/models"
	"github.com/ayoisaiah/ultradian/internal/record"
)

// FakeRecords is an in-memory stand-in for the record service client. Set
// the error fields to make the matching call fail.
type FakeRecords struct {
	CreateErr   error
	LogErr      error
	EndErr      error
	BaselineErr error
	VibeErr     error
	// Score is returned by GetVibeScore.
	Score *float64
	// Gate, if set, blocks CreateSession until it is closed.
	Gate chan struct{}

	created   []record.CreateSessionRequest
	events    []record.CycleEvent
	ended     []record.ID
	baselines []models.Baseline
	nextID    int
	mu        sync.Mutex
}

func (f *FakeRecords) CreateSession(
	ctx context.Context,
	req record.CreateSessionRequest,
) (record.ID, error) {
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, req)

	if f.CreateErr != nil {
		return "", f.CreateErr
	}

	f.nextID++

	return record.ID(fmt.Sprint(f.nextID)), nil
}

func (f *FakeRecords) LogCycleEvent(_ context.Context, e record.CycleEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, e)

	return f.LogErr
}

func (f *FakeRecords) EndSession(_ context.Context, id record.ID, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ended = append(f.ended, id)

	return f.EndErr
}

func (f *FakeRecords) LogBaseline(_ context.Context, b *models.Baseline) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.baselines = append(f.baselines, *b)

	return f.BaselineErr
}

func (f *FakeRecords) GetVibeScore(context.Context) (*record.VibeScore, error) {
	if f.VibeErr != nil {
		return nil, f.VibeErr
	}

	return &record.VibeScore{Score: f.Score}, nil
}

// Created returns every CreateSession request received.
func (f *FakeRecords) Created() []record.CreateSessionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]record.CreateSessionRequest(nil), f.created...)
}

// Events returns every cycle event received.
func (f *FakeRecords) Events() []record.CycleEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]record.CycleEvent(nil), f.events...)
}

// Ended returns the ids passed to EndSession.
func (f *FakeRecords) Ended() []record.ID {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]record.ID(nil), f.ended...)
}

// Baselines returns every baseline received.
func (f *FakeRecords) Baselines() []models.Baseline {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]models.Baseline(nil), f.baselines...)
}

// Clock is a settable time source.
type Clock struct {
	now time.Time
	mu  sync.Mutex
}

// NewClock returns a clock reading t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the current reading.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}
