package phase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	segments    map[int]int
	transitions [][2]Phase
	completed   int
	mu          sync.Mutex
}

func newRecordingListener() *recordingListener {
	return &recordingListener{segments: make(map[int]int)}
}

func (l *recordingListener) OnSegment(_ context.Context, e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.segments[e.Index]++
}

func (l *recordingListener) OnTransition(_ context.Context, from, to State) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transitions = append(l.transitions, [2]Phase{from.Phase, to.Phase})
}

func (l *recordingListener) OnComplete(context.Context, State) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.completed++
}

func TestTickFiresOncePerCrossing(t *testing.T) {
	l := newRecordingListener()
	c := NewClock(testAnchor(), l)

	// 4 ticks per second across the whole schedule and beyond
	end := start.Add(250 * time.Minute)
	for now := start; now.Before(end); now = now.Add(250 * time.Millisecond) {
		c.Tick(context.Background(), now)
	}

	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1, 3: 1, 4: 1}, l.segments)
	assert.Equal(t, [][2]Phase{
		{Grog, Peak},
		{Peak, Trough},
		{Trough, Peak},
		{Peak, Trough},
		{Trough, Complete},
	}, l.transitions)
	assert.Equal(t, 1, l.completed)
	assert.True(t, c.Done())
}

func TestTickResumeMidSchedule(t *testing.T) {
	l := newRecordingListener()
	c := NewClock(testAnchor(), l)

	s := c.Tick(context.Background(), start.Add(25*time.Minute))

	assert.Equal(t, Peak, s.Phase)
	assert.Equal(t, 85*60, s.Remaining)
	assert.Equal(t, map[int]int{1: 1}, l.segments)
	assert.Empty(t, l.transitions, "the first tick is not a crossing")
}

func TestTickZeroLengthGrogBeforeWake(t *testing.T) {
	a := testAnchor()
	a.Grog = 0

	l := newRecordingListener()
	c := NewClock(a, l)

	for now := start.Add(-10 * time.Minute); now.Before(start); now = now.Add(time.Second) {
		c.Tick(context.Background(), now)
	}

	assert.Equal(t, map[int]int{0: 1}, l.segments, "the peak has not started")
	assert.Empty(t, l.transitions)

	c.Tick(context.Background(), start)

	assert.Equal(t, map[int]int{0: 1, 1: 1}, l.segments)
	assert.Equal(t, [][2]Phase{{Grog, Peak}}, l.transitions)
}

func TestTickAlreadyComplete(t *testing.T) {
	l := newRecordingListener()
	c := NewClock(testAnchor(), l)

	s := c.Tick(context.Background(), start.Add(240*time.Minute))

	assert.Equal(t, Complete, s.Phase)
	assert.Empty(t, l.segments)
	assert.Equal(t, 1, l.completed)

	c.Tick(context.Background(), start.Add(241*time.Minute))
	assert.Equal(t, 1, l.completed)
}

func TestTickAfterStop(t *testing.T) {
	l := newRecordingListener()
	c := NewClock(testAnchor(), l)

	c.Tick(context.Background(), start)
	c.Stop()
	c.Stop()

	s := c.Tick(context.Background(), start.Add(30*time.Minute))

	assert.Equal(t, Grog, s.Phase, "a stopped clock keeps its last state")
	assert.Equal(t, map[int]int{0: 1}, l.segments)
	assert.Empty(t, l.transitions)
}

func TestIdleClock(t *testing.T) {
	l := newRecordingListener()
	c := NewClock(nil, l)

	assert.True(t, c.Idle())
	require.NoError(t, c.Run(context.Background(), nil))

	s := c.Tick(context.Background(), start)
	assert.Equal(t, Idle, s.Phase)
	assert.Empty(t, l.segments)
	assert.Zero(t, l.completed)
}

type fakeTime struct {
	now  time.Time
	step time.Duration
	mu   sync.Mutex
}

func (f *fakeTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.now
	f.now = f.now.Add(f.step)

	return n
}

func TestRunToCompletion(t *testing.T) {
	l := newRecordingListener()
	ft := &fakeTime{now: start, step: 20 * time.Second}

	c := NewClock(
		testAnchor(),
		l,
		WithNow(ft.Now),
		WithInterval(time.Millisecond),
	)

	var ticks int

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := c.Run(ctx, func(State) {
		ticks++
	})
	require.NoError(t, err)

	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1, 3: 1, 4: 1}, l.segments)
	assert.Equal(t, 1, l.completed)
	assert.Equal(t, 240*3+1, ticks)
	assert.Equal(t, Complete, c.State().Phase)
}

func TestRunStop(t *testing.T) {
	fixed := func() time.Time { return start }
	c := NewClock(testAnchor(), nil, WithNow(fixed), WithInterval(time.Millisecond))

	done := make(chan error)

	go func() {
		done <- c.Run(context.Background(), nil)
	}()

	c.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestRunCancel(t *testing.T) {
	fixed := func() time.Time { return start }
	c := NewClock(testAnchor(), nil, WithNow(fixed), WithInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, c.Done())
}
