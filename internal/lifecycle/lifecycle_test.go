package lifecycle

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/ultradian/internal/phase"
	"github.com/ayoisaiah/ultradian/internal/record"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/internal/testutil"
	"github.com/ayoisaiah/ultradian/store"
)

var today = time.Date(2024, time.March, 10, 8, 0, 0, 0, time.Local)

var plan = session.Plan{
	WakeTime: "07:00",
	Grog:     20,
	Peak:     90,
	Trough:   20,
	Cycles:   2,
}

type fixture struct {
	db    *store.Memory
	fake  *testutil.FakeRecords
	clock *testutil.Clock
}

func newFixture() *fixture {
	return &fixture{
		db:    store.NewMemory(),
		fake:  &testutil.FakeRecords{},
		clock: testutil.NewClock(today),
	}
}

func (f *fixture) controller(opts ...Option) *Controller {
	opts = append([]Option{WithNow(f.clock.Now)}, opts...)

	return New(f.db, f.fake, record.StaticToken("secret"), opts...)
}

func TestStartCreatesSession(t *testing.T) {
	f := newFixture()
	c := f.controller()

	a, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)

	wantStart := time.Date(2024, time.March, 10, 7, 0, 0, 0, time.Local)

	assert.Equal(t, wantStart, a.StartTime)
	assert.Equal(t, "1", a.RecordID)
	assert.Equal(t, Active, c.Status())

	created := f.fake.Created()
	require.Len(t, created, 1)
	assert.Equal(t, record.CreateSessionRequest{
		StartedAt: wantStart,
		WakeTime:  "07:00",
		Peak:      90,
		Trough:    20,
		Grog:      20,
		Cycles:    2,
	}, created[0])

	stored, err := f.db.Anchor()
	require.NoError(t, err)
	assert.Equal(t, a, stored)
}

func TestStartTwiceCreatesOnce(t *testing.T) {
	f := newFixture()

	c := f.controller()

	first, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)

	second, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// a fresh process on the same day resumes from the store
	other := f.controller()

	resumed, err := other.Start(context.Background(), plan, false)
	require.NoError(t, err)
	assert.Equal(t, first, resumed)
	assert.Equal(t, Active, other.Status())

	assert.Len(t, f.fake.Created(), 1)
}

func TestStartConcurrent(t *testing.T) {
	f := newFixture()
	f.fake.Gate = make(chan struct{})

	c := f.controller()

	var wg sync.WaitGroup

	results := make([]*session.Anchor, 5)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			a, err := c.Start(context.Background(), plan, false)
			assert.NoError(t, err)

			results[i] = a
		}()
	}

	close(f.fake.Gate)
	wg.Wait()

	assert.Len(t, f.fake.Created(), 1)

	for _, a := range results {
		assert.Equal(t, "1", a.RecordID)
	}
}

func TestStartStaleAnchor(t *testing.T) {
	f := newFixture()

	yesterday := today.AddDate(0, 0, -1)

	stale, err := session.NewAnchor(plan, yesterday)
	require.NoError(t, err)

	stale.RecordID = "99"

	require.NoError(t, f.db.SaveAnchor(stale))
	require.NoError(t, f.db.MarkLogged(1))
	require.NoError(t, f.db.MarkLogged(2))

	a, err := f.controller().Start(context.Background(), plan, false)
	require.NoError(t, err)

	assert.Len(t, f.fake.Created(), 1)
	assert.True(t, a.SameDay(today))
	assert.Equal(t, "1", a.RecordID)

	logged, err := f.db.Logged()
	require.NoError(t, err)
	assert.Empty(t, logged.Indices())
}

type corruptStore struct {
	*store.Memory
	corrupt bool
}

func (s *corruptStore) Anchor() (*session.Anchor, error) {
	if s.corrupt {
		return nil, store.ErrCorruptAnchor
	}

	return s.Memory.Anchor()
}

func (s *corruptStore) Clear() error {
	s.corrupt = false
	return s.Memory.Clear()
}

func TestStartCorruptAnchor(t *testing.T) {
	f := newFixture()
	db := &corruptStore{Memory: f.db, corrupt: true}

	c := New(db, f.fake, record.StaticToken("secret"), WithNow(f.clock.Now))

	a, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)
	assert.Equal(t, "1", a.RecordID)
	assert.False(t, db.corrupt)
}

func TestStartMissingCredential(t *testing.T) {
	f := newFixture()

	for _, creds := range []record.Credentials{nil, record.StaticToken("")} {
		c := New(f.db, f.fake, creds, WithNow(f.clock.Now))

		_, err := c.Start(context.Background(), plan, false)
		require.ErrorIs(t, err, ErrMissingCredential)
		assert.Equal(t, NoSession, c.Status())
	}

	assert.Empty(t, f.fake.Created())

	// an existing session is not resumed without a credential either
	a, err := f.controller().Start(context.Background(), plan, false)
	require.NoError(t, err)

	c := New(f.db, f.fake, record.StaticToken(""), WithNow(f.clock.Now))

	_, err = c.Start(context.Background(), plan, false)
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Nil(t, c.Anchor())

	stored, err := f.db.Anchor()
	require.NoError(t, err)
	assert.Equal(t, a, stored)
}

func TestStartCreateFailure(t *testing.T) {
	f := newFixture()
	f.fake.CreateErr = errors.New("service unavailable")

	c := f.controller()

	_, err := c.Start(context.Background(), plan, false)
	require.ErrorIs(t, err, ErrCreateSession)
	assert.Equal(t, NoSession, c.Status())

	stored, err := f.db.Anchor()
	require.NoError(t, err)
	assert.Nil(t, stored)

	// not retried until Start is called again
	assert.Len(t, f.fake.Created(), 1)

	f.fake.CreateErr = nil

	_, err = c.Start(context.Background(), plan, false)
	require.NoError(t, err)
	assert.Len(t, f.fake.Created(), 2)
}

func TestStartInvalidPlan(t *testing.T) {
	f := newFixture()

	bad := plan
	bad.Cycles = 0

	_, err := f.controller().Start(context.Background(), bad, false)
	require.ErrorIs(t, err, session.ErrInvalidAnchor)
	assert.Empty(t, f.fake.Created())
}

func TestEnd(t *testing.T) {
	f := newFixture()
	c := f.controller()

	_, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)

	require.NoError(t, f.db.MarkLogged(1))

	clock := c.Clock()

	f.clock.Advance(10 * time.Minute)
	require.NoError(t, c.End(context.Background()))
	c.Wait()

	assert.True(t, clock.Done())
	assert.Equal(t, Ended, c.Status())
	assert.Equal(t, []record.ID{"1"}, f.fake.Ended())

	stored, err := f.db.Anchor()
	require.NoError(t, err)
	assert.Equal(t, today.Add(10*time.Minute), stored.EndTime)

	logged, err := f.db.Logged()
	require.NoError(t, err)
	assert.Empty(t, logged.Indices())

	assert.ErrorIs(t, c.End(context.Background()), ErrSessionEnded)

	// Ended is terminal for the day
	_, err = f.controller().Start(context.Background(), plan, false)
	require.ErrorIs(t, err, ErrSessionEnded)
	assert.Len(t, f.fake.Created(), 1)
}

func TestEndFailureSwallowed(t *testing.T) {
	f := newFixture()
	f.fake.EndErr = errors.New("boom")

	c := f.controller()

	_, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)

	require.NoError(t, c.End(context.Background()))
	c.Wait()

	assert.Equal(t, Ended, c.Status())

	stored, err := f.db.Anchor()
	require.NoError(t, err)
	assert.True(t, stored.Ended())
}

func TestEndWithoutStart(t *testing.T) {
	f := newFixture()

	err := f.controller().End(context.Background())
	require.ErrorIs(t, err, ErrNoActiveSession)

	_, err = f.controller().Start(context.Background(), plan, false)
	require.NoError(t, err)

	c := f.controller()
	require.NoError(t, c.End(context.Background()))
	c.Wait()

	assert.Equal(t, []record.ID{"1"}, f.fake.Ended())
}

func TestResetAfterEnd(t *testing.T) {
	f := newFixture()
	c := f.controller()

	_, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)
	require.NoError(t, c.End(context.Background()))

	a, err := c.Start(context.Background(), plan, true)
	require.NoError(t, err)
	c.Wait()

	assert.Equal(t, "2", a.RecordID)
	assert.False(t, a.Ended())
	assert.Equal(t, Active, c.Status())
	assert.Len(t, f.fake.Ended(), 1)
}

func TestNextDayAfterEnd(t *testing.T) {
	f := newFixture()
	c := f.controller()

	_, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)
	require.NoError(t, c.End(context.Background()))

	f.clock.Advance(24 * time.Hour)

	a, err := f.controller().Start(context.Background(), plan, false)
	require.NoError(t, err)
	assert.True(t, a.SameDay(f.clock.Now()))
	assert.Len(t, f.fake.Created(), 2)
}

func TestStartSameControllerNextDay(t *testing.T) {
	f := newFixture()
	c := f.controller()

	first, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)

	second, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)

	assert.True(t, second.SameDay(f.clock.Now()))
	assert.NotEqual(t, first.RecordID, second.RecordID)
	assert.Len(t, f.fake.Created(), 2)
	assert.Equal(t, Active, c.Status())
}

type recordingNotifier struct {
	phases []phase.Phase
	mu     sync.Mutex
}

func (n *recordingNotifier) Notify(_ context.Context, s phase.State) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.phases = append(n.phases, s.Phase)

	return nil
}

func TestClockDrivesSession(t *testing.T) {
	f := newFixture()
	n := &recordingNotifier{}

	c := f.controller(WithNotifier(n))

	a, err := c.Start(context.Background(), plan, false)
	require.NoError(t, err)

	clock := c.Clock()

	end := a.EndOfSchedule().Add(time.Minute)
	for now := a.StartTime; now.Before(end); now = now.Add(500 * time.Millisecond) {
		clock.Tick(context.Background(), now)
	}

	c.Wait()

	events := f.fake.Events()
	require.Len(t, events, 4)

	slices.SortFunc(events, func(a, b record.CycleEvent) int {
		return a.Start.Compare(b.Start)
	})

	for i, e := range events {
		start, stop := a.Bounds(i + 1)

		assert.Equal(t, record.ID("1"), e.RecordID)
		assert.Equal(t, start, e.Start)
		assert.Equal(t, stop, e.End)
	}

	assert.ElementsMatch(t, []phase.Phase{
		phase.Peak,
		phase.Trough,
		phase.Peak,
		phase.Trough,
		phase.Complete,
	}, n.phases)

	assert.Equal(t, Ended, c.Status())
	assert.Equal(t, []record.ID{"1"}, f.fake.Ended())
}

func TestResumeMidScheduleLogsOnce(t *testing.T) {
	f := newFixture()

	a, err := f.controller().Start(context.Background(), plan, false)
	require.NoError(t, err)

	at := a.StartTime.Add(25 * time.Minute)

	for range 3 {
		c := f.controller()

		_, err = c.Start(context.Background(), plan, false)
		require.NoError(t, err)

		c.Clock().Tick(context.Background(), at)
		c.Wait()
	}

	assert.Len(t, f.fake.Events(), 1)
}

func TestIdleClockWithoutSession(t *testing.T) {
	c := newFixture().controller()

	assert.True(t, c.Clock().Idle())
}

func TestRecommendCycles(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	cases := []struct {
		score *float64
		want  int
	}{
		{nil, 3},
		{score(95), 5},
		{score(90), 5},
		{score(80), 4},
		{score(75), 4},
		{score(60), 3},
		{score(59.9), 2},
		{score(0), 2},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RecommendCycles(tc.score))
	}
}
