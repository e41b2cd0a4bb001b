package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	ref := time.Date(2024, time.March, 10, 9, 0, 0, 0, loc)

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"same instant", ref, true},
		{"start of day", time.Date(2024, time.March, 10, 0, 0, 0, 0, loc), true},
		{"end of day", time.Date(2024, time.March, 10, 23, 59, 59, 0, loc), true},
		{"previous day", time.Date(2024, time.March, 9, 23, 59, 59, 0, loc), false},
		{"next day", time.Date(2024, time.March, 11, 0, 0, 0, 0, loc), false},
		// 22:30 UTC on the 9th is 00:30 on the 10th in the reference zone
		{"other zone", time.Date(2024, time.March, 9, 22, 30, 0, 0, time.UTC), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SameDay(tc.t, ref))
		})
	}
}

func TestAt(t *testing.T) {
	day := time.Date(2024, time.March, 10, 15, 4, 5, 6, time.UTC)

	got, err := At(day, "07:30")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.March, 10, 7, 30, 0, 0, time.UTC), got)

	_, err = At(day, "7h30")
	assert.ErrorIs(t, err, ErrInvalidWakeTime)
}

func TestParseWakeTimeClock(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	got, err := ParseWakeTime(" 06:45 ", now)
	require.NoError(t, err)
	assert.Equal(t, "06:45", got)

	_, err = ParseWakeTime("", now)
	assert.ErrorIs(t, err, ErrInvalidWakeTime)
}

func TestParseWakeTimeNatural(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)

	got, err := ParseWakeTime("2 hours ago", now)
	require.NoError(t, err)
	assert.Equal(t, "10:00", got)
}

func TestSecsToMinsAndSecs(t *testing.T) {
	m, s := SecsToMinsAndSecs(5100)
	assert.Equal(t, 85, m)
	assert.Equal(t, 0, s)

	m, s = SecsToMinsAndSecs(61)
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, s)

	m, s = SecsToMinsAndSecs(-3)
	assert.Zero(t, m)
	assert.Zero(t, s)
}

func TestMinsToHoursAndMins(t *testing.T) {
	h, m := MinsToHoursAndMins(90)
	assert.Equal(t, 1, h)
	assert.Equal(t, 30, m)

	h, m = MinsToHoursAndMins(45)
	assert.Zero(t, h)
	assert.Equal(t, 45, m)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "20240305", DayKey(time.Date(2024, time.March, 5, 1, 0, 0, 0, time.UTC)))
}
