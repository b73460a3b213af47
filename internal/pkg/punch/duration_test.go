package punch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionMinutes(t *testing.T) {
	cases := []struct {
		session Session
		want    int
	}{
		{sess(9, 15, 17, 48), 513},
		{sess(9, 50, 17, 10), 440},
		{sess(9, 0, 17, 0), 480},
		{sess(22, 0, 6, 30), 510},
		{sess(23, 30, 0, 15), 45},
		{sess(12, 0, 12, 0), 0},
	}
	for _, c := range cases {
		got := c.session.Minutes()
		if got != c.want {
			t.Errorf("%s-%s = %d, want %d", c.session.In, c.session.Out, got, c.want)
		}
	}
}

func TestTotalMinutesAndBounds(t *testing.T) {
	sessions := []Session{sess(9, 0, 13, 0), sess(14, 0, 18, 15)}

	assert.Equal(t, 495, TotalMinutes(sessions))

	first, last, ok := Bounds(sessions)
	assert.True(t, ok)
	assert.Equal(t, MustClock(9, 0), first)
	assert.Equal(t, MustClock(18, 15), last)

	_, _, ok = Bounds(nil)
	assert.False(t, ok)
}

func TestEvents_RoundTripsThroughClean(t *testing.T) {
	sessions := []Session{sess(9, 0, 13, 0), sess(14, 0, 18, 0)}
	assert.Equal(t, sessions, Clean(Events(sessions)))
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "07:05", MustClock(7, 5).String())
	assert.Equal(t, "23:59", MustClock(23, 59).String())
}

func TestNewClock_Invalid(t *testing.T) {
	_, err := NewClock(24, 0)
	assert.Error(t, err)
	_, err = NewClock(10, 60)
	assert.Error(t, err)
}
