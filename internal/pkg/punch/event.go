package punch

import (
	"fmt"
	"strings"
)

type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// ParseDirection accepts any casing of "in" and "out".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in":
		return In, true
	case "out":
		return Out, true
	}
	return "", false
}

// Clock is a wall-clock time of day with minute precision, stored as minutes since midnight.
type Clock int

const minutesPerDay = 24 * 60

func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock %02d:%02d", hour, minute)
	}
	return Clock(hour*60 + minute), nil
}

// MustClock is NewClock for literals known to be valid.
func MustClock(hour, minute int) Clock {
	c, err := NewClock(hour, minute)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Event is one raw tap on a punch device.
type Event struct {
	Time      Clock
	Direction Direction
}

func (e Event) String() string {
	return e.Time.String() + " " + strings.ToUpper(string(e.Direction))
}

// Session is a committed IN/OUT pair.
type Session struct {
	In  Clock
	Out Clock
}
