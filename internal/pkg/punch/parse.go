package punch

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	clockTokenRegex = regexp.MustCompile(`\d{1,2}:\d{2}`)
	clockRegex      = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(am|pm)?`)

	// "09:17:in(TAS-IN), 16:34:out(TAS-OUT)" or "09:00 in"
	strictLogRegex = regexp.MustCompile(`(?:^|[^\d:])(\d{1,2}:\d{2})(?::\d{2})?\s*[:\-\s]\s*(in|out)\b`)
	// "in 09:00", "09:00 - check in"
	looseLogRegex = regexp.MustCompile(`(\d{1,2}:\d{2})[^0-9]*?\b(in|out)\b|\b(in|out)\b[^0-9]*?(\d{1,2}:\d{2})`)
)

// HasClockToken reports whether s contains something shaped like HH:MM.
func HasClockToken(s string) bool {
	return clockTokenRegex.MatchString(s)
}

// IsBlank reports whether a time cell is empty or holds a zero placeholder such as
// "0" or "0.0". Punch-clock exports fill missing IN/OUT cells that way.
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 0
}

// ParseClock reads the first time of day in s. It understands "9:05", "09:05:30",
// "3:04 PM", datetimes with a time part, and spreadsheet day fractions such as "0.375".
func ParseClock(s string) (Clock, bool) {
	if IsBlank(s) {
		return 0, false
	}
	s = strings.ToLower(strings.TrimSpace(s))

	if m := clockRegex.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		switch m[4] {
		case "am":
			if hour == 12 {
				hour = 0
			}
		case "pm":
			if hour < 12 {
				hour += 12
			}
		}
		c, err := NewClock(hour, minute)
		if err != nil {
			return 0, false
		}
		return c, true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && f < 1 {
		minutes := int(math.Round(f * minutesPerDay))
		if minutes >= minutesPerDay {
			minutes = minutesPerDay - 1
		}
		return Clock(minutes), true
	}

	return 0, false
}

// ParseLog extracts punches from free text such as a device punch-record cell.
// The strict "time:direction" form wins when present; otherwise time and direction
// tokens are paired in either order.
func ParseLog(text string) []Event {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	var events []Event
	for _, m := range strictLogRegex.FindAllStringSubmatch(text, -1) {
		if e, ok := newEvent(m[1], m[2]); ok {
			events = append(events, e)
		}
	}

	if len(events) == 0 {
		for _, m := range looseLogRegex.FindAllStringSubmatch(text, -1) {
			t, d := m[1], m[2]
			if t == "" {
				t, d = m[4], m[3]
			}
			if e, ok := newEvent(t, d); ok {
				events = append(events, e)
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
	return events
}

func newEvent(clock, direction string) (Event, bool) {
	c, ok := ParseClock(clock)
	if !ok {
		return Event{}, false
	}
	d, ok := ParseDirection(direction)
	if !ok {
		return Event{}, false
	}
	return Event{Time: c, Direction: d}, true
}
