package punch

// Minutes is the worked time of one session. An OUT earlier than its IN is taken to be
// on the next day; a session never spans more than one midnight.
func (s Session) Minutes() int {
	hours := s.Out.Hour() - s.In.Hour()
	minutes := s.Out.Minute() - s.In.Minute()
	if minutes < 0 {
		minutes += 60
		hours--
	}
	if hours < 0 {
		hours += 24
	}
	return hours*60 + minutes
}

// TotalMinutes sums the worked minutes of all sessions.
func TotalMinutes(sessions []Session) int {
	total := 0
	for _, s := range sessions {
		total += s.Minutes()
	}
	return total
}

// Bounds returns the first IN and the last OUT of the day.
func Bounds(sessions []Session) (first Clock, last Clock, ok bool) {
	if len(sessions) == 0 {
		return 0, 0, false
	}
	return sessions[0].In, sessions[len(sessions)-1].Out, true
}

// Events flattens sessions back to alternating IN/OUT punches.
func Events(sessions []Session) []Event {
	out := make([]Event, 0, len(sessions)*2)
	for _, s := range sessions {
		out = append(out, Event{Time: s.In, Direction: In}, Event{Time: s.Out, Direction: Out})
	}
	return out
}
