package punch

import (
	"sort"
)

// DefaultThreshold is the gap in minutes below which two taps in the same direction
// are treated as one.
const DefaultThreshold = 20

// Clean turns the raw punches of one person-day into ordered, non-overlapping sessions
// using DefaultThreshold.
func Clean(events []Event) []Session {
	return CleanWithThreshold(events, DefaultThreshold)
}

// CleanWithThreshold scans the punches in time order:
//   - IN while an IN is open: closer than threshold is jitter and dropped, otherwise
//     the open IN is abandoned (missed OUT) and replaced.
//   - OUT while an IN is open closes the session.
//   - OUT with nothing open extends the previous session when its OUT is closer than
//     threshold, otherwise it is dropped.
//
// The output never contains an unmatched IN or OUT.
func CleanWithThreshold(events []Event, threshold int) []Session {
	if len(events) == 0 {
		return nil
	}

	sorted := SortEvents(events)

	var (
		cleaned   []Session
		pendingIn Clock
		hasIn     bool
	)

	for _, e := range sorted {
		switch e.Direction {
		case In:
			if hasIn && int(e.Time-pendingIn) < threshold {
				continue
			}
			pendingIn = e.Time
			hasIn = true
		case Out:
			if hasIn {
				cleaned = append(cleaned, Session{In: pendingIn, Out: e.Time})
				hasIn = false
				continue
			}
			if n := len(cleaned); n > 0 && int(e.Time-cleaned[n-1].Out) < threshold {
				cleaned[n-1].Out = e.Time
			}
		}
	}

	return cleaned
}

// SortEvents returns a copy ordered by time, IN before OUT on the same minute, with
// exact duplicates removed.
func SortEvents(events []Event) []Event {
	seen := make(map[Event]struct{}, len(events))
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Direction != In && e.Direction != Out {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].Direction == In && out[j].Direction == Out
	})
	return out
}
