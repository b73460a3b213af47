package calendar

import (
	"time"
)

// Settings is the company work-week policy.
type Settings struct {
	WorkMonday            bool
	WorkTuesday           bool
	WorkWednesday         bool
	WorkThursday          bool
	WorkFriday            bool
	WorkSaturday          bool
	WorkSunday            bool
	SecondSaturdayHoliday bool
	UpdatedAt             time.Time
}

// DefaultSettings is a six-day week with Sundays and second Saturdays off.
func DefaultSettings() Settings {
	return Settings{
		WorkMonday:            true,
		WorkTuesday:           true,
		WorkWednesday:         true,
		WorkThursday:          true,
		WorkFriday:            true,
		WorkSaturday:          true,
		WorkSunday:            false,
		SecondSaturdayHoliday: true,
	}
}

type PublicHoliday struct {
	ID          string
	Name        string
	Date        time.Time
	IsRecurring bool
	CreatedAt   time.Time
}

// Calendar answers holiday questions from an in-memory snapshot of the settings and
// public holidays.
type Calendar struct {
	settings  Settings
	exact     map[string]string
	recurring map[string]string
}

func NewCalendar(settings Settings, holidays []PublicHoliday) *Calendar {
	c := &Calendar{
		settings:  settings,
		exact:     make(map[string]string, len(holidays)),
		recurring: make(map[string]string),
	}
	for _, h := range holidays {
		c.exact[h.Date.Format("2006-01-02")] = h.Name
		if h.IsRecurring {
			c.recurring[h.Date.Format("01-02")] = h.Name
		}
	}
	return c
}

// IsHoliday applies, in order: public holidays (exact date, then recurring month/day),
// Sunday, Saturday with the second-Saturday rule, then the weekday flags.
func (c *Calendar) IsHoliday(date time.Time) bool {
	_, holiday := c.HolidayName(date)
	return holiday
}

// HolidayName also returns the public holiday name, or the weekly-off reason.
func (c *Calendar) HolidayName(date time.Time) (string, bool) {
	if name, ok := c.exact[date.Format("2006-01-02")]; ok {
		return name, true
	}
	if name, ok := c.recurring[date.Format("01-02")]; ok {
		return name, true
	}

	s := c.settings
	switch date.Weekday() {
	case time.Sunday:
		return weeklyOff(s.WorkSunday)
	case time.Saturday:
		if s.SecondSaturdayHoliday && date.Day() >= 8 && date.Day() <= 14 {
			return "Second Saturday", true
		}
		return weeklyOff(s.WorkSaturday)
	case time.Monday:
		return weeklyOff(s.WorkMonday)
	case time.Tuesday:
		return weeklyOff(s.WorkTuesday)
	case time.Wednesday:
		return weeklyOff(s.WorkWednesday)
	case time.Thursday:
		return weeklyOff(s.WorkThursday)
	default:
		return weeklyOff(s.WorkFriday)
	}
}

func weeklyOff(works bool) (string, bool) {
	if works {
		return "", false
	}
	return "Weekly Off", true
}

// WorkingDays counts the non-holiday days of the month containing date.
func (c *Calendar) WorkingDays(month time.Time) int {
	first := FirstOfMonth(month)
	count := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if !c.IsHoliday(d) {
			count++
		}
	}
	return count
}

func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func LastOfMonth(t time.Time) time.Time {
	return FirstOfMonth(t).AddDate(0, 1, -1)
}
