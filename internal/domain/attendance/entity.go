package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
)

const (
	FullDayMinutes = 480
	HalfDayMinutes = 240
)

type Status string

const (
	StatusPresent   Status = "Present"
	StatusAbsent    Status = "Absent"
	StatusWeeklyOff Status = "WeeklyOff"
	StatusHoliday   Status = "Holiday"
	StatusHalfDay   Status = "HalfDay"
	StatusDisputed  Status = "Disputed"
	StatusVoid      Status = "Void"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusWeeklyOff, StatusHoliday, StatusHalfDay, StatusDisputed, StatusVoid:
		return true
	}
	return false
}

// Threshold is the minutes a day of this status must reach to be compliant.
func (s Status) Threshold() int {
	if s == StatusHalfDay {
		return HalfDayMinutes
	}
	return FullDayMinutes
}

// IsWorking reports whether the status expects time on the clock.
func (s Status) IsWorking() bool {
	return s == StatusPresent || s == StatusHalfDay
}

func (s Status) IsRestDay() bool {
	return s == StatusWeeklyOff || s == StatusHoliday
}

// NormalizeStatus maps the free-text status found in imports to a Status.
// Blank text means Absent when the day has no punches and Present otherwise.
// NFKC turns "½" into "1⁄2" with a fraction slash, so both spellings are accepted.
func NormalizeStatus(raw string, hasPunches bool) Status {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(upper, "ABSENT") || upper == "A":
		return StatusAbsent
	case strings.Contains(upper, "WEEKLY"):
		return StatusWeeklyOff
	case strings.Contains(upper, "HOLIDAY"):
		return StatusHoliday
	case strings.Contains(upper, "½") || strings.Contains(upper, "1/2") || strings.Contains(upper, "1\u20442") ||
		strings.Contains(upper, "HP") || strings.Contains(upper, "HALF"):
		return StatusHalfDay
	case upper == "" && !hasPunches:
		return StatusAbsent
	}
	return StatusPresent
}

type EntryType string

const (
	EntryTypeAuto   EntryType = "AUTO"
	EntryTypeManual EntryType = "MANUAL"
)

// AttendanceDay is the reconciled record of one employee on one calendar date.
type AttendanceDay struct {
	ID                      string
	EmployeeID              string
	Date                    time.Time
	Status                  Status
	CheckIn                 *punch.Clock
	CheckOut                *punch.Clock
	TotalWorkMinutes        int
	IsCompliant             bool
	ApprovedOvertimeMinutes int
	IsLocked                bool
	EntryType               EntryType
	Remarks                 *string
	CreatedAt               time.Time
	UpdatedAt               time.Time

	// DTO
	EmployeeName *string
}

// ShortfallMinutes is the gap to the status threshold for working days, zero otherwise.
func (d AttendanceDay) ShortfallMinutes() int {
	if !d.Status.IsWorking() {
		return 0
	}
	if short := d.Status.Threshold() - d.TotalWorkMinutes; short > 0 {
		return short
	}
	return 0
}
