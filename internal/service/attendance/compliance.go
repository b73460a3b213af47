package attendance

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
)

// Evaluation is the computed side of an attendance day.
type Evaluation struct {
	Status       attendance.Status
	TotalMinutes int
	IsCompliant  bool
	CheckIn      *punch.Clock
	CheckOut     *punch.Clock
	// StatusCorrected is set when punches overrode an Absent or Void label.
	StatusCorrected bool
}

// PunchesOverrideStatus turns Absent and Void into Present once the punches show
// worked time. Any other status is kept.
func PunchesOverrideStatus(status attendance.Status, minutes int) attendance.Status {
	if minutes > 0 && (status == attendance.StatusAbsent || status == attendance.StatusVoid) {
		return attendance.StatusPresent
	}
	return status
}

// Evaluate derives minutes, compliance and the summary times of a day from its
// cleaned sessions. With no sessions the status label is authoritative.
func Evaluate(status attendance.Status, sessions []punch.Session, isHoliday bool) Evaluation {
	ev := Evaluation{Status: status}

	if len(sessions) == 0 {
		if status == attendance.StatusHalfDay {
			ev.TotalMinutes = attendance.HalfDayMinutes
		}
	} else {
		ev.TotalMinutes = punch.TotalMinutes(sessions)
		ev.Status = PunchesOverrideStatus(status, ev.TotalMinutes)
		ev.StatusCorrected = ev.Status != status

		first, last, _ := punch.Bounds(sessions)
		ev.CheckIn, ev.CheckOut = &first, &last
	}

	ev.IsCompliant = isCompliant(ev.Status, ev.TotalMinutes, isHoliday)
	return ev
}

func isCompliant(status attendance.Status, minutes int, isHoliday bool) bool {
	switch {
	case status.IsWorking():
		return minutes >= status.Threshold()
	case status.IsRestDay() || isHoliday:
		return true
	default:
		return minutes >= attendance.FullDayMinutes
	}
}
