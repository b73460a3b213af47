package attendance

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
	"github.com/stretchr/testify/assert"
)

func session(inH, inM, outH, outM int) punch.Session {
	return punch.Session{In: punch.MustClock(inH, inM), Out: punch.MustClock(outH, outM)}
}

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		status    attendance.Status
		sessions  []punch.Session
		isHoliday bool
		minutes   int
		compliant bool
	}{
		{"present exactly 480", attendance.StatusPresent, []punch.Session{session(9, 0, 17, 0)}, false, 480, true},
		{"present 479", attendance.StatusPresent, []punch.Session{session(9, 0, 16, 59)}, false, 479, false},
		{"half day 240", attendance.StatusHalfDay, []punch.Session{session(9, 0, 13, 0)}, false, 240, true},
		{"half day 239", attendance.StatusHalfDay, []punch.Session{session(9, 0, 12, 59)}, false, 239, false},
		{"half day without punches gets credit", attendance.StatusHalfDay, nil, false, 240, true},
		{"weekly off without punches", attendance.StatusWeeklyOff, nil, false, 0, true},
		{"holiday label", attendance.StatusHoliday, nil, false, 0, true},
		{"absent on calendar holiday", attendance.StatusAbsent, nil, true, 0, true},
		{"absent on working day", attendance.StatusAbsent, nil, false, 0, false},
		{"disputed needs full day", attendance.StatusDisputed, []punch.Session{session(9, 0, 17, 0)}, false, 480, true},
		{"present on holiday still needs hours", attendance.StatusPresent, nil, true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(tt.status, tt.sessions, tt.isHoliday)
			assert.Equal(t, tt.minutes, ev.TotalMinutes)
			assert.Equal(t, tt.compliant, ev.IsCompliant)
		})
	}
}

func TestEvaluate_PunchesOverrideAbsent(t *testing.T) {
	for _, status := range []attendance.Status{attendance.StatusAbsent, attendance.StatusVoid} {
		ev := Evaluate(status, []punch.Session{session(9, 15, 17, 48)}, false)

		assert.Equal(t, attendance.StatusPresent, ev.Status)
		assert.True(t, ev.StatusCorrected)
		assert.Equal(t, 513, ev.TotalMinutes)
		assert.True(t, ev.IsCompliant)
	}
}

func TestEvaluate_ZeroMinutePunchesKeepStatus(t *testing.T) {
	ev := Evaluate(attendance.StatusAbsent, []punch.Session{session(9, 0, 9, 0)}, false)

	assert.Equal(t, attendance.StatusAbsent, ev.Status)
	assert.False(t, ev.StatusCorrected)
	assert.Equal(t, 0, ev.TotalMinutes)
}

func TestEvaluate_SummaryTimes(t *testing.T) {
	ev := Evaluate(attendance.StatusPresent, []punch.Session{session(9, 0, 12, 0), session(13, 0, 18, 10)}, false)

	if assert.NotNil(t, ev.CheckIn) && assert.NotNil(t, ev.CheckOut) {
		assert.Equal(t, "09:00", ev.CheckIn.String())
		assert.Equal(t, "18:10", ev.CheckOut.String())
	}
	assert.Equal(t, 490, ev.TotalMinutes)

	empty := Evaluate(attendance.StatusAbsent, nil, false)
	assert.Nil(t, empty.CheckIn)
	assert.Nil(t, empty.CheckOut)
}

func TestEvaluate_Overnight(t *testing.T) {
	ev := Evaluate(attendance.StatusPresent, []punch.Session{session(22, 0, 6, 30)}, false)
	assert.Equal(t, 510, ev.TotalMinutes)
	assert.True(t, ev.IsCompliant)
}
