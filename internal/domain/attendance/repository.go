package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
)

type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (AttendanceDay, error)

	// GetByEmployeeAndDate returns nil, nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceDay, error)

	// Upsert creates the day or updates the existing (employee, date) row. Locked rows
	// are left untouched and reported with ErrAttendanceLocked.
	Upsert(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// SaveComputed writes status, summary times, minutes and compliance of an unlocked day.
	SaveComputed(ctx context.Context, day AttendanceDay) error

	// ReplacePunches swaps the raw punch log of a day wholesale.
	ReplacePunches(ctx context.Context, dayID string, events []punch.Event) error
	GetPunches(ctx context.Context, dayID string) ([]punch.Event, error)

	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceDay, int64, error)

	// ListForPayroll returns the days of one employee between from and to inclusive,
	// taking row locks when called inside a transaction.
	ListForPayroll(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceDay, error)
	ListUnlockedAuto(ctx context.Context, from, to time.Time) ([]AttendanceDay, error)

	SetApprovedOvertime(ctx context.Context, id string, minutes int) error
	Lock(ctx context.Context, ids []string) error
	UnlockRange(ctx context.Context, from, to time.Time) (int64, error)

	// DeleteUnlocked purges unlocked days in the range and their punches.
	DeleteUnlocked(ctx context.Context, from, to time.Time) (int64, error)
}
