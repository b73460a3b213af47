package calendar

import (
	"context"
	"time"
)

// HolidayCalendar is the narrow view payroll and attendance depend on.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	// ForRange loads one snapshot covering [from, to].
	ForRange(ctx context.Context, from, to time.Time) (*Calendar, error)
}

type CalendarService interface {
	HolidayCalendar

	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
	MonthView(ctx context.Context, month string) (MonthViewResponse, error)
}
