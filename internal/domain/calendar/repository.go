package calendar

import (
	"context"
	"time"
)

type CalendarRepository interface {
	// GetSettings returns DefaultSettings when no row has been saved yet.
	GetSettings(ctx context.Context) (Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) (Settings, error)

	// ListHolidays returns holidays dated inside [from, to] plus every recurring holiday.
	ListHolidays(ctx context.Context, from, to time.Time) ([]PublicHoliday, error)
	CreateHoliday(ctx context.Context, holiday PublicHoliday) (PublicHoliday, error)
	DeleteHoliday(ctx context.Context, id string) error
}
