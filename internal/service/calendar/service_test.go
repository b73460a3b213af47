package calendar

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendarRepo struct {
	settings *calendar.Settings
	holidays []calendar.PublicHoliday
}

func (r *fakeCalendarRepo) GetSettings(ctx context.Context) (calendar.Settings, error) {
	if r.settings == nil {
		return calendar.DefaultSettings(), nil
	}
	return *r.settings, nil
}

func (r *fakeCalendarRepo) UpsertSettings(ctx context.Context, settings calendar.Settings) (calendar.Settings, error) {
	r.settings = &settings
	return settings, nil
}

func (r *fakeCalendarRepo) ListHolidays(ctx context.Context, from, to time.Time) ([]calendar.PublicHoliday, error) {
	var out []calendar.PublicHoliday
	for _, h := range r.holidays {
		if h.IsRecurring || !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeCalendarRepo) CreateHoliday(ctx context.Context, h calendar.PublicHoliday) (calendar.PublicHoliday, error) {
	for _, existing := range r.holidays {
		if existing.Date.Equal(h.Date) {
			return calendar.PublicHoliday{}, calendar.ErrHolidayExists
		}
	}
	h.ID = fmt.Sprintf("holiday-%d", len(r.holidays)+1)
	r.holidays = append(r.holidays, h)
	return h, nil
}

func (r *fakeCalendarRepo) DeleteHoliday(ctx context.Context, id string) error {
	for i, h := range r.holidays {
		if h.ID == id {
			r.holidays = append(r.holidays[:i], r.holidays[i+1:]...)
			return nil
		}
	}
	return calendar.ErrHolidayNotFound
}

func TestCalendarService_HolidaysAndMonthView(t *testing.T) {
	svc := NewCalendarService(&fakeCalendarRepo{})
	ctx := context.Background()

	created, err := svc.CreateHoliday(ctx, calendar.CreateHolidayRequest{Name: "Republic Day", Date: "2020-01-27", IsRecurring: true})
	require.NoError(t, err)
	assert.Equal(t, "2020-01-27", created.Date)

	_, err = svc.CreateHoliday(ctx, calendar.CreateHolidayRequest{Name: "Dup", Date: "2020-01-27"})
	assert.ErrorIs(t, err, calendar.ErrHolidayExists)

	holiday, err := svc.IsHoliday(ctx, time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, holiday)

	view, err := svc.MonthView(ctx, "2025-01")
	require.NoError(t, err)
	assert.Equal(t, 25, view.WorkingDays)
	require.Len(t, view.Days, 31)
	assert.Equal(t, "Republic Day", view.Days[26].Reason)
	assert.Equal(t, "Second Saturday", view.Days[10].Reason)
	assert.Equal(t, "Weekly Off", view.Days[4].Reason)
	assert.Equal(t, "Sunday", view.Days[4].Weekday)
	assert.False(t, view.Days[3].IsHoliday)

	require.NoError(t, svc.DeleteHoliday(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteHoliday(ctx, created.ID), calendar.ErrHolidayNotFound)

	_, err = svc.MonthView(ctx, "January")
	assert.ErrorIs(t, err, calendar.ErrInvalidMonth)
}

func TestCalendarService_UpdateSettings(t *testing.T) {
	svc := NewCalendarService(&fakeCalendarRepo{})
	ctx := context.Background()

	off := false
	resp, err := svc.UpdateSettings(ctx, calendar.UpdateSettingsRequest{WorkSaturday: &off})
	require.NoError(t, err)
	assert.False(t, resp.WorkSaturday)
	assert.True(t, resp.WorkMonday, "untouched flags keep their value")

	view, err := svc.MonthView(ctx, "2025-01")
	require.NoError(t, err)
	assert.Equal(t, 23, view.WorkingDays)
}
