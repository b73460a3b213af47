package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type CalendarServiceImpl struct {
	calendarRepo calendar.CalendarRepository
}

func NewCalendarService(calendarRepo calendar.CalendarRepository) calendar.CalendarService {
	return &CalendarServiceImpl{
		calendarRepo: calendarRepo,
	}
}

// ForRange implements calendar.HolidayCalendar.
func (s *CalendarServiceImpl) ForRange(ctx context.Context, from, to time.Time) (*calendar.Calendar, error) {
	settings, err := s.calendarRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar settings: %w", err)
	}
	holidays, err := s.calendarRepo.ListHolidays(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load public holidays: %w", err)
	}
	return calendar.NewCalendar(settings, holidays), nil
}

// IsHoliday implements calendar.HolidayCalendar.
func (s *CalendarServiceImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	cal, err := s.ForRange(ctx, date, date)
	if err != nil {
		return false, err
	}
	return cal.IsHoliday(date), nil
}

// GetSettings implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetSettings(ctx context.Context) (calendar.SettingsResponse, error) {
	settings, err := s.calendarRepo.GetSettings(ctx)
	if err != nil {
		return calendar.SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

// UpdateSettings implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpdateSettings(ctx context.Context, req calendar.UpdateSettingsRequest) (calendar.SettingsResponse, error) {
	settings, err := s.calendarRepo.GetSettings(ctx)
	if err != nil {
		return calendar.SettingsResponse{}, err
	}

	apply := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&settings.WorkMonday, req.WorkMonday)
	apply(&settings.WorkTuesday, req.WorkTuesday)
	apply(&settings.WorkWednesday, req.WorkWednesday)
	apply(&settings.WorkThursday, req.WorkThursday)
	apply(&settings.WorkFriday, req.WorkFriday)
	apply(&settings.WorkSaturday, req.WorkSaturday)
	apply(&settings.WorkSunday, req.WorkSunday)
	apply(&settings.SecondSaturdayHoliday, req.SecondSaturdayHoliday)

	saved, err := s.calendarRepo.UpsertSettings(ctx, settings)
	if err != nil {
		return calendar.SettingsResponse{}, err
	}

	slog.Info("Calendar settings updated", "work_saturday", saved.WorkSaturday, "work_sunday", saved.WorkSunday, "second_saturday_holiday", saved.SecondSaturdayHoliday)
	return toSettingsResponse(saved), nil
}

// CreateHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) CreateHoliday(ctx context.Context, req calendar.CreateHolidayRequest) (calendar.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.HolidayResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	created, err := s.calendarRepo.CreateHoliday(ctx, calendar.PublicHoliday{
		Name:        req.Name,
		Date:        date,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		return calendar.HolidayResponse{}, err
	}
	return toHolidayResponse(created), nil
}

// DeleteHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return s.calendarRepo.DeleteHoliday(ctx, id)
}

// MonthView implements calendar.CalendarService.
func (s *CalendarServiceImpl) MonthView(ctx context.Context, month string) (calendar.MonthViewResponse, error) {
	first, ok := validator.IsValidMonth(month)
	if !ok {
		return calendar.MonthViewResponse{}, calendar.ErrInvalidMonth
	}
	last := calendar.LastOfMonth(first)

	cal, err := s.ForRange(ctx, first, last)
	if err != nil {
		return calendar.MonthViewResponse{}, err
	}

	view := calendar.MonthViewResponse{
		Month:       first.Format("2006-01"),
		WorkingDays: cal.WorkingDays(first),
		Days:        make([]calendar.DayView, 0, last.Day()),
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		reason, holiday := cal.HolidayName(d)
		view.Days = append(view.Days, calendar.DayView{
			Date:      d.Format("2006-01-02"),
			Weekday:   d.Weekday().String(),
			IsHoliday: holiday,
			Reason:    reason,
		})
	}
	return view, nil
}

func toSettingsResponse(s calendar.Settings) calendar.SettingsResponse {
	return calendar.SettingsResponse{
		WorkMonday:            s.WorkMonday,
		WorkTuesday:           s.WorkTuesday,
		WorkWednesday:         s.WorkWednesday,
		WorkThursday:          s.WorkThursday,
		WorkFriday:            s.WorkFriday,
		WorkSaturday:          s.WorkSaturday,
		WorkSunday:            s.WorkSunday,
		SecondSaturdayHoliday: s.SecondSaturdayHoliday,
	}
}

func toHolidayResponse(h calendar.PublicHoliday) calendar.HolidayResponse {
	return calendar.HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		IsRecurring: h.IsRecurring,
	}
}
