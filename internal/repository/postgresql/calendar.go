package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type calendarRepository struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.CalendarRepository {
	return &calendarRepository{db: db}
}

// ========== SETTINGS ==========

func (r *calendarRepository) GetSettings(ctx context.Context) (calendar.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT work_monday, work_tuesday, work_wednesday, work_thursday, work_friday,
			   work_saturday, work_sunday, second_saturday_holiday, updated_at
		FROM calendar_settings
		WHERE id = 1
	`

	var s calendar.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.WorkMonday, &s.WorkTuesday, &s.WorkWednesday, &s.WorkThursday, &s.WorkFriday,
		&s.WorkSaturday, &s.WorkSunday, &s.SecondSaturdayHoliday, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.DefaultSettings(), nil
		}
		return calendar.Settings{}, fmt.Errorf("failed to get calendar settings: %w", err)
	}

	return s, nil
}

func (r *calendarRepository) UpsertSettings(ctx context.Context, settings calendar.Settings) (calendar.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO calendar_settings (
			id, work_monday, work_tuesday, work_wednesday, work_thursday, work_friday,
			work_saturday, work_sunday, second_saturday_holiday
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			work_monday = EXCLUDED.work_monday,
			work_tuesday = EXCLUDED.work_tuesday,
			work_wednesday = EXCLUDED.work_wednesday,
			work_thursday = EXCLUDED.work_thursday,
			work_friday = EXCLUDED.work_friday,
			work_saturday = EXCLUDED.work_saturday,
			work_sunday = EXCLUDED.work_sunday,
			second_saturday_holiday = EXCLUDED.second_saturday_holiday,
			updated_at = NOW()
		RETURNING work_monday, work_tuesday, work_wednesday, work_thursday, work_friday,
			work_saturday, work_sunday, second_saturday_holiday, updated_at
	`

	var s calendar.Settings
	err := q.QueryRow(ctx, query,
		settings.WorkMonday, settings.WorkTuesday, settings.WorkWednesday, settings.WorkThursday,
		settings.WorkFriday, settings.WorkSaturday, settings.WorkSunday, settings.SecondSaturdayHoliday,
	).Scan(
		&s.WorkMonday, &s.WorkTuesday, &s.WorkWednesday, &s.WorkThursday, &s.WorkFriday,
		&s.WorkSaturday, &s.WorkSunday, &s.SecondSaturdayHoliday, &s.UpdatedAt,
	)
	if err != nil {
		return calendar.Settings{}, fmt.Errorf("failed to upsert calendar settings: %w", err)
	}

	return s, nil
}

// ========== HOLIDAYS ==========

func (r *calendarRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, is_recurring, created_at
		FROM public_holidays
		WHERE date BETWEEN $1 AND $2 OR is_recurring = TRUE
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []calendar.PublicHoliday
	for rows.Next() {
		var h calendar.PublicHoliday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.IsRecurring, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return holidays, nil
}

func (r *calendarRepository) CreateHoliday(ctx context.Context, holiday calendar.PublicHoliday) (calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO public_holidays (name, date, is_recurring)
		VALUES ($1, $2, $3)
		RETURNING id, name, date, is_recurring, created_at
	`

	var h calendar.PublicHoliday
	err := q.QueryRow(ctx, query, holiday.Name, holiday.Date, holiday.IsRecurring).Scan(
		&h.ID, &h.Name, &h.Date, &h.IsRecurring, &h.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return calendar.PublicHoliday{}, calendar.ErrHolidayExists
		}
		return calendar.PublicHoliday{}, fmt.Errorf("failed to create public holiday: %w", err)
	}

	return h, nil
}

func (r *calendarRepository) DeleteHoliday(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM public_holidays WHERE id = $1`, id)
	if noRows(err) {
		return calendar.ErrHolidayNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete public holiday %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrHolidayNotFound
	}
	return nil
}
