package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const microsPerMinute = int64(time.Minute / time.Microsecond)

func clockToTime(c *punch.Clock) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*c) * microsPerMinute, Valid: true}
}

func timeToClock(t pgtype.Time) *punch.Clock {
	if !t.Valid {
		return nil
	}
	c := punch.Clock(t.Microseconds / microsPerMinute)
	return &c
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.status, a.check_in, a.check_out, a.total_work_minutes,
	a.is_compliant, a.approved_overtime_minutes, a.is_locked, a.entry_type, a.remarks,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, extra ...any) (attendance.AttendanceDay, error) {
	var (
		day               attendance.AttendanceDay
		checkIn, checkOut pgtype.Time
	)
	dest := []any{
		&day.ID, &day.EmployeeID, &day.Date, &day.Status, &checkIn, &checkOut, &day.TotalWorkMinutes,
		&day.IsCompliant, &day.ApprovedOvertimeMinutes, &day.IsLocked, &day.EntryType, &day.Remarks,
		&day.CreatedAt, &day.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return attendance.AttendanceDay{}, err
	}
	day.CheckIn = timeToClock(checkIn)
	day.CheckOut = timeToClock(checkOut)
	return day, nil
}

func collectAttendance(rows pgx.Rows) ([]attendance.AttendanceDay, error) {
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		day, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return days, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var name *string
	day, err := scanAttendance(q.QueryRow(ctx, query, id), &name)
	if err != nil {
		if noRows(err) {
			return attendance.AttendanceDay{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to get attendance by id %s: %w", id, err)
	}
	day.EmployeeName = name
	return day, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_days a WHERE a.employee_id = $1 AND a.date = $2`

	day, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for employee %s: %w", employeeID, err)
	}
	return &day, nil
}

// Upsert implements attendance.AttendanceRepository. Approved overtime survives a
// re-import; remarks are only replaced when the new day carries some.
func (a *attendanceRepository) Upsert(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_days AS a (
			employee_id, date, status, check_in, check_out, total_work_minutes,
			is_compliant, entry_type, remarks
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			total_work_minutes = EXCLUDED.total_work_minutes,
			is_compliant = EXCLUDED.is_compliant,
			entry_type = EXCLUDED.entry_type,
			remarks = COALESCE(EXCLUDED.remarks, a.remarks),
			updated_at = NOW()
		WHERE a.is_locked = FALSE
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		day.EmployeeID, day.Date, day.Status, clockToTime(day.CheckIn), clockToTime(day.CheckOut),
		day.TotalWorkMinutes, day.IsCompliant, day.EntryType, day.Remarks,
	))
	if err != nil {
		if noRows(err) {
			return attendance.AttendanceDay{}, attendance.ErrAttendanceLocked
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return saved, nil
}

// SaveComputed implements attendance.AttendanceRepository.
func (a *attendanceRepository) SaveComputed(ctx context.Context, day attendance.AttendanceDay) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_days
		SET status = $1, check_in = $2, check_out = $3, total_work_minutes = $4,
			is_compliant = $5, updated_at = NOW()
		WHERE id = $6 AND is_locked = FALSE
	`

	tag, err := q.Exec(ctx, query,
		day.Status, clockToTime(day.CheckIn), clockToTime(day.CheckOut),
		day.TotalWorkMinutes, day.IsCompliant, day.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save computed attendance %s: %w", day.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceLocked
	}
	return nil
}

// ReplacePunches implements attendance.AttendanceRepository.
func (a *attendanceRepository) ReplacePunches(ctx context.Context, dayID string, events []punch.Event) error {
	q := GetQuerier(ctx, a.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_punches WHERE attendance_day_id = $1`, dayID); err != nil {
		return fmt.Errorf("failed to clear punches of %s: %w", dayID, err)
	}
	if len(events) == 0 {
		return nil
	}

	_, err := q.CopyFrom(ctx,
		pgx.Identifier{"attendance_punches"},
		[]string{"attendance_day_id", "seq", "punch_time", "direction"},
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			c := events[i].Time
			return []any{dayID, i, clockToTime(&c), string(events[i].Direction)}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy punches of %s: %w", dayID, err)
	}
	return nil
}

// GetPunches implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetPunches(ctx context.Context, dayID string) ([]punch.Event, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT punch_time, direction
		FROM attendance_punches
		WHERE attendance_day_id = $1
		ORDER BY seq
	`, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to get punches of %s: %w", dayID, err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		var (
			t   pgtype.Time
			dir string
		)
		if err := rows.Scan(&t, &dir); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		events = append(events, punch.Event{Time: *timeToClock(t), Direction: punch.Direction(dir)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return events, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceDay, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	var args []any
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_days a WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		var name *string
		day, err := scanAttendance(rows, &name)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		day.EmployeeName = name
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return days, total, nil
}

// ListForPayroll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListForPayroll(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days a
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date
	`
	if _, inTx := ctx.Value("tx").(pgx.Tx); inTx {
		query += " FOR UPDATE"
	}

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for payroll: %w", err)
	}
	return collectAttendance(rows)
}

// ListUnlockedAuto implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListUnlockedAuto(ctx context.Context, from, to time.Time) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days a
		WHERE a.date BETWEEN $1 AND $2 AND a.is_locked = FALSE AND a.entry_type = $3
		ORDER BY a.date, a.employee_id
	`

	rows, err := q.Query(ctx, query, from, to, attendance.EntryTypeAuto)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocked attendance: %w", err)
	}
	return collectAttendance(rows)
}

// SetApprovedOvertime implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetApprovedOvertime(ctx context.Context, id string, minutes int) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_days
		SET approved_overtime_minutes = $1, updated_at = NOW()
		WHERE id = $2 AND is_locked = FALSE
	`, minutes, id)
	if err != nil {
		return fmt.Errorf("failed to set approved overtime on %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceLocked
	}
	return nil
}

// Lock implements attendance.AttendanceRepository.
func (a *attendanceRepository) Lock(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, a.db)

	if _, err := q.Exec(ctx, `
		UPDATE attendance_days SET is_locked = TRUE, updated_at = NOW()
		WHERE id = ANY($1)
	`, ids); err != nil {
		return fmt.Errorf("failed to lock attendance: %w", err)
	}
	return nil
}

// UnlockRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) UnlockRange(ctx context.Context, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_days SET is_locked = FALSE, updated_at = NOW()
		WHERE date BETWEEN $1 AND $2 AND is_locked = TRUE
	`, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to unlock attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteUnlocked implements attendance.AttendanceRepository. Punches go with the day
// through ON DELETE CASCADE.
func (a *attendanceRepository) DeleteUnlocked(ctx context.Context, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM attendance_days
		WHERE date BETWEEN $1 AND $2 AND is_locked = FALSE
	`, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}
