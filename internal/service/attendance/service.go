package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
	"github.com/cmlabs-hris/payroll-engine/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

// Options tunes punch cleaning.
type Options struct {
	JitterMinutes     int
	MaxSessionMinutes int
}

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	holidays    calendar.HolidayCalendar
	fileService file.FileService
	opts        Options
	now         func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidays calendar.HolidayCalendar,
	fileService file.FileService,
	opts Options,
) attendance.AttendanceService {
	if opts.JitterMinutes <= 0 {
		opts.JitterMinutes = punch.DefaultThreshold
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		holidays:             holidays,
		fileService:          fileService,
		opts:                 opts,
		now:                  time.Now,
	}
}

// Import implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Import(ctx context.Context, file io.Reader, filename string) (attendance.ImportReport, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return s.ImportSpreadsheet(ctx, file, filename)
	case ".csv":
		return s.ImportCSV(ctx, file, filename)
	}
	return attendance.ImportReport{}, attendance.ErrUnsupportedFileType
}

// ManualEntry implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceDayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceDayResponse{}, err
	}
	if !emp.IsActive {
		return attendance.AttendanceDayResponse{}, attendance.ErrEmployeeNotEligible
	}

	cal, err := s.holidays.ForRange(ctx, req.ParsedDate, req.ParsedDate)
	if err != nil {
		return attendance.AttendanceDayResponse{}, fmt.Errorf("failed to load holiday calendar: %w", err)
	}

	day := attendance.AttendanceDay{
		EmployeeID: emp.ID,
		Date:       req.ParsedDate,
		Status:     attendance.Status(req.Status),
		CheckIn:    req.ParsedCheckIn,
		CheckOut:   req.ParsedCheckOut,
		EntryType:  attendance.EntryTypeManual,
		Remarks:    req.Remarks,
	}
	sessions := manualSessions(day)
	s.apply(&day, sessions, cal.IsHoliday(day.Date))
	events := punch.Events(sessions)

	var saved attendance.AttendanceDay
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.AttendanceRepository.Upsert(ctx, day)
		if err != nil {
			return err
		}
		return s.AttendanceRepository.ReplacePunches(ctx, saved.ID, events)
	})
	if err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	slog.Info("Manual attendance entry saved", "attendance_id", saved.ID, "employee_id", emp.ID, "date", day.Date.Format("2006-01-02"))
	saved.EmployeeName = &emp.FullName
	return s.toResponse(saved, events), nil
}

// ApproveOvertime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ApproveOvertime(ctx context.Context, req attendance.ApproveOvertimeRequest) (attendance.AttendanceDayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		day, err := s.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if day.IsLocked {
			return attendance.ErrAttendanceLocked
		}
		return s.AttendanceRepository.SetApprovedOvertime(ctx, day.ID, req.Minutes)
	})
	if err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	return s.GetAttendance(ctx, req.ID)
}

// Recalculate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Recalculate(ctx context.Context, id string) (attendance.AttendanceDayResponse, error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		day, err := s.AttendanceRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if day.IsLocked {
			return attendance.ErrAttendanceLocked
		}

		cal, err := s.holidays.ForRange(ctx, day.Date, day.Date)
		if err != nil {
			return fmt.Errorf("failed to load holiday calendar: %w", err)
		}

		if err := s.recompute(ctx, &day, cal); err != nil {
			return err
		}
		return s.AttendanceRepository.SaveComputed(ctx, day)
	})
	if err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	return s.GetAttendance(ctx, id)
}

// RecalculateOpen implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecalculateOpen(ctx context.Context, from, to time.Time) (int, error) {
	if from.After(to) {
		return 0, attendance.ErrInvalidDateRange
	}

	days, err := s.AttendanceRepository.ListUnlockedAuto(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	cal, err := s.holidays.ForRange(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load holiday calendar: %w", err)
	}

	updated := 0
	for i := range days {
		day := days[i]
		before := day
		if err := s.recompute(ctx, &day, cal); err != nil {
			return updated, err
		}
		if sameComputed(before, day) {
			continue
		}
		if err := s.AttendanceRepository.SaveComputed(ctx, day); err != nil {
			if errors.Is(err, attendance.ErrAttendanceLocked) {
				continue
			}
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceDayResponse, error) {
	day, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	events, err := s.AttendanceRepository.GetPunches(ctx, day.ID)
	if err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	return s.toResponse(day, events), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	days, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	data := make([]attendance.AttendanceDayResponse, 0, len(days))
	for _, d := range days {
		data = append(data, s.toResponse(d, nil))
	}

	return attendance.ListAttendanceResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ListMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// No range means the current month
	if filter.From == nil && filter.To == nil {
		now := s.now().UTC()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, -1)
		filter.From, filter.To = &from, &to
	}

	return s.ListAttendance(ctx, attendance.AttendanceFilter{
		EmployeeID: &employeeID,
		From:       filter.From,
		To:         filter.To,
		Page:       filter.Page,
		Limit:      filter.Limit,
	})
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return "", auth.ErrMissingEmployeeID
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return "", auth.ErrMissingEmployeeID
	}
	return employeeID, nil
}

// Purge implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Purge(ctx context.Context, req attendance.PurgeRequest) (attendance.PurgeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PurgeResponse{}, err
	}

	deleted, err := s.AttendanceRepository.DeleteUnlocked(ctx, req.FromDate, req.ToDate)
	if err != nil {
		return attendance.PurgeResponse{}, err
	}

	slog.Warn("Attendance purged", "from", req.From, "to", req.To, "deleted", deleted)
	return attendance.PurgeResponse{Deleted: deleted}, nil
}

// recompute refreshes status, minutes, compliance and summary times of day in place.
// Manual days are measured from the times the operator entered.
func (s *AttendanceServiceImpl) recompute(ctx context.Context, day *attendance.AttendanceDay, cal *calendar.Calendar) error {
	var sessions []punch.Session
	if day.EntryType == attendance.EntryTypeManual {
		sessions = manualSessions(*day)
	} else {
		events, err := s.AttendanceRepository.GetPunches(ctx, day.ID)
		if err != nil {
			return err
		}
		sessions = punch.CleanWithThreshold(events, s.opts.JitterMinutes)
	}

	s.apply(day, sessions, cal.IsHoliday(day.Date))
	return nil
}

// apply writes the evaluation of sessions onto day.
func (s *AttendanceServiceImpl) apply(day *attendance.AttendanceDay, sessions []punch.Session, isHoliday bool) {
	ev := Evaluate(day.Status, sessions, isHoliday)

	if ev.StatusCorrected {
		slog.Info("Attendance status corrected by punches", "employee_id", day.EmployeeID, "date", day.Date.Format("2006-01-02"), "from", day.Status, "to", ev.Status)
	}
	s.warnLongSessions(day.EmployeeID, day.Date, sessions)

	day.Status = ev.Status
	day.TotalWorkMinutes = ev.TotalMinutes
	day.IsCompliant = ev.IsCompliant
	if day.EntryType != attendance.EntryTypeManual {
		day.CheckIn, day.CheckOut = ev.CheckIn, ev.CheckOut
	}
}

func (s *AttendanceServiceImpl) warnLongSessions(employeeID string, date time.Time, sessions []punch.Session) {
	if s.opts.MaxSessionMinutes <= 0 {
		return
	}
	for _, sess := range sessions {
		if m := sess.Minutes(); m > s.opts.MaxSessionMinutes {
			slog.Warn("Unusually long work session", "employee_id", employeeID, "date", date.Format("2006-01-02"),
				"in", sess.In.String(), "out", sess.Out.String(), "minutes", m)
		}
	}
}

func manualSessions(day attendance.AttendanceDay) []punch.Session {
	if day.CheckIn == nil || day.CheckOut == nil {
		return nil
	}
	return []punch.Session{{In: *day.CheckIn, Out: *day.CheckOut}}
}

func sameComputed(a, b attendance.AttendanceDay) bool {
	return a.Status == b.Status &&
		a.TotalWorkMinutes == b.TotalWorkMinutes &&
		a.IsCompliant == b.IsCompliant &&
		sameClock(a.CheckIn, b.CheckIn) &&
		sameClock(a.CheckOut, b.CheckOut)
}

func sameClock(a, b *punch.Clock) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clockPtrToString(c *punch.Clock) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func (s *AttendanceServiceImpl) toResponse(day attendance.AttendanceDay, events []punch.Event) attendance.AttendanceDayResponse {
	resp := attendance.AttendanceDayResponse{
		ID:                      day.ID,
		EmployeeID:              day.EmployeeID,
		EmployeeName:            day.EmployeeName,
		Date:                    day.Date.Format("2006-01-02"),
		Status:                  string(day.Status),
		CheckIn:                 clockPtrToString(day.CheckIn),
		CheckOut:                clockPtrToString(day.CheckOut),
		TotalWorkMinutes:        day.TotalWorkMinutes,
		ShortfallMinutes:        day.ShortfallMinutes(),
		IsCompliant:             day.IsCompliant,
		ApprovedOvertimeMinutes: day.ApprovedOvertimeMinutes,
		IsLocked:                day.IsLocked,
		EntryType:               string(day.EntryType),
		Remarks:                 day.Remarks,
	}

	if len(events) == 0 {
		return resp
	}

	for _, e := range events {
		resp.Punches = append(resp.Punches, attendance.PunchResponse{Time: e.Time.String(), Direction: string(e.Direction)})
	}

	sessions := manualSessions(day)
	if day.EntryType != attendance.EntryTypeManual {
		sessions = punch.CleanWithThreshold(events, s.opts.JitterMinutes)
	}
	for _, sess := range sessions {
		resp.Sessions = append(resp.Sessions, attendance.SessionResponse{In: sess.In.String(), Out: sess.Out.String(), Minutes: sess.Minutes()})
	}

	return resp
}
