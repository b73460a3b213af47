package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/sheet"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

const (
	noDataWarning      = "No valid attendance data found. Ensure Employee Names/IDs in the file match the system."
	noEmployeesWarning = "No active employees to match against"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ImportSpreadsheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ImportSpreadsheet(ctx context.Context, file io.Reader, filename string) (attendance.ImportReport, error) {
	report, data, err := s.begin(ctx, file, filename)
	if err != nil {
		return report, err
	}

	sheets, err := sheet.Open(data, filename)
	if err != nil {
		return report, fmt.Errorf("%w: %v", attendance.ErrUnreadableFile, err)
	}

	dir, err := s.directory(ctx, &report)
	if err != nil {
		return report, err
	}

	acc := NewAccumulator()
	results, err := NewResolver(dir, acc).ResolveAll(ctx, sheets)
	if err != nil {
		return report, err
	}

	for _, r := range results {
		slog.Info("Attendance sheet resolved", "import_id", report.ImportID, "sheet", r.Sheet,
			"rows", r.Rows, "collected", r.Collected, "unmatched", r.Unmatched, "undated", r.Undated)
		if r.Unmatched > 0 {
			report.SkippedRows += r.Unmatched
			report.Warnings = append(report.Warnings, fmt.Sprintf("Sheet %q: %d rows could not be matched to an employee", r.Sheet, r.Unmatched))
		}
		if r.Undated > 0 {
			report.SkippedRows += r.Undated
			report.Warnings = append(report.Warnings, fmt.Sprintf("Sheet %q: %d rows had no date", r.Sheet, r.Undated))
		}
	}

	if err := s.commit(ctx, acc.Buckets(), &report); err != nil {
		return report, err
	}
	return report, nil
}

// ImportCSV implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ImportCSV(ctx context.Context, file io.Reader, filename string) (attendance.ImportReport, error) {
	report, data, err := s.begin(ctx, file, filename)
	if err != nil {
		return report, err
	}

	var rows []attendance.CSVRow
	if err := gocsv.UnmarshalBytes(bytes.TrimPrefix(data, utf8BOM), &rows); err != nil {
		return report, fmt.Errorf("%w: %v", attendance.ErrUnreadableFile, err)
	}

	dir, err := s.directory(ctx, &report)
	if err != nil {
		return report, err
	}

	acc := NewAccumulator()
	for i, row := range rows {
		line := i + 2 // header is line 1

		id, ok := dir.ByEmail(row.EmployeeEmail)
		if !ok {
			report.SkippedRows++
			report.Warnings = append(report.Warnings, fmt.Sprintf("Line %d: unknown employee email %q", line, row.EmployeeEmail))
			continue
		}

		date, ok := sheet.ParseDate(row.Date)
		if !ok {
			report.SkippedRows++
			report.Errors = append(report.Errors, fmt.Sprintf("Line %d: invalid date %q", line, row.Date))
			continue
		}

		var events []punch.Event
		for _, p := range []struct {
			raw string
			dir punch.Direction
		}{{row.InTime, punch.In}, {row.OutTime, punch.Out}} {
			if punch.IsBlank(p.raw) {
				continue
			}
			c, ok := punch.ParseClock(p.raw)
			if !ok {
				report.Errors = append(report.Errors, fmt.Sprintf("Line %d: invalid %s time %q", line, p.dir, p.raw))
				continue
			}
			events = append(events, punch.Event{Time: c, Direction: p.dir})
		}

		acc.Add(id, date, events, "")
	}

	if err := s.commit(ctx, acc.Buckets(), &report); err != nil {
		return report, err
	}
	return report, nil
}

// begin reads the upload and keeps a copy in file storage. A storage failure is
// reported as a warning and does not stop the import.
func (s *AttendanceServiceImpl) begin(ctx context.Context, file io.Reader, filename string) (attendance.ImportReport, []byte, error) {
	report := attendance.ImportReport{
		ImportID: uuid.New().String(),
		FileName: filename,
		Errors:   []string{},
		Warnings: []string{},
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return report, nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return report, nil, attendance.ErrUnreadableFile
	}

	path, err := s.fileService.UploadAttendanceImport(ctx, report.ImportID, bytes.NewReader(data), filename)
	if err != nil {
		slog.Warn("Failed to store attendance import", "import_id", report.ImportID, "error", err)
		report.Warnings = append(report.Warnings, "Original file could not be stored")
	} else {
		report.StoredPath = path
	}

	return report, data, nil
}

func (s *AttendanceServiceImpl) directory(ctx context.Context, report *attendance.ImportReport) (*Directory, error) {
	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee directory: %w", err)
	}
	dir := NewDirectory(employees)
	if dir.Len() == 0 {
		slog.Warn("Attendance import has an empty employee directory", "import_id", report.ImportID)
		report.Warnings = append(report.Warnings, noEmployeesWarning)
	}
	return dir, nil
}

// commit saves every bucket in its own transaction. Failures are collected in the
// report; only a failure to load the holiday calendar aborts the import.
func (s *AttendanceServiceImpl) commit(ctx context.Context, buckets []Bucket, report *attendance.ImportReport) error {
	if len(buckets) > 0 {
		from, to := buckets[0].Date, buckets[len(buckets)-1].Date
		minDate, maxDate := from.Format("2006-01-02"), to.Format("2006-01-02")
		report.MinDate, report.MaxDate = &minDate, &maxDate

		cal, err := s.holidays.ForRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load holiday calendar: %w", err)
		}

		for _, b := range buckets {
			err := s.commitBucket(ctx, cal, b)
			switch {
			case errors.Is(err, attendance.ErrAttendanceLocked):
				report.LockedSkipped++
				report.Warnings = append(report.Warnings, fmt.Sprintf("%s on %s is locked by payroll and was not changed", b.Employee.Name, b.Date.Format("2006-01-02")))
			case err != nil:
				report.Errors = append(report.Errors, fmt.Sprintf("Save error for %s on %s: %v", b.Employee.Name, b.Date.Format("2006-01-02"), err))
			default:
				report.RecordsCreated++
			}
		}
	}

	if report.RecordsCreated == 0 && report.LockedSkipped == 0 && len(report.Errors) == 0 {
		report.Warnings = append(report.Warnings, noDataWarning)
	}

	slog.Info("Attendance import finished", "import_id", report.ImportID, "file", report.FileName,
		"records", report.RecordsCreated, "skipped", report.SkippedRows, "locked", report.LockedSkipped, "errors", len(report.Errors))
	return nil
}

// commitBucket upserts the day and swaps its raw punches in one transaction. Running it
// twice with the same bucket leaves the same state.
func (s *AttendanceServiceImpl) commitBucket(ctx context.Context, cal *calendar.Calendar, b Bucket) error {
	day := attendance.AttendanceDay{
		EmployeeID: b.Employee.EmployeeID,
		Date:       b.Date,
		Status:     attendance.NormalizeStatus(b.Status, len(b.Punches) > 0),
		EntryType:  attendance.EntryTypeAuto,
	}
	s.apply(&day, punch.CleanWithThreshold(b.Punches, s.opts.JitterMinutes), cal.IsHoliday(b.Date))

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		saved, err := s.AttendanceRepository.Upsert(ctx, day)
		if err != nil {
			return err
		}
		return s.AttendanceRepository.ReplacePunches(ctx, saved.ID, b.Punches)
	})
}
