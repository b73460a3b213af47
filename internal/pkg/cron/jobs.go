package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

// PayrollJobs keeps open attendance current and drafts monthly batches.
type PayrollJobs struct {
	attendanceService attendance.AttendanceService
	payrollService    payroll.PayrollService
	autoDraft         bool
	now               func() time.Time
}

func NewPayrollJobs(
	attendanceService attendance.AttendanceService,
	payrollService payroll.PayrollService,
	autoDraft bool,
) *PayrollJobs {
	return &PayrollJobs{
		attendanceService: attendanceService,
		payrollService:    payrollService,
		autoDraft:         autoDraft,
		now:               time.Now,
	}
}

const (
	recalculateSpec = "0 * * * *"
	autoDraftSpec   = "5 0 1 * *"
)

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) error {
	if err := scheduler.AddJob("recalculate_open_attendance", recalculateSpec, j.RecalculateOpenAttendance); err != nil {
		return err
	}
	if j.autoDraft {
		return scheduler.AddJob("auto_draft_payroll", autoDraftSpec, j.AutoDraftPayroll)
	}
	return nil
}

// RecalculateOpenAttendance recomputes unlocked imported days of the current month.
func (j *PayrollJobs) RecalculateOpenAttendance(ctx context.Context) error {
	now := j.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	count, err := j.attendanceService.RecalculateOpen(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to recalculate open attendance: %w", err)
	}

	if count > 0 {
		slog.Info("Cron: Recalculated open attendance", "month", from.Format("2006-01"), "days", count)
	}
	return nil
}

// AutoDraftPayroll creates the previous month's draft batch. Creating a batch also
// computes it. A month that already has a batch is left alone.
func (j *PayrollJobs) AutoDraftPayroll(ctx context.Context) error {
	now := j.now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0).Format("2006-01")

	batch, err := j.payrollService.CreateBatch(ctx, payroll.CreateBatchRequest{Month: month})
	if err != nil {
		if errors.Is(err, payroll.ErrBatchAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create payroll batch for %s: %w", month, err)
	}

	slog.Info("Cron: Drafted payroll batch",
		"month", month,
		"batch_id", batch.ID,
		"entries", batch.EntryCount,
		"warnings", len(batch.Warnings),
	)
	return nil
}
