package main

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/secret"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-engine/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/payroll-engine/internal/service/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/service/file"
	"github.com/cmlabs-hris/payroll-engine/internal/service/leave"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
	"github.com/spf13/cobra"
)

var jobsDraft bool

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Scheduled maintenance jobs",
}

var jobsRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduled jobs once, now",
	Long: `Run the server's scheduled jobs once, outside their schedule.

Open attendance for the current month is always recalculated. With --draft the
previous month's payroll batch is drafted too, unless that month already has one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		box, err := secret.NewBox(cfg.Crypto.BankKey)
		if err != nil {
			return fmt.Errorf("invalid BANK_ACCOUNT_KEY: %w", err)
		}
		fileStorage, err := storage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL)
		if err != nil {
			return err
		}

		tx := postgresql.NewTransactor(db)
		attendanceRepo := postgresql.NewAttendanceRepository(db)
		employeeRepo := postgresql.NewEmployeeRepository(db)
		calendarSvc := calendarService.NewCalendarService(postgresql.NewCalendarRepository(db))
		fileService := file.NewFileService(fileStorage)

		attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo, calendarSvc, fileService,
			attendanceService.Options{
				JitterMinutes:     cfg.Payroll.PunchJitterMinutes,
				MaxSessionMinutes: cfg.Payroll.MaxSessionMinutes,
			})
		payrollSvc := payrollService.NewPayrollService(tx, postgresql.NewPayrollRepository(db), attendanceRepo, employeeRepo,
			calendarSvc, leave.NewLedgerService(postgresql.NewLeaveRequestRepository(db)), fileService, box,
			payrollService.Options{
				OTMultiplier: cfg.Payroll.OTMultiplier,
				Workers:      cfg.Payroll.Workers,
			})

		scheduler := cron.NewScheduler()
		if err := cron.NewPayrollJobs(attendanceSvc, payrollSvc, jobsDraft).RegisterJobs(scheduler); err != nil {
			return err
		}
		if err := scheduler.RunOnce(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("[jobs] OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsRunCmd)

	jobsRunCmd.Flags().BoolVar(&jobsDraft, "draft", false, "Also draft the previous month's payroll batch")
}
