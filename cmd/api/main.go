package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-engine/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/secret"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-engine/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/payroll-engine/internal/service/calendar"
	employeeService "github.com/cmlabs-hris/payroll-engine/internal/service/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/service/file"
	"github.com/cmlabs-hris/payroll-engine/internal/service/leave"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: time.Hour,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.App.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			slog.Error("Error applying migrations", "error", err)
			os.Exit(1)
		}
	}

	box, err := secret.NewBox(cfg.Crypto.BankKey)
	if err != nil {
		slog.Error("Invalid BANK_ACCOUNT_KEY", "error", err)
		os.Exit(1)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage)
	calendarSvc := calendarService.NewCalendarService(calendarRepo)
	leaveLedger := leave.NewLedgerService(leaveRequestRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, box)
	attendanceSvc := attendanceService.NewAttendanceService(
		tx,
		attendanceRepo,
		employeeRepo,
		calendarSvc,
		fileService,
		attendanceService.Options{
			JitterMinutes:     cfg.Payroll.PunchJitterMinutes,
			MaxSessionMinutes: cfg.Payroll.MaxSessionMinutes,
		},
	)
	payrollSvc := payrollService.NewPayrollService(
		tx,
		payrollRepo,
		attendanceRepo,
		employeeRepo,
		calendarSvc,
		leaveLedger,
		fileService,
		box,
		payrollService.Options{
			OTMultiplier: cfg.Payroll.OTMultiplier,
			Workers:      cfg.Payroll.Workers,
		},
	)

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc, payrollSvc),
		Calendar:   appHTTP.NewCalendarHandler(calendarSvc),
	})

	scheduler := cron.NewScheduler()
	if err := cron.NewPayrollJobs(attendanceSvc, payrollSvc, cfg.Payroll.AutoDraft).RegisterJobs(scheduler); err != nil {
		slog.Error("Failed to register cron jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	scheduler.Stop()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
