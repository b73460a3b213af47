package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Scheme is one forward-only schema step. Index must grow by one per step.
type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: employees",
		Query: `
		CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employee_code TEXT NOT NULL UNIQUE,
			full_name TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			national_id TEXT,
			date_of_joining DATE,
			basic_salary NUMERIC(14,2) NOT NULL DEFAULT 0,
			allowance NUMERIC(14,2) NOT NULL DEFAULT 0,
			bank_account_number TEXT NOT NULL DEFAULT '',
			ifsc_code TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'EMPLOYEE',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		Index:       2,
		Description: "Create tables: calendar_settings, public_holidays",
		Query: `
		CREATE TABLE IF NOT EXISTS calendar_settings (
			id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			work_monday BOOLEAN NOT NULL DEFAULT TRUE,
			work_tuesday BOOLEAN NOT NULL DEFAULT TRUE,
			work_wednesday BOOLEAN NOT NULL DEFAULT TRUE,
			work_thursday BOOLEAN NOT NULL DEFAULT TRUE,
			work_friday BOOLEAN NOT NULL DEFAULT TRUE,
			work_saturday BOOLEAN NOT NULL DEFAULT TRUE,
			work_sunday BOOLEAN NOT NULL DEFAULT FALSE,
			second_saturday_holiday BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS public_holidays (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			date DATE NOT NULL UNIQUE,
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		Index:       3,
		Description: "Create tables: leave_types, leave_requests",
		Query: `
		CREATE TABLE IF NOT EXISTS leave_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			is_paid BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS leave_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			leave_type_id UUID NOT NULL REFERENCES leave_types(id),
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (end_date >= start_date)
		);
		CREATE INDEX IF NOT EXISTS idx_leave_requests_employee_dates ON leave_requests (employee_id, start_date, end_date);`,
	},
	{
		Index:       4,
		Description: "Create tables: attendance_days, attendance_punches",
		Query: `
		CREATE TABLE IF NOT EXISTS attendance_days (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			status TEXT NOT NULL,
			check_in TIME,
			check_out TIME,
			total_work_minutes INTEGER NOT NULL DEFAULT 0,
			is_compliant BOOLEAN NOT NULL DEFAULT FALSE,
			approved_overtime_minutes INTEGER NOT NULL DEFAULT 0,
			is_locked BOOLEAN NOT NULL DEFAULT FALSE,
			entry_type TEXT NOT NULL DEFAULT 'AUTO',
			remarks TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (employee_id, date)
		);
		CREATE INDEX IF NOT EXISTS idx_attendance_days_date ON attendance_days (date);
		CREATE TABLE IF NOT EXISTS attendance_punches (
			id BIGSERIAL PRIMARY KEY,
			attendance_day_id UUID NOT NULL REFERENCES attendance_days(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			punch_time TIME NOT NULL,
			direction TEXT NOT NULL CHECK (direction IN ('in', 'out'))
		);
		CREATE INDEX IF NOT EXISTS idx_attendance_punches_day ON attendance_punches (attendance_day_id, seq);`,
	},
	{
		Index:       5,
		Description: "Create tables: deduction_components, employee_deductions",
		Query: `
		CREATE TABLE IF NOT EXISTS deduction_components (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			is_statutory BOOLEAN NOT NULL DEFAULT FALSE,
			is_recurring BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS employee_deductions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			component_id UUID NOT NULL REFERENCES deduction_components(id),
			amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			percentage NUMERIC(5,2) NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		Index:       6,
		Description: "Create tables: payroll_batches, payroll_entries, payroll_deductions",
		Query: `
		CREATE TABLE IF NOT EXISTS payroll_batches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			month DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'DRAFT',
			export_path TEXT,
			finalized_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS uq_payroll_batches_active_month ON payroll_batches (month) WHERE status <> 'VOID';
		CREATE TABLE IF NOT EXISTS payroll_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			batch_id UUID NOT NULL REFERENCES payroll_batches(id) ON DELETE CASCADE,
			employee_id UUID NOT NULL REFERENCES employees(id),
			employee_name TEXT NOT NULL,
			basic_salary NUMERIC(14,2) NOT NULL,
			allowances NUMERIC(14,2) NOT NULL,
			working_days INTEGER NOT NULL,
			required_work_hours NUMERIC(8,2) NOT NULL,
			actual_work_hours NUMERIC(8,2) NOT NULL,
			shortfall_work_hours NUMERIC(8,2) NOT NULL,
			hourly_rate NUMERIC(14,2) NOT NULL,
			lop_deduction NUMERIC(14,2) NOT NULL,
			approved_ot_minutes INTEGER NOT NULL,
			approved_ot_hours NUMERIC(8,2) NOT NULL,
			ot_pay NUMERIC(14,2) NOT NULL,
			base_pay NUMERIC(14,2) NOT NULL,
			gross_salary NUMERIC(14,2) NOT NULL,
			deductions NUMERIC(14,2) NOT NULL,
			net_salary NUMERIC(14,2) NOT NULL,
			bank_account_number TEXT NOT NULL DEFAULT '',
			ifsc_code TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (batch_id, employee_id)
		);
		CREATE TABLE IF NOT EXISTS payroll_deductions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			entry_id UUID NOT NULL REFERENCES payroll_entries(id) ON DELETE CASCADE,
			component_id UUID NOT NULL REFERENCES deduction_components(id),
			seq INTEGER NOT NULL DEFAULT 0,
			amount NUMERIC(14,2) NOT NULL,
			approved_amount NUMERIC(14,2) NOT NULL,
			is_waived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
}

// Migrate applies every step above the recorded version, each in its own transaction.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var version int
	err := db.QueryRow(ctx, `SELECT version FROM schema_migrations`).Scan(&version)
	if err == pgx.ErrNoRows {
		if _, err := db.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES (0)`); err != nil {
			return fmt.Errorf("failed to seed schema_migrations: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, s := range scheme {
		if s.Index <= version {
			continue
		}
		err := WithTransaction(ctx, db, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, s.Query); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `UPDATE schema_migrations SET version = $1`, s.Index)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", s.Index, s.Description, err)
		}
		slog.Info("Migration applied", "index", s.Index, "description", s.Description)
	}

	return nil
}
