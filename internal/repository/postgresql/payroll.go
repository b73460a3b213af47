package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== BATCHES ==========

const batchSelect = `
	SELECT b.id, b.month, b.status, b.export_path, b.finalized_at, b.created_at, b.updated_at,
		(SELECT COUNT(*) FROM payroll_entries pe WHERE pe.batch_id = b.id),
		(SELECT COALESCE(SUM(pe.net_salary), 0) FROM payroll_entries pe WHERE pe.batch_id = b.id)
	FROM payroll_batches b`

func scanBatch(row pgx.Row) (payroll.Batch, error) {
	var b payroll.Batch
	err := row.Scan(
		&b.ID, &b.Month, &b.Status, &b.ExportPath, &b.FinalizedAt, &b.CreatedAt, &b.UpdatedAt,
		&b.EntryCount, &b.TotalNet,
	)
	return b, err
}

func (r *payrollRepository) CreateBatch(ctx context.Context, month time.Time) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_batches (month, status)
		VALUES ($1, $2)
		RETURNING id, month, status, export_path, finalized_at, created_at, updated_at
	`

	var b payroll.Batch
	err := q.QueryRow(ctx, query, month, payroll.BatchStatusDraft).Scan(
		&b.ID, &b.Month, &b.Status, &b.ExportPath, &b.FinalizedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return payroll.Batch{}, payroll.ErrBatchAlreadyExists
		}
		return payroll.Batch{}, fmt.Errorf("failed to create payroll batch: %w", err)
	}

	return b, nil
}

func (r *payrollRepository) GetBatch(ctx context.Context, id string) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBatch(q.QueryRow(ctx, batchSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if noRows(err) {
			return payroll.Batch{}, payroll.ErrBatchNotFound
		}
		return payroll.Batch{}, fmt.Errorf("failed to get payroll batch: %w", err)
	}

	return b, nil
}

func (r *payrollRepository) GetBatchForUpdate(ctx context.Context, id string) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, status, export_path, finalized_at, created_at, updated_at
		FROM payroll_batches
		WHERE id = $1
		FOR UPDATE
	`

	var b payroll.Batch
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Month, &b.Status, &b.ExportPath, &b.FinalizedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return payroll.Batch{}, payroll.ErrBatchNotFound
		}
		return payroll.Batch{}, fmt.Errorf("failed to lock payroll batch: %w", err)
	}

	return b, nil
}

func (r *payrollRepository) GetActiveBatchByMonth(ctx context.Context, month time.Time) (*payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBatch(q.QueryRow(ctx, batchSelect+` WHERE b.month = $1 AND b.status <> $2`, month, payroll.BatchStatusVoid))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll batch by month: %w", err)
	}

	return &b, nil
}

func (r *payrollRepository) ListBatches(ctx context.Context, filter payroll.BatchFilter) ([]payroll.Batch, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	var args []any
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND b.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM b.month) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_batches b WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll batches: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY b.month DESC, b.created_at DESC
		LIMIT $%d OFFSET $%d
	`, batchSelect, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll batches: %w", err)
	}
	defer rows.Close()

	var batches []payroll.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return batches, total, nil
}

func (r *payrollRepository) UpdateBatchStatus(ctx context.Context, id string, status payroll.BatchStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_batches
		SET status = $1,
			finalized_at = CASE WHEN $1 = 'FINALIZED' THEN NOW() ELSE finalized_at END,
			updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, string(status), id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return payroll.ErrBatchAlreadyExists
		}
		return fmt.Errorf("failed to update payroll batch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrBatchNotFound
	}

	return nil
}

func (r *payrollRepository) SetExportPath(ctx context.Context, id string, path string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payroll_batches SET export_path = $1, updated_at = NOW() WHERE id = $2`, path, id)
	if err != nil {
		return fmt.Errorf("failed to set export path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrBatchNotFound
	}

	return nil
}

// DeleteBatch removes the batch; entries and their deduction lines cascade.
func (r *payrollRepository) DeleteBatch(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_batches WHERE id = $1`, id)
	if noRows(err) {
		return payroll.ErrBatchNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete payroll batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrBatchNotFound
	}

	return nil
}

// ========== ENTRIES ==========

const entryColumns = `
	id, batch_id, employee_id, employee_name, basic_salary, allowances, working_days,
	required_work_hours, actual_work_hours, shortfall_work_hours, hourly_rate, lop_deduction,
	approved_ot_minutes, approved_ot_hours, ot_pay, base_pay, gross_salary, deductions,
	net_salary, bank_account_number, ifsc_code, created_at, updated_at`

func scanEntry(row pgx.Row) (payroll.Entry, error) {
	var e payroll.Entry
	err := row.Scan(
		&e.ID, &e.BatchID, &e.EmployeeID, &e.EmployeeName, &e.BasicSalary, &e.Allowances, &e.WorkingDays,
		&e.RequiredWorkHours, &e.ActualWorkHours, &e.ShortfallWorkHours, &e.HourlyRate, &e.LOPDeduction,
		&e.ApprovedOTMinutes, &e.ApprovedOTHours, &e.OTPay, &e.BasePay, &e.GrossSalary, &e.Deductions,
		&e.NetSalary, &e.BankAccountNumber, &e.IFSCCode, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *payrollRepository) DeleteEntries(ctx context.Context, batchID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_entries WHERE batch_id = $1`, batchID); err != nil {
		return fmt.Errorf("failed to delete payroll entries: %w", err)
	}

	return nil
}

func (r *payrollRepository) CreateEntry(ctx context.Context, entry payroll.Entry) (payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_entries (
			batch_id, employee_id, employee_name, basic_salary, allowances, working_days,
			required_work_hours, actual_work_hours, shortfall_work_hours, hourly_rate, lop_deduction,
			approved_ot_minutes, approved_ot_hours, ot_pay, base_pay, gross_salary, deductions,
			net_salary, bank_account_number, ifsc_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + entryColumns

	saved, err := scanEntry(q.QueryRow(ctx, query,
		entry.BatchID, entry.EmployeeID, entry.EmployeeName, entry.BasicSalary, entry.Allowances, entry.WorkingDays,
		entry.RequiredWorkHours, entry.ActualWorkHours, entry.ShortfallWorkHours, entry.HourlyRate, entry.LOPDeduction,
		entry.ApprovedOTMinutes, entry.ApprovedOTHours, entry.OTPay, entry.BasePay, entry.GrossSalary, entry.Deductions,
		entry.NetSalary, entry.BankAccountNumber, entry.IFSCCode,
	))
	if err != nil {
		return payroll.Entry{}, fmt.Errorf("failed to create payroll entry for employee %s: %w", entry.EmployeeID, err)
	}

	lineQuery := `
		INSERT INTO payroll_deductions (entry_id, component_id, seq, amount, approved_amount, is_waived)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	for i, line := range entry.Lines {
		line.EntryID = saved.ID
		err := q.QueryRow(ctx, lineQuery,
			line.EntryID, line.ComponentID, i, line.Amount, line.ApprovedAmount, line.IsWaived,
		).Scan(&line.ID, &line.CreatedAt, &line.UpdatedAt)
		if err != nil {
			return payroll.Entry{}, fmt.Errorf("failed to create deduction line %s: %w", line.ComponentName, err)
		}
		saved.Lines = append(saved.Lines, line)
	}

	return saved, nil
}

func (r *payrollRepository) GetEntry(ctx context.Context, id string) (payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEntry(q.QueryRow(ctx, `SELECT `+entryColumns+` FROM payroll_entries WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return payroll.Entry{}, payroll.ErrEntryNotFound
		}
		return payroll.Entry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	lines, err := r.listLines(ctx, `pd.entry_id = $1`, id)
	if err != nil {
		return payroll.Entry{}, err
	}
	e.Lines = lines[e.ID]

	return e, nil
}

func (r *payrollRepository) ListEntries(ctx context.Context, batchID string) ([]payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+entryColumns+`
		FROM payroll_entries
		WHERE batch_id = $1
		ORDER BY employee_name, employee_id
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	lines, err := r.listLines(ctx, `pd.entry_id IN (SELECT id FROM payroll_entries WHERE batch_id = $1)`, batchID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].ID]
	}

	return entries, nil
}

// trailingRow scans extra columns selected after the entry columns.
type trailingRow struct {
	pgx.Row
	extra []any
}

func (r trailingRow) Scan(dest ...any) error {
	return r.Row.Scan(append(dest, r.extra...)...)
}

func (r *payrollRepository) ListPayslips(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT pe.*, pb.month
		FROM (SELECT `+entryColumns+` FROM payroll_entries WHERE employee_id = $1) pe
		JOIN payroll_batches pb ON pb.id = pe.batch_id
		WHERE pb.status = $2
		ORDER BY pb.month DESC
	`, employeeID, string(payroll.BatchStatusFinalized))
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var month time.Time
		e, err := scanEntry(trailingRow{Row: rows, extra: []any{&month}})
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, payroll.Payslip{Month: month, Entry: e})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	lines, err := r.listLines(ctx, `pd.entry_id IN (SELECT id FROM payroll_entries WHERE employee_id = $1)`, employeeID)
	if err != nil {
		return nil, err
	}
	for i := range payslips {
		payslips[i].Entry.Lines = lines[payslips[i].Entry.ID]
	}

	return payslips, nil
}

func (r *payrollRepository) UpdateEntryTotals(ctx context.Context, entry payroll.Entry) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_entries
		SET deductions = $1, net_salary = $2, updated_at = NOW()
		WHERE id = $3
	`, entry.Deductions, entry.NetSalary, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update payroll entry totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrEntryNotFound
	}

	return nil
}

// ========== DEDUCTION LINES ==========

const lineSelect = `
	SELECT pd.id, pd.entry_id, pd.component_id, c.name, c.is_statutory, pd.amount,
		pd.approved_amount, pd.is_waived, pd.created_at, pd.updated_at
	FROM payroll_deductions pd
	JOIN deduction_components c ON c.id = pd.component_id`

func scanLine(row pgx.Row) (payroll.DeductionLine, error) {
	var l payroll.DeductionLine
	err := row.Scan(
		&l.ID, &l.EntryID, &l.ComponentID, &l.ComponentName, &l.IsStatutory, &l.Amount,
		&l.ApprovedAmount, &l.IsWaived, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// listLines groups the matching deduction lines by entry id, in the order they were computed.
func (r *payrollRepository) listLines(ctx context.Context, where string, args ...any) (map[string][]payroll.DeductionLine, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, lineSelect+` WHERE `+where+` ORDER BY pd.entry_id, pd.seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[string][]payroll.DeductionLine)
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deduction line: %w", err)
		}
		lines[l.EntryID] = append(lines[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return lines, nil
}

func (r *payrollRepository) GetDeductionLine(ctx context.Context, id string) (payroll.DeductionLine, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLine(q.QueryRow(ctx, lineSelect+` WHERE pd.id = $1`, id))
	if err != nil {
		if noRows(err) {
			return payroll.DeductionLine{}, payroll.ErrDeductionLineNotFound
		}
		return payroll.DeductionLine{}, fmt.Errorf("failed to get deduction line: %w", err)
	}

	return l, nil
}

func (r *payrollRepository) UpdateDeductionLine(ctx context.Context, line payroll.DeductionLine) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_deductions
		SET approved_amount = $1, is_waived = $2, updated_at = NOW()
		WHERE id = $3
	`, line.ApprovedAmount, line.IsWaived, line.ID)
	if err != nil {
		return fmt.Errorf("failed to update deduction line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDeductionLineNotFound
	}

	return nil
}

// ========== COMPONENTS ==========

const componentColumns = `id, name, is_statutory, is_recurring, created_at, updated_at`

func scanComponent(row pgx.Row) (payroll.DeductionComponent, error) {
	var c payroll.DeductionComponent
	err := row.Scan(&c.ID, &c.Name, &c.IsStatutory, &c.IsRecurring, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *payrollRepository) CreateComponent(ctx context.Context, component payroll.DeductionComponent) (payroll.DeductionComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deduction_components (name, is_statutory, is_recurring)
		VALUES ($1, $2, $3)
		RETURNING ` + componentColumns

	c, err := scanComponent(q.QueryRow(ctx, query, component.Name, component.IsStatutory, component.IsRecurring))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return payroll.DeductionComponent{}, payroll.ErrComponentNameExists
		}
		return payroll.DeductionComponent{}, fmt.Errorf("failed to create deduction component: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) GetComponentByID(ctx context.Context, id string) (payroll.DeductionComponent, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanComponent(q.QueryRow(ctx, `SELECT `+componentColumns+` FROM deduction_components WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return payroll.DeductionComponent{}, payroll.ErrComponentNotFound
		}
		return payroll.DeductionComponent{}, fmt.Errorf("failed to get deduction component: %w", err)
	}

	return c, nil
}

// GetOrCreateComponent uses a no-op update on conflict so RETURNING always yields the row.
func (r *payrollRepository) GetOrCreateComponent(ctx context.Context, component payroll.DeductionComponent) (payroll.DeductionComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deduction_components (name, is_statutory, is_recurring)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING ` + componentColumns

	c, err := scanComponent(q.QueryRow(ctx, query, component.Name, component.IsStatutory, component.IsRecurring))
	if err != nil {
		return payroll.DeductionComponent{}, fmt.Errorf("failed to get or create deduction component %s: %w", component.Name, err)
	}

	return c, nil
}

func (r *payrollRepository) ListComponents(ctx context.Context) ([]payroll.DeductionComponent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+componentColumns+` FROM deduction_components ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction components: %w", err)
	}
	defer rows.Close()

	var components []payroll.DeductionComponent
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deduction component: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return components, nil
}

// ========== EMPLOYEE DEDUCTIONS ==========

const employeeDeductionSelect = `
	SELECT ed.id, ed.employee_id, ed.component_id, ed.amount, ed.percentage, ed.is_active,
		ed.created_at, ed.updated_at, c.name, c.is_statutory, c.is_recurring
	FROM employee_deductions ed
	JOIN deduction_components c ON c.id = ed.component_id`

func scanEmployeeDeduction(row pgx.Row) (payroll.EmployeeDeduction, error) {
	var d payroll.EmployeeDeduction
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.ComponentID, &d.Amount, &d.Percentage, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt, &d.ComponentName, &d.IsStatutory, &d.IsRecurring,
	)
	return d, err
}

func (r *payrollRepository) AssignDeduction(ctx context.Context, deduction payroll.EmployeeDeduction) (payroll.EmployeeDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH ed AS (
			INSERT INTO employee_deductions (employee_id, component_id, amount, percentage, is_active)
			VALUES ($1, $2, $3, $4, TRUE)
			RETURNING *
		)
		SELECT ed.id, ed.employee_id, ed.component_id, ed.amount, ed.percentage, ed.is_active,
			ed.created_at, ed.updated_at, c.name, c.is_statutory, c.is_recurring
		FROM ed
		JOIN deduction_components c ON c.id = ed.component_id
	`

	d, err := scanEmployeeDeduction(q.QueryRow(ctx, query,
		deduction.EmployeeID, deduction.ComponentID, deduction.Amount, deduction.Percentage,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return payroll.EmployeeDeduction{}, payroll.ErrComponentNotFound
		}
		return payroll.EmployeeDeduction{}, fmt.Errorf("failed to assign deduction: %w", err)
	}

	return d, nil
}

func (r *payrollRepository) GetEmployeeDeduction(ctx context.Context, id string) (payroll.EmployeeDeduction, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanEmployeeDeduction(q.QueryRow(ctx, employeeDeductionSelect+` WHERE ed.id = $1`, id))
	if err != nil {
		if noRows(err) {
			return payroll.EmployeeDeduction{}, payroll.ErrEmployeeDeductionNotFound
		}
		return payroll.EmployeeDeduction{}, fmt.Errorf("failed to get employee deduction: %w", err)
	}

	return d, nil
}

func (r *payrollRepository) ListEmployeeDeductions(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.EmployeeDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeDeductionSelect + ` WHERE ed.employee_id = $1`
	if activeOnly {
		query += ` AND ed.is_active = TRUE`
	}
	query += ` ORDER BY ed.created_at, ed.id`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee deductions: %w", err)
	}
	defer rows.Close()

	var deductions []payroll.EmployeeDeduction
	for rows.Next() {
		d, err := scanEmployeeDeduction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return deductions, nil
}

func (r *payrollRepository) DeactivateDeduction(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employee_deductions SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id)
	if noRows(err) {
		return payroll.ErrEmployeeDeductionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to deactivate employee deduction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrEmployeeDeductionNotFound
	}

	return nil
}
