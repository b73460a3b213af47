package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/secret"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	OTMultiplier decimal.Decimal
	// Workers bounds how many employees are priced at once.
	Workers int
}

type PayrollServiceImpl struct {
	tx             database.Transactor
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	holidays       calendar.HolidayCalendar
	leaveLedger    leave.LeaveLedger
	fileService    file.FileService
	box            *secret.Box
	opts           Options
	now            func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidays calendar.HolidayCalendar,
	leaveLedger leave.LeaveLedger,
	fileService file.FileService,
	box *secret.Box,
	opts Options,
) payroll.PayrollService {
	if opts.OTMultiplier.IsZero() {
		opts.OTMultiplier = decimal.NewFromInt(1)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidays:       holidays,
		leaveLedger:    leaveLedger,
		fileService:    fileService,
		box:            box,
		opts:           opts,
		now:            time.Now,
	}
}

// ========== BATCHES ==========

// CreateBatch implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateBatch(ctx context.Context, req payroll.CreateBatchRequest) (payroll.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}

	existing, err := s.payrollRepo.GetActiveBatchByMonth(ctx, req.ParsedMonth)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if existing != nil {
		return payroll.BatchResponse{}, payroll.ErrBatchAlreadyExists
	}

	var (
		batch    payroll.Batch
		warnings []string
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.payrollRepo.CreateBatch(ctx, req.ParsedMonth)
		if err != nil {
			return err
		}
		warnings, err = s.compute(ctx, created)
		if err != nil {
			return err
		}
		batch, err = s.payrollRepo.GetBatch(ctx, created.ID)
		return err
	})
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	slog.Info("Payroll batch created", "batch_id", batch.ID, "month", batch.Month.Format("2006-01"), "entries", batch.EntryCount)

	resp := toBatchResponse(batch)
	resp.Warnings = warnings
	return resp, nil
}

// ComputeBatch implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeBatch(ctx context.Context, id string) (payroll.BatchResponse, error) {
	var (
		batch    payroll.Batch
		warnings []string
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.payrollRepo.GetBatchForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !locked.CanCompute() {
			return payroll.ErrBatchNotDraft
		}
		warnings, err = s.compute(ctx, locked)
		if err != nil {
			return err
		}
		batch, err = s.payrollRepo.GetBatch(ctx, id)
		return err
	})
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	slog.Info("Payroll batch computed", "batch_id", batch.ID, "entries", batch.EntryCount, "warnings", len(warnings))

	resp := toBatchResponse(batch)
	resp.Warnings = warnings
	return resp, nil
}

// employeeInput pairs an employee with the data loaded for pricing.
type employeeInput struct {
	input  EntryInput
	dayIDs []string
}

// compute replaces every entry of a draft batch. It must run inside a transaction.
// Reads and writes share the transaction connection and stay sequential; only the
// pricing itself runs on the worker pool.
func (s *PayrollServiceImpl) compute(ctx context.Context, batch payroll.Batch) ([]string, error) {
	if err := s.payrollRepo.DeleteEntries(ctx, batch.ID); err != nil {
		return nil, fmt.Errorf("failed to clear batch entries: %w", err)
	}

	lop, err := s.payrollRepo.GetOrCreateComponent(ctx, payroll.DeductionComponent{
		Name:        payroll.LOPComponentName,
		IsStatutory: false,
		IsRecurring: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load loss of pay component: %w", err)
	}

	from := calendar.FirstOfMonth(batch.Month)
	to := calendar.LastOfMonth(batch.Month)
	cal, err := s.holidays.ForRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load holiday calendar: %w", err)
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var (
		warnings []string
		inputs   []employeeInput
		lockIDs  []string
	)
	for _, emp := range employees {
		if !emp.PayrollEligible() {
			continue
		}
		if !emp.MonthlyGross().IsPositive() {
			slog.Warn("Employee skipped in payroll", "batch_id", batch.ID, "employee_id", emp.ID, "reason", payroll.ErrMissingSalary)
			warnings = append(warnings, fmt.Sprintf("%s: %s", emp.FullName, payroll.ErrMissingSalary))
			continue
		}

		days, err := s.attendanceRepo.ListForPayroll(ctx, emp.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load attendance of employee %s: %w", emp.ID, err)
		}
		coverage, err := s.leaveLedger.Coverage(ctx, emp.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load leave of employee %s: %w", emp.ID, err)
		}
		deductions, err := s.payrollRepo.ListEmployeeDeductions(ctx, emp.ID, true)
		if err != nil {
			return nil, fmt.Errorf("failed to load deductions of employee %s: %w", emp.ID, err)
		}

		in := employeeInput{
			input: EntryInput{
				Employee:     emp,
				Month:        batch.Month,
				Calendar:     cal,
				Days:         days,
				Leave:        coverage,
				Deductions:   deductions,
				LOPComponent: lop,
				OTMultiplier: s.opts.OTMultiplier,
			},
		}
		for _, d := range days {
			if !d.IsLocked {
				lockIDs = append(lockIDs, d.ID)
			}
		}
		inputs = append(inputs, in)
	}

	entries := make([]payroll.Entry, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i] = CalculateEntry(inputs[i].input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(lockIDs) > 0 {
		if err := s.attendanceRepo.Lock(ctx, lockIDs); err != nil {
			return nil, fmt.Errorf("failed to lock attendance: %w", err)
		}
	}

	for _, entry := range entries {
		entry.BatchID = batch.ID
		if _, err := s.payrollRepo.CreateEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to save entry of employee %s: %w", entry.EmployeeID, err)
		}
	}

	return warnings, nil
}

// FinalizeBatch implements payroll.PayrollService.
func (s *PayrollServiceImpl) FinalizeBatch(ctx context.Context, id string) (payroll.BatchResponse, error) {
	var batch payroll.Batch
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.payrollRepo.GetBatchForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !locked.CanFinalize() {
			return payroll.ErrBatchNotDraft
		}
		if err := s.payrollRepo.UpdateBatchStatus(ctx, id, payroll.BatchStatusFinalized); err != nil {
			return err
		}

		entries, err := s.payrollRepo.ListEntries(ctx, id)
		if err != nil {
			return err
		}
		bankFile, err := s.renderBankFile(locked, entries, s.now())
		if err != nil {
			return err
		}
		path, err := s.fileService.UploadBankFile(ctx, locked.Month, id, bankFile.Content)
		if err != nil {
			return err
		}
		if err := s.payrollRepo.SetExportPath(ctx, id, path); err != nil {
			return err
		}

		batch, err = s.payrollRepo.GetBatch(ctx, id)
		return err
	})
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	slog.Info("Payroll batch finalized", "batch_id", batch.ID, "month", batch.Month.Format("2006-01"), "total_net", batch.TotalNet.StringFixed(2))
	return toBatchResponse(batch), nil
}

// VoidBatch implements payroll.PayrollService.
func (s *PayrollServiceImpl) VoidBatch(ctx context.Context, id string) (payroll.BatchResponse, error) {
	var (
		batch    payroll.Batch
		unlocked int64
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.payrollRepo.GetBatchForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !locked.CanVoid() {
			return payroll.ErrBatchNotVoidable
		}
		if err := s.payrollRepo.UpdateBatchStatus(ctx, id, payroll.BatchStatusVoid); err != nil {
			return err
		}
		unlocked, err = s.releaseMonth(ctx, locked.Month)
		if err != nil {
			return err
		}

		batch, err = s.payrollRepo.GetBatch(ctx, id)
		return err
	})
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	slog.Info("Payroll batch voided", "batch_id", batch.ID, "unlocked_days", unlocked)
	return toBatchResponse(batch), nil
}

// DeleteBatch implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteBatch(ctx context.Context, id string) error {
	var exportPath *string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.payrollRepo.GetBatchForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !locked.CanDelete() {
			return payroll.ErrBatchNotDeletable
		}
		if err := s.payrollRepo.DeleteBatch(ctx, id); err != nil {
			return err
		}
		exportPath = locked.ExportPath

		if locked.Status == payroll.BatchStatusDraft {
			_, err = s.releaseMonth(ctx, locked.Month)
		}
		return err
	})
	if err != nil {
		return err
	}

	if exportPath != nil {
		if err := s.fileService.DeleteFile(ctx, *exportPath); err != nil {
			slog.Warn("Failed to delete bank file", "batch_id", id, "path", *exportPath, "error", err)
		}
	}

	slog.Info("Payroll batch deleted", "batch_id", id)
	return nil
}

// releaseMonth unlocks the month's attendance unless another non-void batch still owns it.
func (s *PayrollServiceImpl) releaseMonth(ctx context.Context, month time.Time) (int64, error) {
	other, err := s.payrollRepo.GetActiveBatchByMonth(ctx, month)
	if err != nil {
		return 0, err
	}
	if other != nil {
		return 0, nil
	}

	n, err := s.attendanceRepo.UnlockRange(ctx, calendar.FirstOfMonth(month), calendar.LastOfMonth(month))
	if err != nil {
		return 0, fmt.Errorf("failed to unlock attendance: %w", err)
	}
	return n, nil
}

// GetBatch implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetBatch(ctx context.Context, id string) (payroll.BatchDetailResponse, error) {
	batch, err := s.payrollRepo.GetBatch(ctx, id)
	if err != nil {
		return payroll.BatchDetailResponse{}, err
	}
	entries, err := s.payrollRepo.ListEntries(ctx, id)
	if err != nil {
		return payroll.BatchDetailResponse{}, err
	}

	resp := payroll.BatchDetailResponse{
		BatchResponse: toBatchResponse(batch),
		Entries:       make([]payroll.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, s.toEntryResponse(e))
	}
	return resp, nil
}

// ListBatches implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListBatches(ctx context.Context, filter payroll.BatchFilter) (payroll.ListBatchResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListBatchResponse{}, err
	}

	batches, total, err := s.payrollRepo.ListBatches(ctx, filter)
	if err != nil {
		return payroll.ListBatchResponse{}, err
	}

	data := make([]payroll.BatchResponse, 0, len(batches))
	for _, b := range batches {
		data = append(data, toBatchResponse(b))
	}
	return payroll.ListBatchResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ExportBankFile implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportBankFile(ctx context.Context, id string) (payroll.BankFile, error) {
	batch, err := s.payrollRepo.GetBatch(ctx, id)
	if err != nil {
		return payroll.BankFile{}, err
	}
	if batch.Status == payroll.BatchStatusVoid {
		return payroll.BankFile{}, payroll.ErrBatchVoid
	}

	// A finalized batch serves the file frozen at finalization.
	if batch.Status == payroll.BatchStatusFinalized && batch.ExportPath != nil {
		content, err := s.readStored(ctx, *batch.ExportPath)
		if err == nil {
			return payroll.BankFile{FileName: bankFileName(batch.Month), Content: content}, nil
		}
		if !errors.Is(err, storage.ErrFileNotFound) {
			return payroll.BankFile{}, err
		}
		slog.Warn("Stored bank file missing, rendering again", "batch_id", id, "path", *batch.ExportPath)
	}

	entries, err := s.payrollRepo.ListEntries(ctx, id)
	if err != nil {
		return payroll.BankFile{}, err
	}
	return s.renderBankFile(batch, entries, s.now())
}

func (s *PayrollServiceImpl) readStored(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.fileService.OpenFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank file %s: %w", path, err)
	}
	return content, nil
}

// ========== ENTRIES ==========

// GetEntry implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetEntry(ctx context.Context, id string) (payroll.EntryResponse, error) {
	entry, err := s.payrollRepo.GetEntry(ctx, id)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return s.toEntryResponse(entry), nil
}

// ListMyPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMyPayslips(ctx context.Context) ([]payroll.PayslipResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return nil, auth.ErrMissingEmployeeID
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return nil, auth.ErrMissingEmployeeID
	}

	payslips, err := s.payrollRepo.ListPayslips(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		resp = append(resp, payroll.PayslipResponse{
			Month:         p.Month.Format("2006-01"),
			EntryResponse: s.toEntryResponse(p.Entry),
		})
	}
	return resp, nil
}

// WaiveDeduction implements payroll.PayrollService.
func (s *PayrollServiceImpl) WaiveDeduction(ctx context.Context, req payroll.WaiveDeductionRequest) (payroll.EntryResponse, error) {
	var entry payroll.Entry
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		line, err := s.payrollRepo.GetDeductionLine(ctx, req.LineID)
		if err != nil {
			return err
		}
		entry, err = s.payrollRepo.GetEntry(ctx, line.EntryID)
		if err != nil {
			return err
		}
		batch, err := s.payrollRepo.GetBatchForUpdate(ctx, entry.BatchID)
		if err != nil {
			return err
		}
		if batch.Status != payroll.BatchStatusDraft {
			return payroll.ErrBatchNotDraft
		}

		if err := line.Waive(req.Waived); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdateDeductionLine(ctx, line); err != nil {
			return err
		}

		for i := range entry.Lines {
			if entry.Lines[i].ID == line.ID {
				entry.Lines[i] = line
			}
		}
		entry.Totalize()
		return s.payrollRepo.UpdateEntryTotals(ctx, entry)
	})
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	slog.Info("Deduction line updated", "entry_id", entry.ID, "line_id", req.LineID, "waived", req.Waived, "net_salary", entry.NetSalary.StringFixed(2))
	return s.toEntryResponse(entry), nil
}

// ========== DEDUCTION CATALOG ==========

// CreateComponent implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateComponent(ctx context.Context, req payroll.CreateComponentRequest) (payroll.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}

	recurring := true
	if req.IsRecurring != nil {
		recurring = *req.IsRecurring
	}

	created, err := s.payrollRepo.CreateComponent(ctx, payroll.DeductionComponent{
		Name:        req.Name,
		IsStatutory: req.IsStatutory,
		IsRecurring: recurring,
	})
	if err != nil {
		return payroll.ComponentResponse{}, err
	}
	return toComponentResponse(created), nil
}

// ListComponents implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListComponents(ctx context.Context) ([]payroll.ComponentResponse, error) {
	components, err := s.payrollRepo.ListComponents(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.ComponentResponse, 0, len(components))
	for _, c := range components {
		result = append(result, toComponentResponse(c))
	}
	return result, nil
}

// AssignDeduction implements payroll.PayrollService.
func (s *PayrollServiceImpl) AssignDeduction(ctx context.Context, req payroll.AssignDeductionRequest) (payroll.EmployeeDeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EmployeeDeductionResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.EmployeeDeductionResponse{}, err
	}
	component, err := s.payrollRepo.GetComponentByID(ctx, req.ComponentID)
	if err != nil {
		return payroll.EmployeeDeductionResponse{}, err
	}

	created, err := s.payrollRepo.AssignDeduction(ctx, payroll.EmployeeDeduction{
		EmployeeID:  req.EmployeeID,
		ComponentID: component.ID,
		Amount:      req.Amount,
		Percentage:  req.Percentage,
		IsActive:    true,
	})
	if err != nil {
		return payroll.EmployeeDeductionResponse{}, err
	}
	created.ComponentName = component.Name
	created.IsStatutory = component.IsStatutory
	created.IsRecurring = component.IsRecurring

	return toEmployeeDeductionResponse(created), nil
}

// ListEmployeeDeductions implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListEmployeeDeductions(ctx context.Context, employeeID string) ([]payroll.EmployeeDeductionResponse, error) {
	deductions, err := s.payrollRepo.ListEmployeeDeductions(ctx, employeeID, false)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.EmployeeDeductionResponse, 0, len(deductions))
	for _, d := range deductions {
		result = append(result, toEmployeeDeductionResponse(d))
	}
	return result, nil
}

// DeactivateDeduction implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeactivateDeduction(ctx context.Context, id string) error {
	if _, err := s.payrollRepo.GetEmployeeDeduction(ctx, id); err != nil {
		return err
	}
	return s.payrollRepo.DeactivateDeduction(ctx, id)
}

// ========== MAPPERS ==========

func toBatchResponse(b payroll.Batch) payroll.BatchResponse {
	var finalizedAt *string
	if b.FinalizedAt != nil {
		f := b.FinalizedAt.Format(time.RFC3339)
		finalizedAt = &f
	}

	return payroll.BatchResponse{
		ID:          b.ID,
		Month:       b.Month.Format("2006-01"),
		Status:      string(b.Status),
		EntryCount:  b.EntryCount,
		TotalNet:    b.TotalNet,
		ExportPath:  b.ExportPath,
		FinalizedAt: finalizedAt,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

func (s *PayrollServiceImpl) toEntryResponse(e payroll.Entry) payroll.EntryResponse {
	masked := ""
	if account, err := s.box.Open(e.BankAccountNumber); err == nil {
		masked = secret.Mask(account)
	} else if !errors.Is(err, secret.ErrMalformedSealed) {
		slog.Warn("Failed to open bank account", "entry_id", e.ID, "error", err)
	}

	lines := make([]payroll.DeductionLineResponse, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, payroll.DeductionLineResponse{
			ID:             l.ID,
			ComponentID:    l.ComponentID,
			ComponentName:  l.ComponentName,
			IsStatutory:    l.IsStatutory,
			Amount:         l.Amount,
			ApprovedAmount: l.ApprovedAmount,
			IsWaived:       l.IsWaived,
		})
	}

	return payroll.EntryResponse{
		ID:                 e.ID,
		BatchID:            e.BatchID,
		EmployeeID:         e.EmployeeID,
		EmployeeName:       e.EmployeeName,
		BasicSalary:        e.BasicSalary,
		Allowances:         e.Allowances,
		WorkingDays:        e.WorkingDays,
		RequiredWorkHours:  e.RequiredWorkHours,
		ActualWorkHours:    e.ActualWorkHours,
		ShortfallWorkHours: e.ShortfallWorkHours,
		HourlyRate:         e.HourlyRate,
		LOPDeduction:       e.LOPDeduction,
		ApprovedOTMinutes:  e.ApprovedOTMinutes,
		ApprovedOTHours:    e.ApprovedOTHours,
		OTPay:              e.OTPay,
		BasePay:            e.BasePay,
		GrossSalary:        e.GrossSalary,
		Deductions:         e.Deductions,
		NetSalary:          e.NetSalary,
		BankAccountMasked:  masked,
		IFSCCode:           e.IFSCCode,
		DeductionLines:     lines,
	}
}

func toComponentResponse(c payroll.DeductionComponent) payroll.ComponentResponse {
	return payroll.ComponentResponse{
		ID:          c.ID,
		Name:        c.Name,
		IsStatutory: c.IsStatutory,
		IsRecurring: c.IsRecurring,
	}
}

func toEmployeeDeductionResponse(d payroll.EmployeeDeduction) payroll.EmployeeDeductionResponse {
	return payroll.EmployeeDeductionResponse{
		ID:            d.ID,
		EmployeeID:    d.EmployeeID,
		ComponentID:   d.ComponentID,
		ComponentName: d.ComponentName,
		IsStatutory:   d.IsStatutory,
		Amount:        d.Amount,
		Percentage:    d.Percentage,
		IsActive:      d.IsActive,
	}
}
