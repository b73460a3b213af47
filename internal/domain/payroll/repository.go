package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// Batches
	CreateBatch(ctx context.Context, month time.Time) (Batch, error)
	GetBatch(ctx context.Context, id string) (Batch, error)
	// GetBatchForUpdate row-locks the batch for the rest of the transaction.
	GetBatchForUpdate(ctx context.Context, id string) (Batch, error)
	// GetActiveBatchByMonth returns nil, nil when the month has no non-void batch.
	GetActiveBatchByMonth(ctx context.Context, month time.Time) (*Batch, error)
	ListBatches(ctx context.Context, filter BatchFilter) ([]Batch, int64, error)
	UpdateBatchStatus(ctx context.Context, id string, status BatchStatus) error
	SetExportPath(ctx context.Context, id string, path string) error
	DeleteBatch(ctx context.Context, id string) error

	// Entries
	DeleteEntries(ctx context.Context, batchID string) error
	// CreateEntry inserts the entry together with its deduction lines.
	CreateEntry(ctx context.Context, entry Entry) (Entry, error)
	GetEntry(ctx context.Context, id string) (Entry, error)
	ListEntries(ctx context.Context, batchID string) ([]Entry, error)
	UpdateEntryTotals(ctx context.Context, entry Entry) error
	// ListPayslips returns an employee's entries in finalized batches, newest month first.
	ListPayslips(ctx context.Context, employeeID string) ([]Payslip, error)

	// Deduction lines
	GetDeductionLine(ctx context.Context, id string) (DeductionLine, error)
	UpdateDeductionLine(ctx context.Context, line DeductionLine) error

	// Components
	CreateComponent(ctx context.Context, component DeductionComponent) (DeductionComponent, error)
	GetComponentByID(ctx context.Context, id string) (DeductionComponent, error)
	// GetOrCreateComponent returns the component with the given name, inserting it first
	// when missing.
	GetOrCreateComponent(ctx context.Context, component DeductionComponent) (DeductionComponent, error)
	ListComponents(ctx context.Context) ([]DeductionComponent, error)

	// Employee deductions
	AssignDeduction(ctx context.Context, deduction EmployeeDeduction) (EmployeeDeduction, error)
	GetEmployeeDeduction(ctx context.Context, id string) (EmployeeDeduction, error)
	ListEmployeeDeductions(ctx context.Context, employeeID string, activeOnly bool) ([]EmployeeDeduction, error)
	DeactivateDeduction(ctx context.Context, id string) error
}
