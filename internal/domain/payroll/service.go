package payroll

import (
	"context"
)

type PayrollService interface {
	// Batches
	CreateBatch(ctx context.Context, req CreateBatchRequest) (BatchResponse, error)
	ComputeBatch(ctx context.Context, id string) (BatchResponse, error)
	FinalizeBatch(ctx context.Context, id string) (BatchResponse, error)
	VoidBatch(ctx context.Context, id string) (BatchResponse, error)
	DeleteBatch(ctx context.Context, id string) error
	GetBatch(ctx context.Context, id string) (BatchDetailResponse, error)
	ListBatches(ctx context.Context, filter BatchFilter) (ListBatchResponse, error)
	ExportBankFile(ctx context.Context, id string) (BankFile, error)

	// Entries
	GetEntry(ctx context.Context, id string) (EntryResponse, error)
	WaiveDeduction(ctx context.Context, req WaiveDeductionRequest) (EntryResponse, error)
	// ListMyPayslips lists the finalized payslips of the employee in the request token.
	ListMyPayslips(ctx context.Context) ([]PayslipResponse, error)

	// Deduction catalog
	CreateComponent(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)
	ListComponents(ctx context.Context) ([]ComponentResponse, error)
	AssignDeduction(ctx context.Context, req AssignDeductionRequest) (EmployeeDeductionResponse, error)
	ListEmployeeDeductions(ctx context.Context, employeeID string) ([]EmployeeDeductionResponse, error)
	DeactivateDeduction(ctx context.Context, id string) error
}
