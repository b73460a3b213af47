package payroll

import "errors"

var (
	ErrBatchNotFound             = errors.New("payroll batch not found")
	ErrBatchAlreadyExists        = errors.New("a payroll batch already exists for this month")
	ErrBatchNotDraft             = errors.New("payroll batch is not in draft, cannot modify")
	ErrBatchNotVoidable          = errors.New("payroll batch is already void")
	ErrBatchNotDeletable         = errors.New("only draft or void payroll batches can be deleted")
	ErrBatchVoid                 = errors.New("payroll batch is void")
	ErrInvalidMonth              = errors.New("invalid payroll month")
	ErrEntryNotFound             = errors.New("payroll entry not found")
	ErrDeductionLineNotFound     = errors.New("deduction line not found")
	ErrStatutoryNotWaivable      = errors.New("statutory deductions cannot be waived")
	ErrComponentNotFound         = errors.New("deduction component not found")
	ErrComponentNameExists       = errors.New("deduction component name already exists")
	ErrEmployeeDeductionNotFound = errors.New("employee deduction not found")
	ErrMissingSalary             = errors.New("employee has no salary configured")
)
