package employee

import (
	"context"
	"time"
)

// EmployeeService covers the small slice of the employee directory payroll needs.
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateBankDetails(ctx context.Context, req UpdateBankDetailsRequest) (EmployeeResponse, error)

	// GratuityReport computes the accrued end-of-service liability as of the given day.
	GratuityReport(ctx context.Context, asOf time.Time) (GratuityReportResponse, error)
}
