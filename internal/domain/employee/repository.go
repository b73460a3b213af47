package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	UpdateBankDetails(ctx context.Context, id string, sealedAccount string, ifsc string) error
	// ListActive returns every active employee ordered by full name.
	ListActive(ctx context.Context) ([]Employee, error)
}
