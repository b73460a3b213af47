package employee

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	EmployeeCode  string
	FullName      string
	FirstName     string
	LastName      string
	Username      string
	Email         string
	NationalID    *string
	DateOfJoining *time.Time
	BasicSalary   decimal.Decimal
	Allowance     decimal.Decimal
	// BankAccountNumber holds the sealed value; see pkg/secret.
	BankAccountNumber string
	IFSCCode          string
	Role              Role
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Role string

const (
	RoleEmployee  Role = "EMPLOYEE"
	RoleHRManager Role = "HR_MANAGER"
	RoleAdmin     Role = "ADMIN"
	RoleCEO       Role = "CEO"
)

var roleNames = []string{string(RoleEmployee), string(RoleHRManager), string(RoleAdmin), string(RoleCEO)}

func (r Role) IsValid() bool {
	return validator.IsInSlice(string(r), roleNames)
}

// PayrollEligible excludes inactive staff and the ADMIN/CEO roles, who are paid outside
// the monthly batch.
func (e Employee) PayrollEligible() bool {
	return e.IsActive && e.Role != RoleAdmin && e.Role != RoleCEO
}

// MonthlyGross is basic plus allowance.
func (e Employee) MonthlyGross() decimal.Decimal {
	return e.BasicSalary.Add(e.Allowance)
}
