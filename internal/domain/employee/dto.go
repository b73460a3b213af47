package employee

import (
	"regexp"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var ifscRegex = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

type CreateEmployeeRequest struct {
	EmployeeCode      string          `json:"employee_code"`
	FullName          string          `json:"full_name"`
	Username          string          `json:"username"`
	Email             string          `json:"email"`
	NationalID        *string         `json:"national_id,omitempty"`
	DateOfJoining     *string         `json:"date_of_joining,omitempty"`
	BasicSalary       decimal.Decimal `json:"basic_salary"`
	Allowance         decimal.Decimal `json:"allowance"`
	BankAccountNumber string          `json:"bank_account_number"`
	IFSCCode          string          `json:"ifsc_code"`
	Role              string          `json:"role"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.Allowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowance", Message: "must be non-negative"})
	}
	if r.BankAccountNumber != "" && !validator.IsNumeric(r.BankAccountNumber) {
		errs = append(errs, validator.ValidationError{Field: "bank_account_number", Message: "must contain digits only"})
	}
	if r.IFSCCode != "" && !ifscRegex.MatchString(strings.ToUpper(r.IFSCCode)) {
		errs = append(errs, validator.ValidationError{Field: "ifsc_code", Message: "must be a valid IFSC code"})
	}
	if r.Role != "" && !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be EMPLOYEE, HR_MANAGER, ADMIN or CEO"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBankDetailsRequest struct {
	ID                string `json:"-"`
	BankAccountNumber string `json:"bank_account_number"`
	IFSCCode          string `json:"ifsc_code"`
}

func (r *UpdateBankDetailsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsNumeric(r.BankAccountNumber) {
		errs = append(errs, validator.ValidationError{Field: "bank_account_number", Message: "must contain digits only"})
	}
	if !ifscRegex.MatchString(strings.ToUpper(r.IFSCCode)) {
		errs = append(errs, validator.ValidationError{Field: "ifsc_code", Message: "must be a valid IFSC code"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                string          `json:"id"`
	EmployeeCode      string          `json:"employee_code"`
	FullName          string          `json:"full_name"`
	Username          string          `json:"username"`
	Email             string          `json:"email"`
	DateOfJoining     *string         `json:"date_of_joining,omitempty"`
	BasicSalary       decimal.Decimal `json:"basic_salary"`
	Allowance         decimal.Decimal `json:"allowance"`
	BankAccountMasked string          `json:"bank_account_masked,omitempty"`
	IFSCCode          string          `json:"ifsc_code,omitempty"`
	Role              string          `json:"role"`
	IsActive          bool            `json:"is_active"`
}

type GratuityRow struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeCode  string          `json:"employee_code"`
	FullName      string          `json:"full_name"`
	DateOfJoining string          `json:"date_of_joining"`
	ServiceYears  decimal.Decimal `json:"service_years"`
	DailyBasic    decimal.Decimal `json:"daily_basic"`
	Amount        decimal.Decimal `json:"amount"`
}

type GratuityReportResponse struct {
	AsOf           string          `json:"as_of"`
	Rows           []GratuityRow   `json:"rows"`
	TotalLiability decimal.Decimal `json:"total_liability"`
	// Excluded lists employees without a date of joining.
	Excluded []string `json:"excluded,omitempty"`
}
