package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== BATCH DTOs ==========

type CreateBatchRequest struct {
	Month string `json:"month"` // YYYY-MM

	ParsedMonth time.Time `json:"-"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	month, ok := validator.IsValidMonth(r.Month)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be YYYY-MM"})
	}
	r.ParsedMonth = month

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchFilter struct {
	Status *string `json:"status,omitempty"`
	Year   *int    `json:"year,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *BatchFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !BatchStatus(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be DRAFT, FINALIZED or VOID"})
	}
	if f.Year != nil && (*f.Year < 2000 || *f.Year > 9999) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 12
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchResponse struct {
	ID          string          `json:"id"`
	Month       string          `json:"month"`
	Status      string          `json:"status"`
	EntryCount  int             `json:"entry_count"`
	TotalNet    decimal.Decimal `json:"total_net"`
	ExportPath  *string         `json:"export_path,omitempty"`
	FinalizedAt *string         `json:"finalized_at,omitempty"`
	CreatedAt   string          `json:"created_at"`
	Warnings    []string        `json:"warnings,omitempty"`
}

type BatchDetailResponse struct {
	BatchResponse
	Entries []EntryResponse `json:"entries"`
}

type ListBatchResponse struct {
	Data       []BatchResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

// BankFile is a rendered bank transfer CSV.
type BankFile struct {
	FileName string
	Content  []byte
}

// BankTransferRow is one line of the bank transfer file.
type BankTransferRow struct {
	EmployeeName    string `csv:"Employee Name"`
	AccountNumber   string `csv:"Account Number"`
	IFSCCode        string `csv:"IFSC Code"`
	NetSalary       string `csv:"Net Salary"`
	TransactionDate string `csv:"Transaction Date"`
}

// ========== ENTRY DTOs ==========

type DeductionLineResponse struct {
	ID             string          `json:"id"`
	ComponentID    string          `json:"component_id"`
	ComponentName  string          `json:"component_name"`
	IsStatutory    bool            `json:"is_statutory"`
	Amount         decimal.Decimal `json:"amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	IsWaived       bool            `json:"is_waived"`
}

type EntryResponse struct {
	ID                 string                  `json:"id"`
	BatchID            string                  `json:"batch_id"`
	EmployeeID         string                  `json:"employee_id"`
	EmployeeName       string                  `json:"employee_name"`
	BasicSalary        decimal.Decimal         `json:"basic_salary"`
	Allowances         decimal.Decimal         `json:"allowances"`
	WorkingDays        int                     `json:"working_days"`
	RequiredWorkHours  decimal.Decimal         `json:"required_work_hours"`
	ActualWorkHours    decimal.Decimal         `json:"actual_work_hours"`
	ShortfallWorkHours decimal.Decimal         `json:"shortfall_work_hours"`
	HourlyRate         decimal.Decimal         `json:"hourly_rate"`
	LOPDeduction       decimal.Decimal         `json:"lop_deduction"`
	ApprovedOTMinutes  int                     `json:"approved_ot_minutes"`
	ApprovedOTHours    decimal.Decimal         `json:"approved_ot_hours"`
	OTPay              decimal.Decimal         `json:"ot_pay"`
	BasePay            decimal.Decimal         `json:"base_pay"`
	GrossSalary        decimal.Decimal         `json:"gross_salary"`
	Deductions         decimal.Decimal         `json:"deductions"`
	NetSalary          decimal.Decimal         `json:"net_salary"`
	BankAccountMasked  string                  `json:"bank_account_masked,omitempty"`
	IFSCCode           string                  `json:"ifsc_code,omitempty"`
	DeductionLines     []DeductionLineResponse `json:"deduction_lines"`
}

type PayslipResponse struct {
	Month string `json:"month"`
	EntryResponse
}

type WaiveDeductionRequest struct {
	LineID string `json:"-"`
	Waived bool   `json:"waived"`
}

// ========== DEDUCTION CATALOG DTOs ==========

type CreateComponentRequest struct {
	Name        string `json:"name"`
	IsStatutory bool   `json:"is_statutory"`
	IsRecurring *bool  `json:"is_recurring,omitempty"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must be at most 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsStatutory bool   `json:"is_statutory"`
	IsRecurring bool   `json:"is_recurring"`
}

type AssignDeductionRequest struct {
	EmployeeID  string          `json:"-"`
	ComponentID string          `json:"component_id"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

func (r *AssignDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ComponentID) {
		errs = append(errs, validator.ValidationError{Field: "component_id", Message: "must be a valid id"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if r.Percentage.IsNegative() || r.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, validator.ValidationError{Field: "percentage", Message: "must be between 0 and 100"})
	}
	if r.Amount.IsZero() && r.Percentage.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount or percentage is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeDeductionResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	ComponentID   string          `json:"component_id"`
	ComponentName string          `json:"component_name"`
	IsStatutory   bool            `json:"is_statutory"`
	Amount        decimal.Decimal `json:"amount"`
	Percentage    decimal.Decimal `json:"percentage"`
	IsActive      bool            `json:"is_active"`
}
