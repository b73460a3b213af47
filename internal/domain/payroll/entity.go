package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// LOPComponentName is the deduction component that carries the loss-of-pay line.
const LOPComponentName = "Loss of Pay (Shortfall)"

// HoursPerDay and DaysPerMonth define the hourly rate: (basic + allowance) / 30 / 8.
const (
	HoursPerDay  = 8
	DaysPerMonth = 30
)

type BatchStatus string

const (
	BatchStatusDraft     BatchStatus = "DRAFT"
	BatchStatusFinalized BatchStatus = "FINALIZED"
	BatchStatusVoid      BatchStatus = "VOID"
)

func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusDraft, BatchStatusFinalized, BatchStatusVoid:
		return true
	}
	return false
}

// Batch is one payroll run for a calendar month.
type Batch struct {
	ID          string
	Month       time.Time
	Status      BatchStatus
	ExportPath  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FinalizedAt *time.Time

	// Aggregated
	EntryCount int
	TotalNet   decimal.Decimal
}

func (b Batch) CanCompute() bool {
	return b.Status == BatchStatusDraft
}

func (b Batch) CanFinalize() bool {
	return b.Status == BatchStatusDraft
}

func (b Batch) CanVoid() bool {
	return b.Status == BatchStatusDraft || b.Status == BatchStatusFinalized
}

func (b Batch) CanDelete() bool {
	return b.Status == BatchStatusDraft || b.Status == BatchStatusVoid
}

// Entry is the computed pay of one employee inside a batch. Bank details are a
// snapshot taken at compute time; the account number stays sealed.
type Entry struct {
	ID                 string
	BatchID            string
	EmployeeID         string
	EmployeeName       string
	BasicSalary        decimal.Decimal
	Allowances         decimal.Decimal
	WorkingDays        int
	RequiredWorkHours  decimal.Decimal
	ActualWorkHours    decimal.Decimal
	ShortfallWorkHours decimal.Decimal
	HourlyRate         decimal.Decimal
	LOPDeduction       decimal.Decimal
	ApprovedOTMinutes  int
	ApprovedOTHours    decimal.Decimal
	OTPay              decimal.Decimal
	BasePay            decimal.Decimal
	GrossSalary        decimal.Decimal
	Deductions         decimal.Decimal
	NetSalary          decimal.Decimal
	BankAccountNumber  string
	IFSCCode           string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Lines []DeductionLine
}

// Payslip is an employee's entry in a finalized batch.
type Payslip struct {
	Month time.Time
	Entry Entry
}

// Totalize recomputes Deductions and NetSalary from the approved amounts of Lines.
// Net pay never goes below zero.
func (e *Entry) Totalize() {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.ApprovedAmount)
	}
	e.Deductions = total.Round(2)

	net := e.GrossSalary.Sub(e.Deductions)
	if net.IsNegative() {
		net = decimal.Zero
	}
	e.NetSalary = net.Round(2)
}

type DeductionComponent struct {
	ID          string
	Name        string
	IsStatutory bool
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EmployeeDeduction assigns a component to an employee. A positive Percentage means a
// share of basic salary; otherwise Amount is taken as is.
type EmployeeDeduction struct {
	ID          string
	EmployeeID  string
	ComponentID string
	Amount      decimal.Decimal
	Percentage  decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined from deduction_components
	ComponentName string
	IsStatutory   bool
	IsRecurring   bool
}

func (d EmployeeDeduction) AmountFor(basic decimal.Decimal) decimal.Decimal {
	if d.Percentage.IsPositive() {
		return basic.Mul(d.Percentage).Div(decimal.NewFromInt(100)).Round(2)
	}
	return d.Amount.Round(2)
}

// DeductionLine is one deduction applied to an entry.
type DeductionLine struct {
	ID             string
	EntryID        string
	ComponentID    string
	ComponentName  string
	IsStatutory    bool
	Amount         decimal.Decimal
	ApprovedAmount decimal.Decimal
	IsWaived       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Waive sets the approved amount to zero, or restores it to the full amount.
func (l *DeductionLine) Waive(waived bool) error {
	if l.IsStatutory {
		return ErrStatutoryNotWaivable
	}
	l.IsWaived = waived
	if waived {
		l.ApprovedAmount = decimal.Zero
	} else {
		l.ApprovedAmount = l.Amount
	}
	return nil
}
