package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	sixty        = decimal.NewFromInt(60)
	hoursPerDay  = decimal.NewFromInt(payroll.HoursPerDay)
	daysPerMonth = decimal.NewFromInt(payroll.DaysPerMonth)
)

// EntryInput is everything needed to price one employee for one month.
type EntryInput struct {
	Employee     employee.Employee
	Month        time.Time
	Calendar     *calendar.Calendar
	Days         []attendance.AttendanceDay
	Leave        leave.Coverage
	Deductions   []payroll.EmployeeDeduction
	LOPComponent payroll.DeductionComponent
	OTMultiplier decimal.Decimal
}

// CalculateEntry prices one employee. Base pay is the full monthly salary; time not
// worked is charged through a separate loss-of-pay line.
func CalculateEntry(in EntryInput) payroll.Entry {
	emp := in.Employee
	gross := emp.MonthlyGross()
	hourlyRate := gross.Div(daysPerMonth).Div(hoursPerDay)

	workingDays := in.Calendar.WorkingDays(in.Month)
	required := decimal.NewFromInt(int64(workingDays)).Mul(hoursPerDay)

	workedMinutes, otMinutes := creditedMinutes(in)
	actual := decimal.NewFromInt(int64(workedMinutes)).Div(sixty)
	otHours := decimal.NewFromInt(int64(otMinutes)).Div(sixty)

	shortfall := decimal.Zero
	if actual.LessThan(required) {
		shortfall = required.Sub(actual)
	}
	lop := shortfall.Mul(hourlyRate).Round(2)

	multiplier := in.OTMultiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}
	otPay := otHours.Mul(hourlyRate).Mul(multiplier).Round(2)

	entry := payroll.Entry{
		EmployeeID:         emp.ID,
		EmployeeName:       emp.FullName,
		BasicSalary:        emp.BasicSalary.Round(2),
		Allowances:         emp.Allowance.Round(2),
		WorkingDays:        workingDays,
		RequiredWorkHours:  required.Round(2),
		ActualWorkHours:    actual.Round(2),
		ShortfallWorkHours: shortfall.Round(2),
		HourlyRate:         hourlyRate.Round(2),
		LOPDeduction:       lop,
		ApprovedOTMinutes:  otMinutes,
		ApprovedOTHours:    otHours.Round(2),
		OTPay:              otPay,
		BasePay:            gross.Round(2),
		GrossSalary:        gross.Add(otPay).Round(2),
		BankAccountNumber:  emp.BankAccountNumber,
		IFSCCode:           emp.IFSCCode,
	}

	for _, d := range in.Deductions {
		if !d.IsActive {
			continue
		}
		amount := d.AmountFor(emp.BasicSalary)
		entry.Lines = append(entry.Lines, payroll.DeductionLine{
			ComponentID:    d.ComponentID,
			ComponentName:  d.ComponentName,
			IsStatutory:    d.IsStatutory,
			Amount:         amount,
			ApprovedAmount: amount,
		})
	}
	if lop.IsPositive() {
		entry.Lines = append(entry.Lines, payroll.DeductionLine{
			ComponentID:    in.LOPComponent.ID,
			ComponentName:  in.LOPComponent.Name,
			IsStatutory:    false,
			Amount:         lop,
			ApprovedAmount: lop,
		})
	}

	entry.Totalize()
	return entry
}

// creditedMinutes sums worked and approved overtime minutes for the month. Approved paid
// leave on a working day tops that day up to a full day; approved unpaid leave zeroes it.
func creditedMinutes(in EntryInput) (worked, overtime int) {
	byDate := make(map[string]attendance.AttendanceDay, len(in.Days))
	for _, d := range in.Days {
		byDate[d.Date.Format("2006-01-02")] = d
		overtime += d.ApprovedOvertimeMinutes
	}

	first := calendar.FirstOfMonth(in.Month)
	last := calendar.LastOfMonth(in.Month)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		minutes := byDate[day.Format("2006-01-02")].TotalWorkMinutes
		if !in.Calendar.IsHoliday(day) {
			switch in.Leave.On(day) {
			case leave.PaidLeave:
				minutes = max(minutes, attendance.FullDayMinutes)
			case leave.UnpaidLeave:
				minutes = 0
			}
		}
		worked += minutes
	}
	return worked, overtime
}
