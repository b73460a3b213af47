package attendance

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// ========================================
// IMPORT
// ========================================

type ImportReport struct {
	ImportID       string   `json:"import_id"`
	FileName       string   `json:"file_name"`
	StoredPath     string   `json:"stored_path,omitempty"`
	RecordsCreated int      `json:"records_created"`
	SkippedRows    int      `json:"skipped_rows"`
	LockedSkipped  int      `json:"locked_skipped"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	MinDate        *string  `json:"min_date,omitempty"`
	MaxDate        *string  `json:"max_date,omitempty"`
}

// CSVRow is one line of the simple import format.
type CSVRow struct {
	EmployeeEmail string `csv:"EmployeeEmail"`
	Date          string `csv:"Date"`
	InTime        string `csv:"InTime"`
	OutTime       string `csv:"OutTime"`
}

// ========================================
// MANUAL ENTRY / OVERTIME
// ========================================

type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`

	ParsedDate     time.Time    `json:"-"`
	ParsedCheckIn  *punch.Clock `json:"-"`
	ParsedCheckOut *punch.Clock `json:"-"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	r.ParsedDate = date

	if r.Status == "" {
		r.Status = string(StatusPresent)
	}
	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a known attendance status"})
	}

	if r.CheckIn != nil {
		c, ok := punch.ParseClock(*r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be HH:MM"})
		}
		r.ParsedCheckIn = &c
	}
	if r.CheckOut != nil {
		c, ok := punch.ParseClock(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be HH:MM"})
		}
		r.ParsedCheckOut = &c
	}
	if (r.CheckIn == nil) != (r.CheckOut == nil) {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_in and check_out must be given together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveOvertimeRequest struct {
	ID      string `json:"-"`
	Minutes int    `json:"minutes"`
}

func (r *ApproveOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Minutes < 0 || r.Minutes > 24*60 {
		errs = append(errs, validator.ValidationError{Field: "minutes", Message: "must be between 0 and 1440"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// PURGE
// ========================================

type PurgeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`

	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

func (r *PurgeRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be YYYY-MM-DD"})
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be YYYY-MM-DD"})
	}
	if okFrom && okTo && from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: ErrInvalidDateRange.Error()})
	}
	r.FromDate, r.ToDate = from, to

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// ========================================
// QUERY
// ========================================

type AttendanceFilter struct {
	Month      *string `json:"month,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil {
		month, ok := validator.IsValidMonth(*f.Month)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be YYYY-MM"})
		} else {
			end := month.AddDate(0, 1, -1)
			f.From, f.To = &month, &end
		}
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a known attendance status"})
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 31
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MyAttendanceFilter lists the caller's own days. Without a range the service
// shows the current month.
type MyAttendanceFilter struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			f.From = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			f.To = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 31
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	Time      string `json:"time"`
	Direction string `json:"direction"`
}

type SessionResponse struct {
	In      string `json:"in"`
	Out     string `json:"out"`
	Minutes int    `json:"minutes"`
}

type AttendanceDayResponse struct {
	ID                      string            `json:"id"`
	EmployeeID              string            `json:"employee_id"`
	EmployeeName            *string           `json:"employee_name,omitempty"`
	Date                    string            `json:"date"`
	Status                  string            `json:"status"`
	CheckIn                 *string           `json:"check_in,omitempty"`
	CheckOut                *string           `json:"check_out,omitempty"`
	TotalWorkMinutes        int               `json:"total_work_minutes"`
	ShortfallMinutes        int               `json:"shortfall_minutes"`
	IsCompliant             bool              `json:"is_compliant"`
	ApprovedOvertimeMinutes int               `json:"approved_overtime_minutes"`
	IsLocked                bool              `json:"is_locked"`
	EntryType               string            `json:"entry_type"`
	Remarks                 *string           `json:"remarks,omitempty"`
	Punches                 []PunchResponse   `json:"punches,omitempty"`
	Sessions                []SessionResponse `json:"sessions,omitempty"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceDayResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}
