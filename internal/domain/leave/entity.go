package leave

import (
	"time"
)

type LeaveType struct {
	ID        string
	Name      string
	IsPaid    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Status      RequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined from leave_types
	LeaveTypeName string
	IsPaid        bool
}

type DayKind int

const (
	NoLeave DayKind = iota
	UnpaidLeave
	PaidLeave
)

func (k DayKind) String() string {
	switch k {
	case PaidLeave:
		return "paid"
	case UnpaidLeave:
		return "unpaid"
	}
	return "none"
}

// Coverage maps a date (YYYY-MM-DD) to the kind of approved leave on it.
type Coverage map[string]DayKind

// BuildCoverage spreads approved requests over the days of [from, to]. When a paid and
// an unpaid request overlap, the day counts as paid.
func BuildCoverage(requests []LeaveRequest, from, to time.Time) Coverage {
	c := make(Coverage)
	for _, r := range requests {
		if r.Status != RequestStatusApproved {
			continue
		}
		kind := UnpaidLeave
		if r.IsPaid {
			kind = PaidLeave
		}

		start, end := r.StartDate, r.EndDate
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			if kind > c[key] {
				c[key] = kind
			}
		}
	}
	return c
}

func (c Coverage) On(date time.Time) DayKind {
	return c[date.Format("2006-01-02")]
}
