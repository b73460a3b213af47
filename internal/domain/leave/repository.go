package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository is read-only: requests are raised and approved by the leave
// workflow, payroll only consumes the approved ones.
type LeaveRequestRepository interface {
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
}
