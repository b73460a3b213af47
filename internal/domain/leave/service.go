package leave

import (
	"context"
	"time"
)

// LeaveLedger tells payroll which days of a range are covered by approved leave.
type LeaveLedger interface {
	Coverage(ctx context.Context, employeeID string, from, to time.Time) (Coverage, error)
}
