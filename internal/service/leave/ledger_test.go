package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	requests []leave.LeaveRequest
	err      error
}

func (r *fakeRequestRepo) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Status == leave.RequestStatusApproved &&
			!req.EndDate.Before(from) && !req.StartDate.After(to) {
			out = append(out, req)
		}
	}
	return out, nil
}

func date(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLedgerService_Coverage(t *testing.T) {
	repo := &fakeRequestRepo{requests: []leave.LeaveRequest{
		{ID: "r1", EmployeeID: "ana", StartDate: date(time.January, 30), EndDate: date(time.February, 3), Status: leave.RequestStatusApproved, IsPaid: true},
		{ID: "r2", EmployeeID: "ana", StartDate: date(time.February, 10), EndDate: date(time.February, 10), Status: leave.RequestStatusApproved},
		{ID: "r3", EmployeeID: "ana", StartDate: date(time.February, 12), EndDate: date(time.February, 12), Status: leave.RequestStatusPending, IsPaid: true},
		{ID: "r4", EmployeeID: "budi", StartDate: date(time.February, 4), EndDate: date(time.February, 4), Status: leave.RequestStatusApproved, IsPaid: true},
	}}
	svc := NewLedgerService(repo)

	cov, err := svc.Coverage(context.Background(), "ana", date(time.February, 1), date(time.February, 28))
	require.NoError(t, err)

	assert.Equal(t, leave.PaidLeave, cov.On(date(time.February, 1)))
	assert.Equal(t, leave.PaidLeave, cov.On(date(time.February, 3)))
	assert.Equal(t, leave.NoLeave, cov.On(date(time.January, 31)), "clipped to the range")
	assert.Equal(t, leave.UnpaidLeave, cov.On(date(time.February, 10)))
	assert.Equal(t, leave.NoLeave, cov.On(date(time.February, 12)))
	assert.Equal(t, leave.NoLeave, cov.On(date(time.February, 4)))
}

func TestLedgerService_RepositoryError(t *testing.T) {
	svc := NewLedgerService(&fakeRequestRepo{err: errors.New("boom")})

	_, err := svc.Coverage(context.Background(), "ana", date(time.February, 1), date(time.February, 28))
	assert.ErrorContains(t, err, "boom")
}
