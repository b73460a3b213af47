package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
)

// LedgerService exposes approved leave to payroll as per-day coverage.
type LedgerService struct {
	leave.LeaveRequestRepository
}

func NewLedgerService(leaveRequestRepository leave.LeaveRequestRepository) *LedgerService {
	return &LedgerService{
		LeaveRequestRepository: leaveRequestRepository,
	}
}

// Coverage implements leave.LeaveLedger.
func (s *LedgerService) Coverage(ctx context.Context, employeeID string, from, to time.Time) (leave.Coverage, error) {
	requests, err := s.LeaveRequestRepository.ListApprovedOverlapping(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	return leave.BuildCoverage(requests, from, to), nil
}
