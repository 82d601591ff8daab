package leave

import (
	"context"
	"fmt"

	"github.com/leaveease/leaveease-backend-go/internal/domain/employee"
	"github.com/leaveease/leaveease-backend-go/internal/domain/leave"
)

// BalanceLedger derives an employee's consumed and remaining allocation from
// the stored day-counts of their leave requests. Snapshots are recomputed on
// every call; caching one across requests would go stale under concurrent
// approvals.
type BalanceLedger struct {
	leaveRequestRepo leave.LeaveRequestRepository
}

func NewBalanceLedger(leaveRequestRepo leave.LeaveRequestRepository) *BalanceLedger {
	return &BalanceLedger{leaveRequestRepo: leaveRequestRepo}
}

func (l *BalanceLedger) Snapshot(ctx context.Context, emp employee.Employee) (leave.BalanceSnapshot, error) {
	requests, err := l.leaveRequestRepo.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return leave.BalanceSnapshot{}, fmt.Errorf("failed to load leave requests: %w", err)
	}

	used, pending := 0, 0
	for _, lr := range requests {
		switch lr.Status {
		case leave.LeaveRequestStatusApproved:
			used += lr.Days
		case leave.LeaveRequestStatusPending:
			pending += lr.Days
		}
	}

	return leave.BalanceSnapshot{
		EmployeeID: emp.ID,
		Allocation: emp.AnnualAllocation,
		Used:       used,
		Remaining:  emp.AnnualAllocation - used,
		Pending:    pending,
	}, nil
}
