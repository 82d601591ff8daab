package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "PENDING"
	LeaveRequestStatusApproved  LeaveRequestStatus = "APPROVED"
	LeaveRequestStatusRejected  LeaveRequestStatus = "REJECTED"
	LeaveRequestStatusCancelled LeaveRequestStatus = "CANCELLED"
)

// Terminal reports whether no further transition is permitted from s.
func (s LeaveRequestStatus) Terminal() bool {
	return s != LeaveRequestStatusPending
}

// ConsumesRange reports whether a request in status s blocks the date range
// for subsequent requests. Rejected and cancelled requests free their range.
func (s LeaveRequestStatus) ConsumesRange() bool {
	return s == LeaveRequestStatusPending || s == LeaveRequestStatusApproved
}

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string

	StartDate time.Time
	EndDate   time.Time

	// Days is the business-day count of [StartDate, EndDate], derived at
	// creation/modification time. Weekends and public holidays excluded.
	Days int

	Reason *string

	Status       LeaveRequestStatus
	ApprovedAt   *time.Time
	ApproverNote *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BalanceSnapshot is derived on demand from the employee's requests.
// Never persisted or cached; it must always reflect the latest committed state.
type BalanceSnapshot struct {
	EmployeeID string
	Allocation int
	Used       int
	Remaining  int
	Pending    int
}

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] share at least
// one day, inclusive on both ends.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Before(bStart) || bEnd.Before(aStart))
}
