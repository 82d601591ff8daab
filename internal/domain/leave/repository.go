package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	GetByEmployeeAndStatus(ctx context.Context, employeeID string, status LeaveRequestStatus) ([]LeaveRequest, error)
	Update(ctx context.Context, update UpdateLeaveRequestParams) error

	// HasOverlapping reports whether any request of the employee whose status
	// still consumes its range overlaps [start, end] inclusive. excludeID, when
	// non-nil, leaves the request being modified out of the check.
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
}

// UpdateLeaveRequestParams carries the mutable fields of a leave request.
// Nil pointers leave the corresponding column untouched.
type UpdateLeaveRequestParams struct {
	ID           string
	StartDate    *time.Time
	EndDate      *time.Time
	Days         *int
	Reason       *string
	Status       *LeaveRequestStatus
	ApprovedAt   *time.Time
	ApproverNote *string
}
