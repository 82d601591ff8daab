package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/domain/employee"
	"github.com/leaveease/leaveease-backend-go/internal/domain/leave"
)

// ValidationInput is a proposed leave request, new or modified.
type ValidationInput struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time

	// ExcludeRequestID leaves the request being modified out of the overlap
	// check. Nil for a fresh application.
	ExcludeRequestID *string
}

// RequestValidator enforces every admissibility rule for apply and modify.
// It is read-only: it never mutates state, so the same instance serves both
// flows. On success it returns the computed business-day count; on failure it
// returns leave.Violations carrying every applicable rule failure.
type RequestValidator struct {
	employeeRepo     employee.EmployeeRepository
	leaveRequestRepo leave.LeaveRequestRepository
	calculator       *WorkdayCalculator
	ledger           *BalanceLedger

	// now is injectable for tests; "today" comparisons are date-only.
	now func() time.Time
}

func NewRequestValidator(
	employeeRepo employee.EmployeeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	calculator *WorkdayCalculator,
	ledger *BalanceLedger,
) *RequestValidator {
	return &RequestValidator{
		employeeRepo:     employeeRepo,
		leaveRequestRepo: leaveRequestRepo,
		calculator:       calculator,
		ledger:           ledger,
		now:              time.Now,
	}
}

// Validate collects all applicable violations rather than failing on the
// first. Employee existence is a precondition for the joining-date, overlap
// and balance rules: when the employee is missing only the date-order rules
// are evaluated alongside, and the holiday source is never consulted.
func (v *RequestValidator) Validate(ctx context.Context, in ValidationInput) (int, error) {
	var violations leave.Violations
	today := truncateToDate(v.now())

	emp, err := v.employeeRepo.GetByID(ctx, in.EmployeeID)
	employeeExists := true
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return 0, fmt.Errorf("failed to get employee: %w", err)
		}
		employeeExists = false
		violations = append(violations, leave.Violation{
			Code:    leave.ViolationEmployeeNotFound,
			Field:   "employee_id",
			Message: "employee not found",
		})
	}

	if in.StartDate.Before(today) {
		violations = append(violations, leave.Violation{
			Code:    leave.ViolationPastStartDate,
			Field:   "start_date",
			Message: "start date cannot be in the past",
		})
	}
	if in.EndDate.Before(today) {
		violations = append(violations, leave.Violation{
			Code:    leave.ViolationPastEndDate,
			Field:   "end_date",
			Message: "end date cannot be in the past",
		})
	}
	if in.EndDate.Before(in.StartDate) {
		violations = append(violations, leave.Violation{
			Code:    leave.ViolationInvertedRange,
			Field:   "date_range",
			Message: "end date cannot be before start date",
		})
	}

	if !employeeExists {
		return 0, violations
	}

	if in.StartDate.Before(truncateToDate(emp.JoiningDate)) {
		violations = append(violations, leave.Violation{
			Code:    leave.ViolationPreJoiningLeave,
			Field:   "start_date",
			Message: "cannot apply leave before joining date",
		})
	}

	hasOverlap, err := v.leaveRequestRepo.HasOverlapping(ctx, emp.ID, in.StartDate, in.EndDate, in.ExcludeRequestID)
	if err != nil {
		return 0, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if hasOverlap {
		violations = append(violations, leave.Violation{
			Code:    leave.ViolationOverlappingRequest,
			Field:   "date_range",
			Message: "overlapping leave request exists",
		})
	}

	days, err := v.calculator.BusinessDays(ctx, in.StartDate, in.EndDate)
	if err != nil {
		return 0, err
	}
	if days < 1 {
		violations = append(violations, leave.Violation{
			Code:    leave.ViolationNoWorkingDays,
			Field:   "date_range",
			Message: "no working days in selected range",
		})
	}

	snapshot, err := v.ledger.Snapshot(ctx, emp)
	if err != nil {
		return 0, err
	}
	if days > snapshot.Remaining {
		violations = append(violations, leave.Violation{
			Code:    leave.ViolationInsufficientBalance,
			Field:   "balance",
			Message: fmt.Sprintf("not enough balance, remaining: %d", snapshot.Remaining),
		})
	}

	if len(violations) > 0 {
		return 0, violations
	}

	return days, nil
}

// truncateToDate normalizes to a UTC midnight so comparisons line up with
// request dates, which parse from "YYYY-MM-DD" as UTC.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
