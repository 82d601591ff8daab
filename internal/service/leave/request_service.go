package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/domain/employee"
	"github.com/leaveease/leaveease-backend-go/internal/domain/leave"
)

// RequestService owns the leave-request state machine:
//
//	apply            -> PENDING
//	PENDING approve  -> APPROVED  (terminal, balance re-checked at commit)
//	PENDING reject   -> REJECTED  (terminal, approver note required)
//	PENDING cancel   -> CANCELLED (terminal)
//	PENDING modify   -> PENDING   (fields replaced, days recomputed)
//
// Every mutating operation runs validate-read-then-write as one transaction,
// serialized per employee, so concurrent calls cannot jointly over-allocate
// the annual balance or double-book a date range.
type RequestService struct {
	tx               Transactor
	employeeRepo     employee.EmployeeRepository
	leaveRequestRepo leave.LeaveRequestRepository
	validator        *RequestValidator
	ledger           *BalanceLedger
}

func NewRequestService(
	tx Transactor,
	employeeRepo employee.EmployeeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	validator *RequestValidator,
	ledger *BalanceLedger,
) *RequestService {
	return &RequestService{
		tx:               tx,
		employeeRepo:     employeeRepo,
		leaveRequestRepo: leaveRequestRepo,
		validator:        validator,
		ledger:           ledger,
	}
}

// Apply validates the payload against every admissibility rule and persists a
// PENDING request with the computed business-day count. On rule failures the
// returned error is a leave.Violations and nothing is written.
func (s *RequestService) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequest, error) {
	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var created leave.LeaveRequest
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.tx.LockEmployee(ctx, req.EmployeeID); err != nil {
			return err
		}

		days, err := s.validator.Validate(ctx, ValidationInput{
			EmployeeID: req.EmployeeID,
			StartDate:  startDate,
			EndDate:    endDate,
		})
		if err != nil {
			return err
		}

		created, err = s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
			EmployeeID: req.EmployeeID,
			StartDate:  startDate,
			EndDate:    endDate,
			Days:       days,
			Reason:     req.Reason,
			Status:     leave.LeaveRequestStatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// Act approves or rejects a PENDING request. Approval re-runs the balance
// check inside the transaction: two PENDING requests may each have been
// validatable against the same remaining balance, but only sufficient balance
// at commit time lets one through.
func (s *RequestService) Act(ctx context.Context, req leave.ActOnLeaveRequest) (leave.LeaveRequest, error) {
	var acted leave.LeaveRequest
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		request, err := s.leaveRequestRepo.GetByID(ctx, req.RequestID)
		if err != nil {
			return err
		}

		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrInvalidTransition
		}

		if err := s.tx.LockEmployee(ctx, request.EmployeeID); err != nil {
			return err
		}

		// Re-read under the lock; a transition that landed while waiting is a
		// lost race, not an invalid call.
		request, err = s.leaveRequestRepo.GetByID(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrConcurrentModification
		}

		switch req.NormalizedAction() {
		case leave.LeaveActionApprove:
			acted, err = s.approve(ctx, request)
		case leave.LeaveActionReject:
			acted, err = s.reject(ctx, request, req.ApproverNote)
		default:
			return leave.ErrInvalidAction
		}
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return acted, nil
}

func (s *RequestService) approve(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}

	snapshot, err := s.ledger.Snapshot(ctx, emp)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Days > snapshot.Remaining {
		return leave.LeaveRequest{}, leave.Violations{{
			Code:    leave.ViolationInsufficientBalance,
			Field:   "balance",
			Message: fmt.Sprintf("not enough balance to approve, remaining: %d", snapshot.Remaining),
		}}
	}

	approvedAt := time.Now()
	status := leave.LeaveRequestStatusApproved
	err = s.leaveRequestRepo.Update(ctx, leave.UpdateLeaveRequestParams{
		ID:         request.ID,
		Status:     &status,
		ApprovedAt: &approvedAt,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	request.Status = status
	request.ApprovedAt = &approvedAt
	return request, nil
}

func (s *RequestService) reject(ctx context.Context, request leave.LeaveRequest, note *string) (leave.LeaveRequest, error) {
	if note == nil || *note == "" {
		return leave.LeaveRequest{}, leave.ErrMissingApproverNote
	}

	status := leave.LeaveRequestStatusRejected
	err := s.leaveRequestRepo.Update(ctx, leave.UpdateLeaveRequestParams{
		ID:           request.ID,
		Status:       &status,
		ApproverNote: note,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	request.Status = status
	request.ApproverNote = note
	return request, nil
}

// Cancel moves a PENDING request owned by the employee to CANCELLED.
func (s *RequestService) Cancel(ctx context.Context, req leave.CancelLeaveRequest) error {
	return s.tx.InTransaction(ctx, func(ctx context.Context) error {
		request, err := s.getOwned(ctx, req.RequestID, req.EmployeeID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrInvalidTransition
		}

		status := leave.LeaveRequestStatusCancelled
		if err := s.leaveRequestRepo.Update(ctx, leave.UpdateLeaveRequestParams{
			ID:     request.ID,
			Status: &status,
		}); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
}

// Modify replaces the dates and reason of a PENDING request owned by the
// employee, re-running the full validator against the new range with the
// request itself excluded from the overlap check. The stored record is
// untouched when any rule fails.
func (s *RequestService) Modify(ctx context.Context, req leave.ModifyLeaveRequest) (leave.LeaveRequest, error) {
	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var modified leave.LeaveRequest
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		request, err := s.getOwned(ctx, req.RequestID, req.EmployeeID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrInvalidTransition
		}

		days, err := s.validator.Validate(ctx, ValidationInput{
			EmployeeID:       req.EmployeeID,
			StartDate:        startDate,
			EndDate:          endDate,
			ExcludeRequestID: &request.ID,
		})
		if err != nil {
			return err
		}

		if err := s.leaveRequestRepo.Update(ctx, leave.UpdateLeaveRequestParams{
			ID:        request.ID,
			StartDate: &startDate,
			EndDate:   &endDate,
			Days:      &days,
			Reason:    req.Reason,
		}); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		request.StartDate = startDate
		request.EndDate = endDate
		request.Days = days
		if req.Reason != nil {
			request.Reason = req.Reason
		}
		modified = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return modified, nil
}

// Balance returns the employee's derived balance snapshot.
func (s *RequestService) Balance(ctx context.Context, employeeID string) (leave.BalanceSnapshot, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.BalanceSnapshot{}, err
	}
	return s.ledger.Snapshot(ctx, emp)
}

// ListByEmployee returns the employee's requests, newest first, optionally
// filtered to a single status.
func (s *RequestService) ListByEmployee(ctx context.Context, employeeID string, status *leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	if status != nil {
		return s.leaveRequestRepo.GetByEmployeeAndStatus(ctx, employeeID, *status)
	}
	return s.leaveRequestRepo.GetByEmployeeID(ctx, employeeID)
}

// getOwned fetches the request under the employee's lock and enforces
// ownership. The pre-lock fetch discovers which employee to lock on; if the
// request stops being pending while waiting for the lock, the caller lost a
// race rather than made an invalid call.
func (s *RequestService) getOwned(ctx context.Context, requestID, employeeID string) (leave.LeaveRequest, error) {
	request, err := s.leaveRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveRequest{}, leave.ErrOwnershipMismatch
	}
	wasPending := request.Status == leave.LeaveRequestStatusPending

	if err := s.tx.LockEmployee(ctx, request.EmployeeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	// Re-read under the lock.
	request, err = s.leaveRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if wasPending && request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrConcurrentModification
	}
	return request, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	return startDate, endDate, nil
}
