package leave

import (
	"strings"
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if r.Reason != nil && len(*r.Reason) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveAction string

const (
	LeaveActionApprove LeaveAction = "APPROVE"
	LeaveActionReject  LeaveAction = "REJECT"
)

type ActOnLeaveRequest struct {
	RequestID    string  `json:"request_id"`
	Action       string  `json:"action"`
	ApproverNote *string `json:"approver_note,omitempty"`
}

func (r *ActOnLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	action := LeaveAction(strings.ToUpper(r.Action))
	if action != LeaveActionApprove && action != LeaveActionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be APPROVE or REJECT",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// NormalizedAction returns the action uppercased. Only meaningful after Validate.
func (r *ActOnLeaveRequest) NormalizedAction() LeaveAction {
	return LeaveAction(strings.ToUpper(r.Action))
}

type ModifyLeaveRequest struct {
	RequestID  string  `json:"request_id"`
	EmployeeID string  `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *ModifyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if r.Reason != nil && len(*r.Reason) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CancelLeaveRequest struct {
	RequestID  string `json:"request_id"`
	EmployeeID string `json:"employee_id"`
}

func (r *CancelLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	ApproverNote *string `json:"approver_note,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		StartDate:    lr.StartDate.Format("2006-01-02"),
		EndDate:      lr.EndDate.Format("2006-01-02"),
		Days:         lr.Days,
		Reason:       lr.Reason,
		Status:       string(lr.Status),
		ApproverNote: lr.ApproverNote,
		CreatedAt:    lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.ApprovedAt != nil {
		s := lr.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	return resp
}

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Allocation int    `json:"allocation"`
	Used       int    `json:"used"`
	Remaining  int    `json:"remaining"`
	Pending    int    `json:"pending"`
}

func ToBalanceResponse(s BalanceSnapshot) BalanceResponse {
	return BalanceResponse(s)
}
