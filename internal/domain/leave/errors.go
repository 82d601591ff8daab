package leave

import (
	"errors"
	"strings"
)

var (
	ErrLeaveRequestNotFound   = errors.New("leave request not found")
	ErrInvalidTransition      = errors.New("only pending requests can be acted upon")
	ErrOwnershipMismatch      = errors.New("leave request does not belong to this employee")
	ErrMissingApproverNote    = errors.New("approver note is required when rejecting")
	ErrInvalidAction          = errors.New("action must be APPROVE or REJECT")
	ErrConcurrentModification = errors.New("leave request was modified concurrently, retry the operation")
)

type ViolationCode string

const (
	ViolationEmployeeNotFound    ViolationCode = "EMPLOYEE_NOT_FOUND"
	ViolationPastStartDate       ViolationCode = "PAST_START_DATE"
	ViolationPastEndDate         ViolationCode = "PAST_END_DATE"
	ViolationInvertedRange       ViolationCode = "INVERTED_RANGE"
	ViolationPreJoiningLeave     ViolationCode = "PRE_JOINING_LEAVE"
	ViolationOverlappingRequest  ViolationCode = "OVERLAPPING_REQUEST"
	ViolationNoWorkingDays       ViolationCode = "NO_WORKING_DAYS"
	ViolationInsufficientBalance ViolationCode = "INSUFFICIENT_BALANCE"
)

// Violation is a single admissibility rule failure.
type Violation struct {
	Code    ViolationCode `json:"code"`
	Field   string        `json:"field"`
	Message string        `json:"message"`
}

// Violations is the ordered set of rule failures for an apply/modify attempt.
// Implements error so it can flow through the usual error paths; callers
// branch on it with errors.As.
type Violations []Violation

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, violation.Field+": "+violation.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v Violations) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, violation := range v {
		result[violation.Field] = violation.Message
	}
	return result
}
