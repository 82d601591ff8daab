package response

import (
	"errors"
	"net/http"

	"github.com/leaveease/leaveease-backend-go/internal/domain/auth"
	"github.com/leaveease/leaveease-backend-go/internal/domain/employee"
	"github.com/leaveease/leaveease-backend-go/internal/domain/holiday"
	"github.com/leaveease/leaveease-backend-go/internal/domain/leave"
	"github.com/leaveease/leaveease-backend-go/internal/domain/user"
	"github.com/leaveease/leaveease-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a field validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Leave admissibility violations keep their evaluation order
	var violations leave.Violations
	if errors.As(err, &violations) {
		RuleViolations(w, violations)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrPasswordNotSet):
		Forbidden(w, "Password has not been set up yet")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrSetupTokenInvalid):
		BadRequest(w, "Password setup token is invalid or already used", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrInvalidAllocation):
		BadRequest(w, "Annual allocation must not be negative", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOwnershipMismatch):
		NotFound(w, "Leave request not found for this employee")
	case errors.Is(err, leave.ErrInvalidTransition):
		BadRequest(w, "Only pending requests can be acted upon", nil)
	case errors.Is(err, leave.ErrMissingApproverNote):
		BadRequest(w, "Approver note is required when rejecting", nil)
	case errors.Is(err, leave.ErrInvalidAction):
		BadRequest(w, "Action must be APPROVE or REJECT", nil)
	case errors.Is(err, leave.ErrConcurrentModification):
		Conflict(w, "Leave request was modified concurrently, retry the operation")

	// Upstream errors
	case errors.Is(err, holiday.ErrUpstreamUnavailable):
		BadGateway(w, "Holiday data source unavailable, try again later")
	case errors.Is(err, holiday.ErrInvalidCountryCode):
		BadRequest(w, "Country code must be an ISO-3166 alpha-2 code", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
