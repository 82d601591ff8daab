package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/leaveease/leaveease-backend-go/internal/domain/leave"
	"github.com/leaveease/leaveease-backend-go/internal/handler/http/response"
	leaveservice "github.com/leaveease/leaveease-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Act(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Modify(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService *leaveservice.RequestService
}

func NewLeaveHandler(requestService *leaveservice.RequestService) LeaveHandler {
	return &LeaveHandlerImpl{requestService: requestService}
}

// employeeIDFromClaims resolves the caller's employee id from the JWT,
// overriding any value in the request body.
func employeeIDFromClaims(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	return employeeID, ok && employeeID != ""
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.requestService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leave.ToResponse(created))
}

// Act implements LeaveHandler. Admin only, enforced by routing middleware.
func (l *LeaveHandlerImpl) Act(w http.ResponseWriter, r *http.Request) {
	var req leave.ActOnLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Act decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	acted, err := l.requestService.Act(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", leave.ToResponse(acted))
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	req := leave.CancelLeaveRequest{
		RequestID:  chi.URLParam(r, "id"),
		EmployeeID: employeeID,
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.requestService.Cancel(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", nil)
}

// Modify implements LeaveHandler.
func (l *LeaveHandlerImpl) Modify(w http.ResponseWriter, r *http.Request) {
	var req leave.ModifyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Modify decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	modified, err := l.requestService.Modify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", leave.ToResponse(modified))
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	snapshot, err := l.requestService.Balance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToBalanceResponse(snapshot))
}

// GetMyRequests implements LeaveHandler. An optional ?status= query parameter
// narrows the listing to one status.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var statusFilter *leave.LeaveRequestStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := leave.LeaveRequestStatus(strings.ToUpper(raw))
		switch status {
		case leave.LeaveRequestStatusPending, leave.LeaveRequestStatusApproved,
			leave.LeaveRequestStatusRejected, leave.LeaveRequestStatusCancelled:
			statusFilter = &status
		default:
			response.BadRequest(w, "Unknown status filter", nil)
			return
		}
	}

	requests, err := l.requestService.ListByEmployee(r.Context(), employeeID, statusFilter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, leave.ToResponse(lr))
	}

	response.Success(w, responses)
}
