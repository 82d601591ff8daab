package employee

import (
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Department       string  `json:"department"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	JobType          *string `json:"job_type,omitempty"`
	JoiningDate      string  `json:"joining_date"`
	AnnualAllocation *int    `json:"annual_allocation,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "joining_date",
			Message: "joining_date must be in YYYY-MM-DD format",
		})
	}

	if r.AnnualAllocation != nil && *r.AnnualAllocation < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_allocation",
			Message: "annual_allocation must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Department       string  `json:"department"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	JobType          *string `json:"job_type,omitempty"`
	JoiningDate      string  `json:"joining_date"`
	AnnualAllocation int     `json:"annual_allocation"`
	CreatedAt        string  `json:"created_at"`
}

func ToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               emp.ID,
		Name:             emp.Name,
		Email:            emp.Email,
		Department:       emp.Department,
		PhoneNumber:      emp.PhoneNumber,
		JobType:          emp.JobType,
		JoiningDate:      emp.JoiningDate.Format("2006-01-02"),
		AnnualAllocation: emp.AnnualAllocation,
		CreatedAt:        emp.CreatedAt.Format(time.RFC3339),
	}
}
