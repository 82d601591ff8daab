package employee

import "time"

type Employee struct {
	ID               string
	Name             string
	Email            string
	Department       string
	PhoneNumber      *string
	JobType          *string
	JoiningDate      time.Time
	AnnualAllocation int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
