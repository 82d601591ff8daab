package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Role         Role
	EmployeeID   *string

	// SetupToken is issued on employee creation and cleared once the
	// password has been set.
	SetupToken *string
	FirstLogin bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
