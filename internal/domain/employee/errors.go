package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidAllocation = errors.New("annual allocation must not be negative")
)
