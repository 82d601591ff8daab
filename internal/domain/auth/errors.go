package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSetupTokenInvalid  = errors.New("password setup token is invalid or already used")
	ErrPasswordNotSet     = errors.New("password has not been set up yet")
)
