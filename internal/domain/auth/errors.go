package auth

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrTokenExpired      = errors.New("token has expired")
	ErrMissingEmployeeID = errors.New("token carries no employee id")
)
