package services

import "errors"

var (
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrNegativeQuantity  = errors.New("quantity must not be negative")
)

// ErrInvalidCredentials is returned by Login for an unknown login or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrUnknownAdmin     = errors.New("admin no longer exists")
	ErrMissingJWTSecret = errors.New("jwt secret is not configured")
)
