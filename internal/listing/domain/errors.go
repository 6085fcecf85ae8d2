package domain

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrValidation       = errors.New("validation failed")
	ErrNotAuthenticated = errors.New("not authenticated")
)
