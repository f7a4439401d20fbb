package domain

import "errors"

// Error kinds. Every service error wraps exactly one of these so handlers can
// map failures to HTTP status codes with errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrStorage            = errors.New("storage failure")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)
