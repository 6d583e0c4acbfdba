// internal/services/errors.go
package services

import "errors"

// Error kinds. Services wrap these with fmt.Errorf("%w: ...") so handlers can
// map them onto HTTP statuses with errors.Is while the message keeps the
// operation-specific detail. Anything not matching one of these surfaces as
// an internal failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)
