package services

import (
	"errors"
	"fmt"

	"github.com/diewo77/invoicegen/validation"
)

// Sentinel errors so handlers can map failures to status codes with errors.Is
// instead of matching on message text.
var (
	// ErrUnauthenticated means no caller identity was present for a write.
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrNotFound covers both absent records and records owned by another
	// user; existence is not revealed across owners.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is raised when signup hits the unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoDocument means the invoice has not been rendered yet.
	ErrNoDocument = errors.New("invoice has no document")
)

// ValidationError carries per-field violations for malformed input.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Violations))
}

func invalid(v validation.Violations) error { return &ValidationError{Violations: v} }
