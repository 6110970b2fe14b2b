// Package errs holds the error kinds shared by the persistence, service and
// HTTP layers. Callers wrap them with context and match with errors.Is.
package errs

import (
	"fmt"
)

var (
	// ErrValidation marks a missing or malformed input field.
	ErrValidation = fmt.Errorf("validation error")
	// ErrNotFound marks a reference to an entity that does not exist.
	ErrNotFound = fmt.Errorf("not found")
	// ErrConstraint marks a violated domain rule.
	ErrConstraint = fmt.Errorf("constraint violated")

	ErrInvalidPrice      = fmt.Errorf("%w: invalid price", ErrValidation)
	ErrLimitReached      = fmt.Errorf("%w: company registration limit reached", ErrConstraint)
	ErrInvalidStatus     = fmt.Errorf("%w: unknown status", ErrConstraint)
	ErrInvalidTransition = fmt.Errorf("%w: status transition not allowed", ErrConstraint)
	ErrDuplicateKey      = fmt.Errorf("%w: duplicate key", ErrConstraint)
)
