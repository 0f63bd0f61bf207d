// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUserNotFound   = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrMissingField   = errors.New("missing required field")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
