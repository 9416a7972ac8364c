// errors.go defines the manager's error taxonomy.
//
// Lookup errors (not found, access denied) propagate unchanged so callers
// can branch on them with errors.Is. Everything unexpected is wrapped in a
// ManagerError naming the operation, with the cause kept for Unwrap.
package version

import (
	"errors"
	"fmt"

	"github.com/redlinehq/redline/internal/store"
)

// ErrNotFound re-exports the store sentinel so callers need not import the
// store package to branch on missing versions.
var ErrNotFound = store.ErrNotFound

// ErrAccessDenied indicates the caller owns neither the user nor the session
// a version belongs to.
var ErrAccessDenied = errors.New("version access denied")

// ManagerError wraps an unexpected failure inside a manager operation,
// keeping the original cause attached for diagnostics.
type ManagerError struct {
	Op  string
	Err error
}

func (e *ManagerError) Error() string {
	return fmt.Sprintf("version manager: %s: %v", e.Op, e.Err)
}

func (e *ManagerError) Unwrap() error {
	return e.Err
}

// wrap classifies err: sentinels pass through untouched, anything else
// becomes a ManagerError for op.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAccessDenied) {
		return err
	}
	return &ManagerError{Op: op, Err: err}
}
