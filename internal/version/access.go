// access.go implements the ownership visibility rule.
//
// A version is visible to a caller when it has no owner at all (public or
// legacy data), or the caller's user id matches the version's user id, or
// the caller's session id matches the version's session id. Single lookups
// fail with ErrAccessDenied; list operations silently drop what the caller
// cannot see rather than failing the whole batch.
package version

import "github.com/redlinehq/redline/internal/store"

func accessible(v *store.Version, caller store.Owner) bool {
	if v.UserID == "" && v.SessionID == "" {
		return true
	}
	if v.UserID != "" && v.UserID == caller.UserID {
		return true
	}
	if v.SessionID != "" && v.SessionID == caller.SessionID {
		return true
	}
	return false
}

// checkAccess returns ErrAccessDenied when the caller cannot see v.
func checkAccess(v *store.Version, caller store.Owner) error {
	if !accessible(v, caller) {
		return ErrAccessDenied
	}
	return nil
}
