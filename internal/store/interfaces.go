// interfaces.go defines the storage abstraction for version persistence.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are intentionally granular (Reader,
// Writer, Maintainer) to support interface segregation - consumers only
// depend on the capabilities they need.
package store

import (
	"context"
	"time"
)

// Reader defines read-only operations for retrieving versions.
type Reader interface {
	// Version retrieves a version by id. Returns ErrNotFound if it does
	// not exist.
	Version(ctx context.Context, id string) (*Version, error)

	// LatestVersion returns the highest-numbered version of a document,
	// optionally restricted to one type (empty Type means any). Returns
	// ErrNotFound when the document has no matching versions.
	LatestVersion(ctx context.Context, documentID string, t Type) (*Version, error)

	// ListVersions returns versions of a document newest-first, optionally
	// restricted to one type, with limit/skip pagination (limit 0 means
	// all). The second result is the total matching count before paging.
	ListVersions(ctx context.Context, documentID string, t Type, limit, skip int) ([]Version, int, error)
}

// Writer defines operations that create versions or advance suggestion state.
type Writer interface {
	// CreateVersion persists a new version, assigning its id, creation
	// timestamp, and the next version number for the document. The number
	// assignment happens inside the insert's transaction, so concurrent
	// creates for one document yield distinct sequential numbers.
	CreateVersion(ctx context.Context, in CreateInput) (*Version, error)

	// MarkStatus moves an AI-suggestion version to a new status. A
	// transition to a terminal status requires the suggestion to still be
	// pending; ErrAlreadyResolved reports a lost race or a repeat call.
	MarkStatus(ctx context.Context, versionID string, s Status) error

	// TransferOwnership reassigns every version of a document owned by the
	// given session to the given user, returning the number reassigned.
	// Used to claim anonymous-session versions after login.
	TransferOwnership(ctx context.Context, documentID, sessionID, userID string) (int64, error)
}

// Maintainer defines retention cleanup and lifecycle operations. Cleanup is
// invoked explicitly after relevant mutations, not by a background scheduler.
type Maintainer interface {
	// CleanupMinor permanently deletes the document's auto-save versions
	// older than the retention window, returning the count deleted.
	CleanupMinor(ctx context.Context, documentID string, retention time.Duration) (int64, error)

	// CleanupRejectedSuggestions permanently deletes the document's
	// rejected AI-suggestion versions older than the retention window,
	// returning the count deleted.
	CleanupRejectedSuggestions(ctx context.Context, documentID string, retention time.Duration) (int64, error)

	// Close releases the underlying resources.
	Close() error
}

// Store is the full persistence contract the version manager depends on.
type Store interface {
	Reader
	Writer
	Maintainer
}
