// Package store defines version persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"errors"
	"time"

	"github.com/redlinehq/redline/internal/diff"
)

var (
	// ErrNotFound indicates the requested version does not exist.
	// Callers should check for this to distinguish missing data from other errors.
	ErrNotFound = errors.New("version not found")
	// ErrAlreadyResolved indicates a suggestion status transition was
	// attempted on a suggestion that already left the pending state.
	ErrAlreadyResolved = errors.New("suggestion already resolved")
	// ErrContentTooLarge is returned when version content exceeds the configured limit.
	ErrContentTooLarge = errors.New("version content too large")
)

// Type classifies a version: an explicit user save, an automatic periodic
// save, or an AI-generated candidate edit. The three kinds carry distinct
// retention policies.
type Type string

const (
	// TypeMajor versions are explicit saves, retained indefinitely.
	TypeMajor Type = "major"
	// TypeMinor versions are auto-saves, deleted past the retention window.
	TypeMinor Type = "minor"
	// TypeAISuggestion versions are candidate edits awaiting resolution.
	TypeAISuggestion Type = "ai_suggestion"
)

// Status is the lifecycle state of an AI-suggestion version. A suggestion
// starts pending and moves to exactly one terminal status.
type Status string

const (
	StatusPending           Status = "pending"
	StatusAccepted          Status = "accepted"
	StatusRejected          Status = "rejected"
	StatusPartiallyAccepted Status = "partially_accepted"
)

// Terminal reports whether the status ends the suggestion lifecycle.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusPartiallyAccepted
}

// Owner identifies the caller a version belongs to: a logged-in user or an
// anonymous session. At most one field is set.
type Owner struct {
	UserID    string
	SessionID string
}

// SuggestionMeta is the metadata attached to AI-suggestion versions: where
// the suggestion came from and the structured diff against the content it
// was generated for.
type SuggestionMeta struct {
	SuggestionType string       `json:"suggestion_type,omitempty"`
	Model          string       `json:"model,omitempty"`
	Prompt         string       `json:"prompt,omitempty"`
	Status         Status       `json:"status"`
	Diff           *diff.Result `json:"diff,omitempty"`
}

// Version is a single immutable version of a document. Edits always produce
// a new Version; an existing one is never mutated (the only stored mutation
// is the suggestion status transition).
type Version struct {
	ID         string
	DocumentID string
	Number     int // strictly increasing per document, no gaps, from 1
	Content    string
	CreatedAt  int64 // unix timestamp
	UserID     string
	SessionID  string
	Type       Type
	PreviousID string

	// ChangeDescription is set on Major versions.
	ChangeDescription string
	// Suggestion is set on AI-suggestion versions.
	Suggestion *SuggestionMeta
}

// Owner returns the version's owner pair.
func (v *Version) Owner() Owner {
	return Owner{UserID: v.UserID, SessionID: v.SessionID}
}

// CreateInput carries everything a Store needs to persist a new version.
// The store assigns the id, the version number, and the creation timestamp.
type CreateInput struct {
	DocumentID        string
	Content           string
	Type              Type
	Owner             Owner
	PreviousID        string
	ChangeDescription string
	Suggestion        *SuggestionMeta
}

// VersionJSON is the API-friendly representation of a Version with RFC3339
// timestamps and optional content omission for listings.
type VersionJSON struct {
	ID                string          `json:"id"`
	DocumentID        string          `json:"document_id"`
	Number            int             `json:"version_number"`
	Content           string          `json:"content,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UserID            string          `json:"user_id,omitempty"`
	SessionID         string          `json:"session_id,omitempty"`
	Type              Type            `json:"type"`
	PreviousID        string          `json:"previous_version_id,omitempty"`
	ChangeDescription string          `json:"change_description,omitempty"`
	Suggestion        *SuggestionMeta `json:"suggestion,omitempty"`
}

// ToJSON converts a Version to its API representation. The content parameter
// controls whether to include version content, allowing efficient listings.
func (v *Version) ToJSON(content bool) VersionJSON {
	j := VersionJSON{
		ID:                v.ID,
		DocumentID:        v.DocumentID,
		Number:            v.Number,
		CreatedAt:         time.Unix(v.CreatedAt, 0).UTC().Format(time.RFC3339),
		UserID:            v.UserID,
		SessionID:         v.SessionID,
		Type:              v.Type,
		PreviousID:        v.PreviousID,
		ChangeDescription: v.ChangeDescription,
		Suggestion:        v.Suggestion,
	}
	if content {
		j.Content = v.Content
	}
	return j
}
