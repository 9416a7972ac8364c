// suggestions.go implements the AI-suggestion state machine.
//
// A suggestion version starts pending and moves to exactly one terminal
// status. Accepting (fully or partially) is a two-step saga: create the new
// Major version, then mark the suggestion. The mark runs only after creation
// succeeds, so a failed accept leaves the suggestion pending and the whole
// operation can simply be re-run; the store's compare-and-set status update
// guarantees at most one resolution wins.
package version

import (
	"context"
	"fmt"

	"github.com/redlinehq/redline/internal/apply"
	"github.com/redlinehq/redline/internal/render"
	"github.com/redlinehq/redline/internal/store"
)

// SuggestionInfo describes where a suggestion came from.
type SuggestionInfo struct {
	SuggestionType string
	Model          string
	Prompt         string
}

// CreateAISuggestion diffs the suggested content against the content it was
// generated for and stores a pending AI-suggestion version carrying the
// structured diff in its metadata.
func (m *Manager) CreateAISuggestion(ctx context.Context, documentID, originalContent, suggestedContent string, info SuggestionInfo, owner store.Owner) (*store.Version, error) {
	d, err := m.engine.Compare(originalContent, suggestedContent, m.cfg.DiffAlgorithm, m.cfg.DiffOptions)
	if err != nil {
		return nil, wrap("create suggestion", err)
	}

	return m.create(ctx, store.CreateInput{
		DocumentID: documentID,
		Content:    suggestedContent,
		Type:       store.TypeAISuggestion,
		Owner:      owner,
		Suggestion: &store.SuggestionMeta{
			SuggestionType: info.SuggestionType,
			Model:          info.Model,
			Prompt:         info.Prompt,
			Status:         store.StatusPending,
			Diff:           d,
		},
	})
}

// AcceptSuggestion creates a new Major version containing the suggestion's
// full content on top of the document's latest Major version, then marks
// the suggestion accepted.
func (m *Manager) AcceptSuggestion(ctx context.Context, documentID, suggestionID string, caller store.Owner) (*store.Version, error) {
	sug, err := m.loadPendingSuggestion(ctx, documentID, suggestionID, caller)
	if err != nil {
		return nil, err
	}
	base, err := m.baseVersion(ctx, documentID)
	if err != nil {
		return nil, err
	}

	v, err := m.create(ctx, store.CreateInput{
		DocumentID:        documentID,
		Content:           sug.Content,
		Type:              store.TypeMajor,
		Owner:             caller,
		PreviousID:        base.ID,
		ChangeDescription: "Accepted AI suggestion",
	})
	if err != nil {
		return nil, err
	}

	if err := m.store.MarkStatus(ctx, sug.ID, store.StatusAccepted); err != nil {
		return nil, wrap("mark suggestion accepted", err)
	}
	m.log.Info().Str("document_id", documentID).Str("suggestion_id", suggestionID).Msg("accepted suggestion")
	return v, nil
}

// RejectSuggestion marks the suggestion rejected and prunes rejected
// suggestions that have aged past retention. Cleanup failure is logged, not
// surfaced.
func (m *Manager) RejectSuggestion(ctx context.Context, documentID, suggestionID string, caller store.Owner) error {
	sug, err := m.loadPendingSuggestion(ctx, documentID, suggestionID, caller)
	if err != nil {
		return err
	}
	if err := m.store.MarkStatus(ctx, sug.ID, store.StatusRejected); err != nil {
		return wrap("mark suggestion rejected", err)
	}

	if _, err := m.store.CleanupRejectedSuggestions(ctx, documentID, m.cfg.RejectedRetention); err != nil {
		m.log.Warn().Err(err).Str("document_id", documentID).Msg("rejected-suggestion cleanup failed")
	}
	m.log.Info().Str("document_id", documentID).Str("suggestion_id", suggestionID).Msg("rejected suggestion")
	return nil
}

// PartiallyAcceptSuggestion applies only the selected changes of the
// suggestion's stored diff to the latest Major version's content, creates a
// new Major version with the result, and marks the suggestion partially
// accepted. Change ids come from SuggestionChanges.
func (m *Manager) PartiallyAcceptSuggestion(ctx context.Context, documentID, suggestionID string, selectedChangeIDs []string, caller store.Owner) (*store.Version, error) {
	sug, err := m.loadPendingSuggestion(ctx, documentID, suggestionID, caller)
	if err != nil {
		return nil, err
	}
	if sug.Suggestion.Diff == nil {
		return nil, &ManagerError{Op: "partially accept", Err: fmt.Errorf("suggestion %s has no stored diff", suggestionID)}
	}
	base, err := m.baseVersion(ctx, documentID)
	if err != nil {
		return nil, err
	}

	// Re-rendering recovers the same deterministic change ids the caller
	// browsed via SuggestionChanges.
	changes := render.Changes(sug.Suggestion.Diff, render.Options{})
	content, err := apply.Selected(base.Content, changes, selectedChangeIDs)
	if err != nil {
		return nil, wrap("apply selected changes", err)
	}

	v, err := m.create(ctx, store.CreateInput{
		DocumentID:        documentID,
		Content:           content,
		Type:              store.TypeMajor,
		Owner:             caller,
		PreviousID:        base.ID,
		ChangeDescription: fmt.Sprintf("Partially accepted AI suggestion (%d of %d changes)", len(selectedChangeIDs), len(changes)),
	})
	if err != nil {
		return nil, err
	}

	if err := m.store.MarkStatus(ctx, sug.ID, store.StatusPartiallyAccepted); err != nil {
		return nil, wrap("mark suggestion partially accepted", err)
	}
	m.log.Info().
		Str("document_id", documentID).
		Str("suggestion_id", suggestionID).
		Int("selected", len(selectedChangeIDs)).
		Msg("partially accepted suggestion")
	return v, nil
}

// SuggestionChanges renders the suggestion's stored diff as track-changes
// entries so callers can pick change ids for partial acceptance.
func (m *Manager) SuggestionChanges(ctx context.Context, documentID, suggestionID string, caller store.Owner) ([]render.Change, error) {
	sug, err := m.loadSuggestion(ctx, documentID, suggestionID, caller)
	if err != nil {
		return nil, err
	}
	if sug.Suggestion.Diff == nil {
		return nil, &ManagerError{Op: "suggestion changes", Err: fmt.Errorf("suggestion %s has no stored diff", suggestionID)}
	}
	return render.Changes(sug.Suggestion.Diff, render.Options{}), nil
}

// SuggestionUnits groups the suggestion's diff operations into coherent edit
// units for browsing.
func (m *Manager) SuggestionUnits(ctx context.Context, documentID, suggestionID string, caller store.Owner) ([]apply.Suggestion, error) {
	sug, err := m.loadSuggestion(ctx, documentID, suggestionID, caller)
	if err != nil {
		return nil, err
	}
	if sug.Suggestion.Diff == nil {
		return nil, &ManagerError{Op: "suggestion units", Err: fmt.Errorf("suggestion %s has no stored diff", suggestionID)}
	}
	return apply.GroupSuggestions(sug.Suggestion.Diff.Operations, nil), nil
}

// loadSuggestion fetches a suggestion version and verifies access, type, and
// document membership.
func (m *Manager) loadSuggestion(ctx context.Context, documentID, suggestionID string, caller store.Owner) (*store.Version, error) {
	v, err := m.GetVersion(ctx, suggestionID, caller)
	if err != nil {
		return nil, err
	}
	if v.Type != store.TypeAISuggestion || v.Suggestion == nil {
		return nil, &ManagerError{Op: "load suggestion", Err: fmt.Errorf("version %s is not an AI suggestion", suggestionID)}
	}
	if v.DocumentID != documentID {
		return nil, &ManagerError{Op: "load suggestion", Err: fmt.Errorf("suggestion %s does not belong to document %s", suggestionID, documentID)}
	}
	return v, nil
}

// loadPendingSuggestion additionally requires the suggestion to be pending.
func (m *Manager) loadPendingSuggestion(ctx context.Context, documentID, suggestionID string, caller store.Owner) (*store.Version, error) {
	v, err := m.loadSuggestion(ctx, documentID, suggestionID, caller)
	if err != nil {
		return nil, err
	}
	if v.Suggestion.Status != store.StatusPending {
		return nil, &ManagerError{
			Op:  "load suggestion",
			Err: fmt.Errorf("%w: status is %q", store.ErrAlreadyResolved, v.Suggestion.Status),
		}
	}
	return v, nil
}

// baseVersion loads the document's latest Major version, the base every
// accept builds on.
func (m *Manager) baseVersion(ctx context.Context, documentID string) (*store.Version, error) {
	base, err := m.store.LatestVersion(ctx, documentID, store.TypeMajor)
	if err != nil {
		return nil, &ManagerError{Op: "load base version", Err: fmt.Errorf("no base version for document %s: %w", documentID, err)}
	}
	return base, nil
}
