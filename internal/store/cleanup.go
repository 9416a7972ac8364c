// cleanup.go implements retention-driven permanent deletion.
//
// Separated because deletion is irreversible and has different semantics
// from normal writes. Cleanup runs when the manager invokes it after
// relevant mutations, never from a background scheduler.
package store

import (
	"context"
	"fmt"
	"time"
)

// CleanupMinor permanently deletes the document's auto-save versions older
// than the retention window.
func (s *SQLiteStore) CleanupMinor(ctx context.Context, documentID string, retention time.Duration) (int64, error) {
	return s.cleanupBefore(ctx, documentID, retention,
		`DELETE FROM versions WHERE document_id = ? AND type = ? AND created_at < ?`,
		TypeMinor)
}

// CleanupRejectedSuggestions permanently deletes the document's rejected
// AI-suggestion versions older than the retention window.
func (s *SQLiteStore) CleanupRejectedSuggestions(ctx context.Context, documentID string, retention time.Duration) (int64, error) {
	return s.cleanupBefore(ctx, documentID, retention,
		`DELETE FROM versions WHERE document_id = ? AND type = ? AND status = ? AND created_at < ?`,
		TypeAISuggestion, StatusRejected)
}

func (s *SQLiteStore) cleanupBefore(ctx context.Context, documentID string, retention time.Duration, query string, extra ...any) (int64, error) {
	cutoff := s.clock.Now().Add(-retention).Unix()
	args := append([]any{documentID}, extra...)
	args = append(args, cutoff)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("cleanup %s: %w", documentID, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup %s: %w", documentID, err)
	}
	if deleted > 0 {
		s.log.Debug().
			Str("document_id", documentID).
			Int64("deleted", deleted).
			Dur("retention", retention).
			Msg("cleaned up expired versions")
	}
	return deleted, nil
}
