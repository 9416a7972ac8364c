// write.go implements version creation and suggestion status transitions.
//
// Separated from the read paths to isolate mutating operations. Every write
// creates a new row rather than updating in place - version content is
// immutable after creation.
//
// Design: the version number is computed as MAX(version_number)+1 within the
// insert's transaction. WAL mode serializes writers, so concurrent creates
// for one document commit distinct sequential numbers with no gaps. The
// assignment is never performed outside the store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// CreateVersion persists a new version and returns it with its assigned id,
// version number, and creation timestamp filled in.
func (s *SQLiteStore) CreateVersion(ctx context.Context, in CreateInput) (*Version, error) {
	if err := validateInput(in, s.maxContent); err != nil {
		return nil, err
	}

	v := &Version{
		ID:                s.ids.NewID(),
		DocumentID:        in.DocumentID,
		Content:           in.Content,
		CreatedAt:         s.clock.Now().Unix(),
		UserID:            in.Owner.UserID,
		SessionID:         in.Owner.SessionID,
		Type:              in.Type,
		PreviousID:        in.PreviousID,
		ChangeDescription: in.ChangeDescription,
		Suggestion:        in.Suggestion,
	}

	var sugType, model, prompt, status, diffJSON sql.NullString
	if in.Suggestion != nil {
		encoded, err := json.Marshal(in.Suggestion.Diff)
		if err != nil {
			return nil, fmt.Errorf("encode suggestion diff: %w", err)
		}
		sugType = nullable(in.Suggestion.SuggestionType)
		model = nullable(in.Suggestion.Model)
		prompt = nullable(in.Suggestion.Prompt)
		status = nullable(string(in.Suggestion.Status))
		diffJSON = nullable(string(encoded))
	}

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(version_number), 0) + 1 FROM versions WHERE document_id = ?`,
			in.DocumentID).Scan(&v.Number)
		if err != nil {
			return fmt.Errorf("next version number: %w", err)
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO versions
			(id, document_id, version_number, content, created_at, user_id, session_id,
			 type, previous_id, change_description, suggestion_type, model, prompt, status, diff_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.DocumentID, v.Number, v.Content, v.CreatedAt,
			nullable(v.UserID), nullable(v.SessionID), v.Type,
			nullable(v.PreviousID), nullable(v.ChangeDescription),
			sugType, model, prompt, status, diffJSON)
		if err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("version_id", v.ID).
		Str("document_id", v.DocumentID).
		Int("version_number", v.Number).
		Str("type", string(v.Type)).
		Msg("created version")
	return v, nil
}

// MarkStatus advances an AI-suggestion version's status. Transitions to a
// terminal status only succeed while the suggestion is still pending, which
// makes resolution a compare-and-set: a repeated or racing resolution gets
// ErrAlreadyResolved instead of silently overwriting the first outcome.
func (s *SQLiteStore) MarkStatus(ctx context.Context, versionID string, status Status) error {
	query := `UPDATE versions SET status = ? WHERE id = ? AND type = ?`
	args := []any{status, versionID, TypeAISuggestion}
	if status.Terminal() {
		query += ` AND status = ?`
		args = append(args, StatusPending)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark status %s: %w", versionID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark status %s: %w", versionID, err)
	}
	if rows == 0 {
		// Distinguish a missing suggestion from a lost resolution race.
		var current sql.NullString
		err := s.db.QueryRowContext(ctx,
			`SELECT status FROM versions WHERE id = ? AND type = ?`,
			versionID, TypeAISuggestion).Scan(&current)
		if err != nil {
			return ErrNotFound
		}
		return fmt.Errorf("%w: status is %q", ErrAlreadyResolved, current.String)
	}

	s.log.Debug().Str("version_id", versionID).Str("status", string(status)).Msg("marked suggestion status")
	return nil
}

// TransferOwnership reassigns a document's session-owned versions to a user.
func (s *SQLiteStore) TransferOwnership(ctx context.Context, documentID, sessionID, userID string) (int64, error) {
	if sessionID == "" || userID == "" {
		return 0, fmt.Errorf("transfer ownership: session id and user id are required")
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE versions SET user_id = ?, session_id = NULL WHERE document_id = ? AND session_id = ?`,
		userID, documentID, sessionID)
	if err != nil {
		return 0, fmt.Errorf("transfer ownership %s: %w", documentID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("transfer ownership %s: %w", documentID, err)
	}
	return rows, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
