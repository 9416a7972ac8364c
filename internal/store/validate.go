// validate.go checks create inputs before they touch the database.
package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

const maxDocumentIDLength = 256

// validateInput rejects malformed create inputs up front so the database
// only sees well-formed rows.
func validateInput(in CreateInput, maxContent int64) error {
	if strings.TrimSpace(in.DocumentID) == "" {
		return fmt.Errorf("document id is required")
	}
	if len(in.DocumentID) > maxDocumentIDLength {
		return fmt.Errorf("document id exceeds %d bytes", maxDocumentIDLength)
	}
	if maxContent > 0 && int64(len(in.Content)) > maxContent {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrContentTooLarge, len(in.Content), maxContent)
	}

	switch in.Type {
	case TypeMajor, TypeMinor:
		if in.Suggestion != nil {
			return fmt.Errorf("%s versions cannot carry suggestion metadata", in.Type)
		}
	case TypeAISuggestion:
		if in.Suggestion == nil {
			return fmt.Errorf("ai_suggestion versions require suggestion metadata")
		}
		if in.Suggestion.Status != StatusPending {
			return fmt.Errorf("new suggestions must start pending, got %q", in.Suggestion.Status)
		}
	default:
		return fmt.Errorf("unknown version type %q", in.Type)
	}

	if in.Owner.UserID != "" && in.Owner.SessionID != "" {
		return fmt.Errorf("version owner must be a user or a session, not both")
	}
	return nil
}

// decodeSuggestion rebuilds SuggestionMeta from its stored columns.
func decodeSuggestion(sugType, model, prompt, status, diffJSON string) (*SuggestionMeta, error) {
	meta := &SuggestionMeta{
		SuggestionType: sugType,
		Model:          model,
		Prompt:         prompt,
		Status:         Status(status),
	}
	if diffJSON != "" && diffJSON != "null" {
		if err := json.Unmarshal([]byte(diffJSON), &meta.Diff); err != nil {
			return nil, fmt.Errorf("decode suggestion diff: %w", err)
		}
	}
	return meta, nil
}
