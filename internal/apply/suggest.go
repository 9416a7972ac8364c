// suggest.go groups raw diff operations into suggestion units so callers can
// browse an AI edit as a handful of coherent changes instead of a stream of
// operations.
package apply

import (
	"strings"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/id"
)

// Suggestion is one contiguous edit: the text it removes from the original
// and the text it puts in its place. Either side may be empty (a pure
// insertion or deletion).
type Suggestion struct {
	ID            string `json:"id"`
	Position      int    `json:"position"`
	OriginalText  string `json:"original_text,omitempty"`
	SuggestedText string `json:"suggested_text,omitempty"`
	Operations    int    `json:"operations"`
}

// GroupSuggestions scans the operations in order: every Equal operation
// closes the current group and every non-Equal operation joins it. Each
// non-empty group becomes one Suggestion. ids is optional; nil yields
// deterministic sequential ids.
func GroupSuggestions(ops []diff.Operation, ids id.Generator) []Suggestion {
	if ids == nil {
		ids = id.NewSequence("suggestion")
	}

	var suggestions []Suggestion
	var cur *Suggestion
	var removed, added strings.Builder

	flush := func() {
		if cur == nil {
			return
		}
		cur.OriginalText = removed.String()
		cur.SuggestedText = added.String()
		suggestions = append(suggestions, *cur)
		cur = nil
		removed.Reset()
		added.Reset()
	}

	for _, op := range ops {
		if op.Op == diff.OpEqual {
			flush()
			continue
		}
		if cur == nil {
			cur = &Suggestion{ID: ids.NewID(), Position: op.Position}
		}
		cur.Operations++
		if op.Op == diff.OpDelete {
			removed.WriteString(op.Text)
		} else {
			added.WriteString(op.Text)
		}
	}
	flush()
	return suggestions
}
