// Package apply reconstructs text from a caller-chosen subset of rendered
// changes, and groups raw diff operations into coherent suggestion units.
//
// Selective application works because every change's position is expressed
// relative to the original text and changes cover independent,
// non-overlapping spans. Applying in descending position order means no
// applied change ever shifts the position of one still to be applied, so no
// renumbering is needed.
package apply

import (
	"fmt"
	"sort"
	"strings"

	"github.com/redlinehq/redline/internal/render"
)

// Selected applies the changes whose ids appear in selectedIDs to original
// and returns the resulting text. Unselected changes are skipped; ids that
// match no change are ignored. Positions must refer to original - applying a
// subset to an already-patched text is not supported.
func Selected(original string, changes []render.Change, selectedIDs []string) (string, error) {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	type indexed struct {
		render.Change
		order int
	}
	picked := make([]indexed, 0, len(selectedIDs))
	for i, c := range changes {
		if selected[c.ID] {
			picked = append(picked, indexed{Change: c, order: i})
		}
	}

	// Descending position order keeps earlier offsets valid as later spans
	// are rewritten. Consecutive insertions share an original-text position,
	// so ties apply the later-listed change first to preserve their relative
	// order in the result.
	sort.Slice(picked, func(i, j int) bool {
		if picked[i].Position != picked[j].Position {
			return picked[i].Position > picked[j].Position
		}
		return picked[i].order > picked[j].order
	})

	text := original
	for _, c := range picked {
		patched, err := applyOne(text, c.Change)
		if err != nil {
			return "", err
		}
		text = patched
	}
	return text, nil
}

func applyOne(text string, c render.Change) (string, error) {
	start := c.Position
	if start < 0 || start > len(text) {
		return "", fmt.Errorf("change %s: position %d outside text of length %d", c.ID, start, len(text))
	}

	switch c.Type {
	case render.Addition:
		return text[:start] + c.NewText + text[start:], nil
	case render.Deletion, render.Replacement:
		end := start + c.Length
		if end > len(text) {
			return "", fmt.Errorf("change %s: span [%d,%d) outside text of length %d", c.ID, start, end, len(text))
		}
		var b strings.Builder
		b.Grow(len(text) - c.Length + len(c.NewText))
		b.WriteString(text[:start])
		b.WriteString(c.NewText) // empty for a plain deletion
		b.WriteString(text[end:])
		return b.String(), nil
	default:
		return "", fmt.Errorf("change %s: unknown change type %q", c.ID, c.Type)
	}
}
