// trackchanges.go renders a diff as addressable Change entries.
//
// Each Delete becomes a deletion, each Insert an addition, and a Delete
// immediately followed by its paired Insert (the insert position sitting at
// the end of the deleted span) is merged into a single replacement carrying
// both texts. Equal operations produce no entries.
package render

import (
	"fmt"

	"github.com/redlinehq/redline/internal/diff"
)

// ChangeType classifies a track-changes entry.
type ChangeType string

const (
	// Deletion removes OriginalText at Position.
	Deletion ChangeType = "deletion"
	// Addition inserts NewText at Position.
	Addition ChangeType = "addition"
	// Replacement swaps OriginalText for NewText at Position.
	Replacement ChangeType = "replacement"
)

// Change is one revision mark. Position and Length locate the affected span
// in the original text: for a deletion or replacement the span being
// removed, for an addition the insertion offset (Length is the length of the
// inserted text). IDs are stable across renderings of the same diff unless
// a custom generator is supplied.
type Change struct {
	ID            string     `json:"id"`
	Type          ChangeType `json:"type"`
	OriginalText  string     `json:"original_text,omitempty"`
	NewText       string     `json:"new_text,omitempty"`
	FormattedText string     `json:"formatted_text"`
	Position      int        `json:"position"`
	Length        int        `json:"length"`
}

// Changes extracts the track-changes entries from d.
func Changes(d *diff.Result, opts Options) []Change {
	m := opts.markers()
	next := sequentialIDs(opts)

	var changes []Change
	ops := d.Operations
	for i := 0; i < len(ops); i++ {
		op := ops[i]
		switch op.Op {
		case diff.OpEqual:
			continue
		case diff.OpDelete:
			// Merge with a directly following paired insert.
			if i+1 < len(ops) && ops[i+1].Op == diff.OpInsert && ops[i+1].Position == op.Position+op.Length {
				ins := ops[i+1]
				changes = append(changes, Change{
					ID:            next(),
					Type:          Replacement,
					OriginalText:  op.Text,
					NewText:       ins.Text,
					FormattedText: m.DeleteOpen + op.Text + m.DeleteClose + m.InsertOpen + ins.Text + m.InsertClose,
					Position:      op.Position,
					Length:        op.Length,
				})
				i++
				continue
			}
			changes = append(changes, Change{
				ID:            next(),
				Type:          Deletion,
				OriginalText:  op.Text,
				FormattedText: m.DeleteOpen + op.Text + m.DeleteClose,
				Position:      op.Position,
				Length:        op.Length,
			})
		case diff.OpInsert:
			changes = append(changes, Change{
				ID:            next(),
				Type:          Addition,
				NewText:       op.Text,
				FormattedText: m.InsertOpen + op.Text + m.InsertClose,
				Position:      op.Position,
				Length:        op.Length,
			})
		}
	}
	return changes
}

// sequentialIDs returns the id source for a rendering: the configured
// generator, or a deterministic per-render sequence.
func sequentialIDs(opts Options) func() string {
	if opts.IDs != nil {
		return opts.IDs.NewID
	}
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("change-%d", n)
	}
}
