// inline.go renders a diff as a single marked-up string: equal text
// verbatim, deleted spans wrapped in the delete markers, inserted spans in
// the insert markers, everything in operation order.
package render

import (
	"strings"

	"github.com/redlinehq/redline/internal/diff"
)

func renderInline(d *diff.Result, m Markers) string {
	var b strings.Builder
	for _, op := range d.Operations {
		switch op.Op {
		case diff.OpDelete:
			b.WriteString(m.DeleteOpen)
			b.WriteString(op.Text)
			b.WriteString(m.DeleteClose)
		case diff.OpInsert:
			b.WriteString(m.InsertOpen)
			b.WriteString(op.Text)
			b.WriteString(m.InsertClose)
		default:
			b.WriteString(op.Text)
		}
	}
	return b.String()
}
