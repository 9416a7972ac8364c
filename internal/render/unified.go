// unified.go renders a diff as unified-diff text with hunk headers and a
// configurable amount of surrounding context.
//
// The line structure is regenerated from the texts recorded in the diff's
// metadata; when a stored diff has been stripped of its texts, they are
// reconstructed by replaying the operations. Either way the format works for
// diffs produced by any algorithm, not just line level.
package render

import (
	"fmt"
	"strings"

	"github.com/redlinehq/redline/internal/diff"
)

func renderUnified(d *diff.Result, context int) string {
	original, modified := sourceTexts(d)

	lineOps := d.Operations
	if d.Algorithm != diff.Line {
		ld, err := diff.Compare(original, modified, diff.Line, diff.Options{})
		if err != nil {
			// Line comparison has no failure modes; keep the signature total.
			return ""
		}
		lineOps = ld.Operations
	}

	recs := numberLines(lineOps)
	hunks := buildHunks(recs, context)

	var b strings.Builder
	b.WriteString("--- original\n")
	b.WriteString("+++ modified\n")
	for _, h := range hunks {
		writeHunk(&b, recs, h[0], h[1])
	}
	return b.String()
}

// sourceTexts returns the original and modified texts, reconstructing them
// from the operations when the metadata has been stripped.
func sourceTexts(d *diff.Result) (string, string) {
	m := d.Metadata
	if m.OriginalText != "" || m.ModifiedText != "" || len(d.Operations) == 0 {
		return m.OriginalText, m.ModifiedText
	}
	var orig, mod strings.Builder
	for _, op := range d.Operations {
		switch op.Op {
		case diff.OpDelete:
			orig.WriteString(op.Text)
		case diff.OpInsert:
			mod.WriteString(op.Text)
		default:
			orig.WriteString(op.Text)
			mod.WriteString(op.Text)
		}
	}
	return orig.String(), mod.String()
}

// lineRec is one line of the comparison with its 0-based line number on each
// side; -1 marks the side the line does not appear on.
type lineRec struct {
	op   diff.Op
	text string
	orig int
	mod  int
}

func numberLines(ops []diff.Operation) []lineRec {
	recs := make([]lineRec, 0, len(ops))
	orig, mod := 0, 0
	for _, op := range ops {
		r := lineRec{op: op.Op, text: op.Text, orig: -1, mod: -1}
		switch op.Op {
		case diff.OpDelete:
			r.orig = orig
			orig++
		case diff.OpInsert:
			r.mod = mod
			mod++
		default:
			r.orig = orig
			r.mod = mod
			orig++
			mod++
		}
		recs = append(recs, r)
	}
	return recs
}

// buildHunks groups changed lines into [start, end) ranges over recs, each
// padded with up to context equal lines; changes whose context would overlap
// share a hunk.
func buildHunks(recs []lineRec, context int) [][2]int {
	var changed []int
	for i, r := range recs {
		if r.op != diff.OpEqual {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var hunks [][2]int
	first, last := changed[0], changed[0]
	for _, i := range changed[1:] {
		if i-last > 2*context {
			hunks = append(hunks, clampHunk(first, last, context, len(recs)))
			first = i
		}
		last = i
	}
	hunks = append(hunks, clampHunk(first, last, context, len(recs)))
	return hunks
}

func clampHunk(first, last, context, n int) [2]int {
	start := first - context
	if start < 0 {
		start = 0
	}
	end := last + context + 1
	if end > n {
		end = n
	}
	return [2]int{start, end}
}

func writeHunk(b *strings.Builder, recs []lineRec, start, end int) {
	origStart, origCount := sideRange(recs, start, end, func(r lineRec) int { return r.orig })
	modStart, modCount := sideRange(recs, start, end, func(r lineRec) int { return r.mod })
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", origStart, origCount, modStart, modCount)

	for _, r := range recs[start:end] {
		prefix := " "
		switch r.op {
		case diff.OpDelete:
			prefix = "-"
		case diff.OpInsert:
			prefix = "+"
		}
		b.WriteString(prefix)
		b.WriteString(strings.TrimSuffix(r.text, "\n"))
		b.WriteByte('\n')
	}
}

// sideRange computes the 1-based start line and line count of one side of a
// hunk. A side with no lines reports the line after which the change applies
// (0 for the top of the file), matching unified-diff convention.
func sideRange(recs []lineRec, start, end int, side func(lineRec) int) (int, int) {
	first, count := -1, 0
	for _, r := range recs[start:end] {
		if n := side(r); n >= 0 {
			if first < 0 {
				first = n
			}
			count++
		}
	}
	if first >= 0 {
		return first + 1, count
	}
	// No lines on this side inside the hunk; anchor to the last line before it.
	for i := start - 1; i >= 0; i-- {
		if n := side(recs[i]); n >= 0 {
			return n + 1, 0
		}
	}
	return 0, 0
}
