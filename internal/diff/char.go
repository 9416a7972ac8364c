// char.go implements the character-level algorithm on diff-match-patch.
//
// Separated from the dispatch in diff.go so each algorithm's conversion to
// the shared Operation shape stays self-contained.
//
// Design: DiffMain produces raw Equal/Delete/Insert spans; the two optional
// cleanup passes trade minimality for readability. Semantic cleanup merges
// spans so boundaries land on word/punctuation boundaries instead of
// splitting a word in two. Efficiency cleanup drops tiny equalities
// sandwiched between edits when representing them costs more than they save.
package diff

import (
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// normalize applies the destructive pre-comparison transforms selected by
// opts. Operation text downstream carries the normalized form.
func normalize(s string, opts Options) string {
	if !opts.caseSensitive() {
		s = strings.ToLower(s)
	}
	if opts.IgnoreWhitespace {
		s = whitespaceRuns.ReplaceAllString(s, " ")
	}
	return s
}

func compareChars(original, modified string, opts Options) []Operation {
	if original == modified {
		return identicalOps(original)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, modified, false)
	if opts.cleanupSemantic() {
		diffs = dmp.DiffCleanupSemantic(diffs)
	}
	if opts.cleanupEfficiency() {
		diffs = dmp.DiffCleanupEfficiency(diffs)
	}

	return fromDMP(diffs)
}

// identicalOps is the documented fixed point: one whole-text Equal span, or
// nothing at all for two empty inputs.
func identicalOps(text string) []Operation {
	if text == "" {
		return nil
	}
	return []Operation{{Op: OpEqual, Text: text, Position: 0, Length: len(text)}}
}

// fromDMP converts diff-match-patch spans to Operations, tracking the byte
// offset into the original text. Inserts take the current offset without
// advancing it - their text exists only in the modified input.
func fromDMP(diffs []diffmatchpatch.Diff) []Operation {
	ops := make([]Operation, 0, len(diffs))
	pos := 0
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		op := Operation{Text: d.Text, Position: pos, Length: len(d.Text)}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op.Op = OpDelete
			pos += len(d.Text)
		case diffmatchpatch.DiffInsert:
			op.Op = OpInsert
		default:
			op.Op = OpEqual
			pos += len(d.Text)
		}
		ops = append(ops, op)
	}
	return ops
}
