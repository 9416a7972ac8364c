// line.go implements the line-level algorithm.
//
// diff-match-patch's line mode maps each distinct line to a rune, diffs the
// rune strings, then expands back to lines. That keeps the quadratic part of
// the algorithm proportional to the number of distinct lines rather than
// characters, which is what makes whole-document comparison cheap.
//
// Each emitted operation covers exactly one line (terminator retained) and
// carries a 0-based line index: the index in the original text for Equal and
// Delete operations, and in the modified text for Insert operations.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func compareLines(original, modified string) []Operation {
	if original == modified {
		return identicalOps(original)
	}

	dmp := diffmatchpatch.New()
	c1, c2, lines := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffMain(c1, c2, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var ops []Operation
	pos := 0      // byte offset in original
	origLine := 0 // line index in original
	modLine := 0  // line index in modified

	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			op := Operation{Text: line, Position: pos, Length: len(line)}
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				op.Op = OpDelete
				op.Line = intp(origLine)
				pos += len(line)
				origLine++
			case diffmatchpatch.DiffInsert:
				op.Op = OpInsert
				op.Line = intp(modLine)
				modLine++
			default:
				op.Op = OpEqual
				op.Line = intp(origLine)
				pos += len(line)
				origLine++
				modLine++
			}
			ops = append(ops, op)
		}
	}
	return ops
}

// splitLines splits text into lines with their terminators retained. A final
// fragment without a trailing newline is still a line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			return lines
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
		if text == "" {
			return lines
		}
	}
}

func intp(v int) *int { return &v }
