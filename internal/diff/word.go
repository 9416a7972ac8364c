// word.go implements the word-level algorithm.
//
// Tokens are aligned with a longest-common-subsequence matcher rather than
// diff-match-patch: the library only exposes character and line granularity,
// and mapping arbitrary token vocabularies through its line-mode rune
// indirection breaks down past 65k distinct tokens. The approach mirrors the
// line-mode structure (map to sequences, align, expand back).
//
// A replaced token run appears as its Delete ops followed by the paired
// Insert ops; the renderer merges such adjacent pairs into a single
// replacement change. With grouping enabled (the default), adjacent
// same-kind operations are merged into single spans for readability.
package diff

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultTokenPattern matches words, whitespace runs, and lone punctuation
// as separate tokens. Together the alternatives cover every character, so
// concatenating the tokens reproduces the input exactly.
const defaultTokenPattern = `\w+|\s+|[^\w\s]`

func compareWords(original, modified string, opts Options) ([]Operation, error) {
	if original == modified {
		return identicalOps(original), nil
	}

	pattern := opts.TokenPattern
	if pattern == "" {
		pattern = defaultTokenPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile token pattern %q: %w", pattern, err)
	}

	a := re.FindAllString(original, -1)
	b := re.FindAllString(modified, -1)

	ops := alignTokens(a, b)
	if opts.groupChanges() {
		ops = groupOps(ops)
	}
	return ops, nil
}

// alignTokens runs an LCS alignment over the token sequences and emits one
// operation per token, tracking byte positions in the original text.
func alignTokens(a, b []string) []Operation {
	// dp[i][j] = LCS length of a[i:] and b[j:].
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	var ops []Operation
	pos := 0
	emit := func(op Op, text string) {
		ops = append(ops, Operation{Op: op, Text: text, Position: pos, Length: len(text)})
		if op != OpInsert {
			pos += len(text)
		}
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			emit(OpEqual, a[i])
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			emit(OpDelete, a[i])
			i++
		default:
			emit(OpInsert, b[j])
			j++
		}
	}
	for ; i < len(a); i++ {
		emit(OpDelete, a[i])
	}
	for ; j < len(b); j++ {
		emit(OpInsert, b[j])
	}
	return ops
}

// groupOps merges adjacent operations of the same kind into single spans.
func groupOps(ops []Operation) []Operation {
	if len(ops) < 2 {
		return ops
	}
	grouped := make([]Operation, 0, len(ops))
	cur := ops[0]
	var text strings.Builder
	text.WriteString(cur.Text)

	flush := func() {
		cur.Text = text.String()
		cur.Length = len(cur.Text)
		grouped = append(grouped, cur)
	}

	for _, op := range ops[1:] {
		if op.Op == cur.Op {
			text.WriteString(op.Text)
			continue
		}
		flush()
		cur = op
		text.Reset()
		text.WriteString(op.Text)
	}
	flush()
	return grouped
}
