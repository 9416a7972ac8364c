// Package diff computes structured diffs between two text strings.
//
// Three algorithms are supported: character level (Myers diff via
// diff-match-patch with semantic and efficiency cleanup), line level
// (line-oriented diff with per-line operations), and word level (token
// alignment via longest common subsequence). All three produce the same
// operation shape, so downstream rendering and selective application work
// regardless of which algorithm produced the result.
//
// Offsets and lengths are byte counts into the original text. An Insert
// operation carries the offset at which its text is inserted and does not
// advance the running offset past itself - selective application depends on
// every position being expressed relative to the original text.
package diff

import (
	"errors"
	"fmt"
	"time"
)

// Algorithm selects the diff strategy.
type Algorithm string

const (
	// Character diffs at character granularity (Myers, diff-match-patch).
	Character Algorithm = "character"
	// Line diffs whole lines and annotates operations with line indexes.
	Line Algorithm = "line"
	// Word diffs at token granularity (words, whitespace runs, punctuation).
	Word Algorithm = "word"
)

// ErrUnsupportedAlgorithm is returned by Compare for an unknown Algorithm.
// Callers should check with errors.Is.
var ErrUnsupportedAlgorithm = errors.New("unsupported diff algorithm")

// Op classifies a single diff operation. Values match the diff-match-patch
// convention so conversions are direct.
type Op int

const (
	// OpDelete removes text present in the original.
	OpDelete Op = -1
	// OpEqual marks text common to both inputs.
	OpEqual Op = 0
	// OpInsert adds text present only in the modified input.
	OpInsert Op = 1
)

// String returns the wire name of the operation kind.
func (o Op) String() string {
	switch o {
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "equal"
	}
}

// Operation is a single span of a diff. Position is the byte offset into the
// original text at which the operation applies; for OpInsert it is the offset
// at which the text is inserted, not advanced past itself. Line is set only
// by the line-level algorithm (0-based line index).
type Operation struct {
	Op       Op     `json:"op"`
	Text     string `json:"text"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
	Line     *int   `json:"line,omitempty"`
}

// Options configures a comparison. Pointer fields distinguish "unset" from
// an explicit false so defaults can apply; use the accessor methods rather
// than reading pointer fields directly.
type Options struct {
	// CaseSensitive defaults to true. When false both inputs are lower-cased
	// before comparison; the folding is destructive - operation text carries
	// the folded form, not the original casing.
	CaseSensitive *bool `json:"case_sensitive,omitempty"`

	// IgnoreWhitespace collapses runs of whitespace to a single space before
	// comparison. Destructive, like case folding.
	IgnoreWhitespace bool `json:"ignore_whitespace,omitempty"`

	// CleanupSemantic aligns character-diff boundaries with word and
	// punctuation boundaries. Character level only. Defaults to true.
	CleanupSemantic *bool `json:"cleanup_semantic,omitempty"`

	// CleanupEfficiency removes tiny diffs sandwiched between larger matches.
	// Character level only. Defaults to true.
	CleanupEfficiency *bool `json:"cleanup_efficiency,omitempty"`

	// ContextLines is recorded for later unified rendering of line-level
	// results. Nil means the default of 3; an explicit 0 is honored.
	ContextLines *int `json:"context_lines,omitempty"`

	// TokenPattern overrides the word-level tokenizer regexp. Empty means
	// the default (words, whitespace runs, and lone punctuation).
	TokenPattern string `json:"token_pattern,omitempty"`

	// GroupChanges merges adjacent same-kind word-level operations into
	// single larger spans. Defaults to true.
	GroupChanges *bool `json:"group_changes,omitempty"`
}

const defaultContextLines = 3

func (o Options) caseSensitive() bool     { return o.CaseSensitive == nil || *o.CaseSensitive }
func (o Options) cleanupSemantic() bool   { return o.CleanupSemantic == nil || *o.CleanupSemantic }
func (o Options) cleanupEfficiency() bool { return o.CleanupEfficiency == nil || *o.CleanupEfficiency }
func (o Options) groupChanges() bool      { return o.GroupChanges == nil || *o.GroupChanges }

// Context returns the effective context-line count for unified rendering.
func (o Options) Context() int {
	if o.ContextLines == nil || *o.ContextLines < 0 {
		return defaultContextLines
	}
	return *o.ContextLines
}

// Metadata records the inputs and settings a Result was produced from, so a
// renderer can regenerate views (for example a unified diff) later.
type Metadata struct {
	OriginalText   string  `json:"original_text"`
	ModifiedText   string  `json:"modified_text"`
	OriginalLength int     `json:"original_length"`
	ModifiedLength int     `json:"modified_length"`
	ComputedAt     int64   `json:"computed_at"`
	Options        Options `json:"options"`
}

// Result is an immutable structured diff: the ordered operations plus the
// metadata and statistics computed from them.
type Result struct {
	Algorithm  Algorithm   `json:"algorithm"`
	Operations []Operation `json:"operations"`
	Metadata   Metadata    `json:"metadata"`
	Stats      Statistics  `json:"statistics"`
}

// Engine computes diffs. It is stateless; a single Engine is safe for
// concurrent use from multiple goroutines.
type Engine struct{}

// NewEngine returns a diff engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compare diffs original against modified using the selected algorithm and
// returns the structured result with statistics attached.
//
// Two identical inputs yield exactly one Equal operation spanning the whole
// text; two empty inputs yield zero operations. Comparing empty to non-empty
// yields a single Insert covering the entire modified text.
func (e *Engine) Compare(original, modified string, algorithm Algorithm, opts Options) (*Result, error) {
	a, b := normalize(original, opts), normalize(modified, opts)

	var ops []Operation
	var err error
	switch algorithm {
	case Character:
		ops = compareChars(a, b, opts)
	case Line:
		ops = compareLines(a, b)
	case Word:
		ops, err = compareWords(a, b, opts)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}

	return &Result{
		Algorithm:  algorithm,
		Operations: ops,
		Metadata: Metadata{
			OriginalText:   a,
			ModifiedText:   b,
			OriginalLength: len(a),
			ModifiedLength: len(b),
			ComputedAt:     time.Now().Unix(),
			Options:        opts,
		},
		Stats: calculateStats(ops, len(a), len(b)),
	}, nil
}

// Compare is a convenience wrapper around a throwaway Engine.
func Compare(original, modified string, algorithm Algorithm, opts Options) (*Result, error) {
	return NewEngine().Compare(original, modified, algorithm, opts)
}
