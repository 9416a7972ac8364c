package diff

import (
	"errors"
	"testing"
)

func boolp(v bool) *bool { return &v }

func TestCompare_CharacterLevel(t *testing.T) {
	result, err := Compare("The quick brown fox", "The fast brown fox", Character, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	want := []Operation{
		{Op: OpEqual, Text: "The ", Position: 0, Length: 4},
		{Op: OpDelete, Text: "quick", Position: 4, Length: 5},
		{Op: OpInsert, Text: "fast", Position: 9, Length: 4},
		{Op: OpEqual, Text: " brown fox", Position: 9, Length: 10},
	}
	if len(result.Operations) != len(want) {
		t.Fatalf("Compare() produced %d operations, want %d: %+v", len(result.Operations), len(want), result.Operations)
	}
	for i, op := range result.Operations {
		if op != want[i] {
			t.Errorf("operation %d = %+v, want %+v", i, op, want[i])
		}
	}

	if result.Stats.CharsDeleted != 5 {
		t.Errorf("CharsDeleted = %d, want 5", result.Stats.CharsDeleted)
	}
	if result.Stats.CharsInserted != 4 {
		t.Errorf("CharsInserted = %d, want 4", result.Stats.CharsInserted)
	}
	if result.Stats.CharsUnchanged != 14 {
		t.Errorf("CharsUnchanged = %d, want 14", result.Stats.CharsUnchanged)
	}
	if result.Stats.ChangeBlocks != 1 {
		t.Errorf("ChangeBlocks = %d, want 1", result.Stats.ChangeBlocks)
	}
}

func TestCompare_IdenticalInputs(t *testing.T) {
	for _, alg := range []Algorithm{Character, Line, Word} {
		result, err := Compare("same text\n", "same text\n", alg, Options{})
		if err != nil {
			t.Fatalf("Compare(%s) error = %v", alg, err)
		}
		if len(result.Operations) != 1 || result.Operations[0].Op != OpEqual {
			t.Errorf("Compare(%s) operations = %+v, want single Equal", alg, result.Operations)
		}
		if result.Stats.PercentUnchanged != 100 {
			t.Errorf("Compare(%s) PercentUnchanged = %v, want 100", alg, result.Stats.PercentUnchanged)
		}
	}
}

func TestCompare_EmptyInputs(t *testing.T) {
	result, err := Compare("", "", Character, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(result.Operations) != 0 {
		t.Errorf("operations = %+v, want none", result.Operations)
	}
	if result.Stats.PercentUnchanged != 100 {
		t.Errorf("PercentUnchanged = %v, want 100", result.Stats.PercentUnchanged)
	}
}

func TestCompare_EmptyToContent(t *testing.T) {
	result, err := Compare("", "brand new", Character, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(result.Operations) != 1 {
		t.Fatalf("operations = %+v, want single Insert", result.Operations)
	}
	op := result.Operations[0]
	if op.Op != OpInsert || op.Text != "brand new" || op.Position != 0 {
		t.Errorf("operation = %+v, want Insert of whole text at 0", op)
	}
	if result.Stats.PercentInserted != 100 {
		t.Errorf("PercentInserted = %v, want 100", result.Stats.PercentInserted)
	}
}

func TestCompare_UnsupportedAlgorithm(t *testing.T) {
	_, err := Compare("a", "b", Algorithm("semantic"), Options{})
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("Compare() error = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestCompare_CaseInsensitive(t *testing.T) {
	result, err := Compare("Hello World", "hello world", Character, Options{CaseSensitive: boolp(false)})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(result.Operations) != 1 || result.Operations[0].Op != OpEqual {
		t.Errorf("operations = %+v, want single Equal after folding", result.Operations)
	}
	if result.Operations[0].Text != "hello world" {
		t.Errorf("text = %q, want folded form", result.Operations[0].Text)
	}
}

func TestCompare_IgnoreWhitespace(t *testing.T) {
	result, err := Compare("a   b\tc", "a b c", Character, Options{IgnoreWhitespace: true})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(result.Operations) != 1 || result.Operations[0].Op != OpEqual {
		t.Errorf("operations = %+v, want single Equal after collapsing whitespace", result.Operations)
	}
}

func TestCompare_LineLevel(t *testing.T) {
	original := "line one\nline two\nline three\n"
	modified := "line one\nline 2\nline three\n"

	result, err := Compare(original, modified, Line, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	type lineOp struct {
		op   Op
		text string
		line int
	}
	want := []lineOp{
		{OpEqual, "line one\n", 0},
		{OpDelete, "line two\n", 1},
		{OpInsert, "line 2\n", 1},
		{OpEqual, "line three\n", 2},
	}
	if len(result.Operations) != len(want) {
		t.Fatalf("operations = %+v, want %d entries", result.Operations, len(want))
	}
	for i, op := range result.Operations {
		if op.Op != want[i].op || op.Text != want[i].text {
			t.Errorf("operation %d = %+v, want %+v", i, op, want[i])
			continue
		}
		if op.Line == nil || *op.Line != want[i].line {
			t.Errorf("operation %d line = %v, want %d", i, op.Line, want[i].line)
		}
	}

	// Delete covers bytes [9,18); the paired insert lands at 18.
	if result.Operations[1].Position != 9 || result.Operations[2].Position != 18 {
		t.Errorf("positions = %d/%d, want 9/18",
			result.Operations[1].Position, result.Operations[2].Position)
	}
}

func TestCompare_WordLevel(t *testing.T) {
	result, err := Compare("The quick brown fox", "The fast brown fox", Word, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	want := []Operation{
		{Op: OpEqual, Text: "The ", Position: 0, Length: 4},
		{Op: OpDelete, Text: "quick", Position: 4, Length: 5},
		{Op: OpInsert, Text: "fast", Position: 9, Length: 4},
		{Op: OpEqual, Text: " brown fox", Position: 9, Length: 10},
	}
	if len(result.Operations) != len(want) {
		t.Fatalf("operations = %+v, want %d entries", result.Operations, len(want))
	}
	for i, op := range result.Operations {
		if op != want[i] {
			t.Errorf("operation %d = %+v, want %+v", i, op, want[i])
		}
	}
}

func TestCompare_WordLevelUngrouped(t *testing.T) {
	result, err := Compare("a b", "a c", Word, Options{GroupChanges: boolp(false)})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	// One operation per token: "a", " ", then the replaced token pair.
	want := []Operation{
		{Op: OpEqual, Text: "a", Position: 0, Length: 1},
		{Op: OpEqual, Text: " ", Position: 1, Length: 1},
		{Op: OpDelete, Text: "b", Position: 2, Length: 1},
		{Op: OpInsert, Text: "c", Position: 3, Length: 1},
	}
	if len(result.Operations) != len(want) {
		t.Fatalf("operations = %+v, want %d entries", result.Operations, len(want))
	}
	for i, op := range result.Operations {
		if op != want[i] {
			t.Errorf("operation %d = %+v, want %+v", i, op, want[i])
		}
	}
}

func TestCompare_BadTokenPattern(t *testing.T) {
	_, err := Compare("a", "b", Word, Options{TokenPattern: "["})
	if err == nil {
		t.Fatal("Compare() = nil error, want token pattern compile failure")
	}
}

func TestCalculateStats_ChangeBlocks(t *testing.T) {
	tests := []struct {
		name string
		ops  []Op
		want int
	}{
		{"no changes", []Op{OpEqual}, 0},
		{"single block", []Op{OpEqual, OpDelete, OpInsert, OpEqual}, 1},
		{"two blocks", []Op{OpEqual, OpDelete, OpInsert, OpEqual, OpDelete}, 2},
		{"leading block", []Op{OpInsert, OpEqual, OpDelete}, 2},
		{"all changed", []Op{OpDelete, OpInsert}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := make([]Operation, len(tt.ops))
			for i, o := range tt.ops {
				ops[i] = Operation{Op: o, Text: "x", Length: 1}
			}
			got := calculateStats(ops, len(ops), len(ops)).ChangeBlocks
			if got != tt.want {
				t.Errorf("ChangeBlocks = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single terminated", "a\n", []string{"a\n"}},
		{"single unterminated", "a", []string{"a"}},
		{"mixed", "a\nb\nc", []string{"a\n", "b\n", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOptions_Context(t *testing.T) {
	tests := []struct {
		name  string
		lines *int
		want  int
	}{
		{"unset defaults", nil, 3},
		{"explicit zero", intp(0), 0},
		{"explicit value", intp(5), 5},
		{"negative defaults", intp(-1), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Options{ContextLines: tt.lines}).Context(); got != tt.want {
				t.Errorf("Context() = %d, want %d", got, tt.want)
			}
		})
	}
}
