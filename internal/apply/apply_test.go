package apply

import (
	"strings"
	"testing"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/render"
)

func changesFor(t *testing.T, original, modified string, alg diff.Algorithm) []render.Change {
	t.Helper()
	d, err := diff.Compare(original, modified, alg, diff.Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	return render.Changes(d, render.Options{})
}

func allIDs(changes []render.Change) []string {
	ids := make([]string, len(changes))
	for i, c := range changes {
		ids[i] = c.ID
	}
	return ids
}

// Applying every change must reproduce the modified text exactly, whichever
// algorithm produced the diff.
func TestSelected_FullApplicationRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		original string
		modified string
	}{
		{"word swap", "The quick brown fox jumps", "The fast brown fox leaps"},
		{"pure insert", "hello world", "hello brave new world"},
		{"pure delete", "strike the extra words here", "strike here"},
		{"prefix change", "draft: report", "final: report"},
		{"suffix change", "report v1", "report v2 final"},
		{"multiline", "one\ntwo\nthree\n", "one\n2\nthree\nfour\n"},
		{"everything replaced", "abc", "xyz"},
		{"from empty", "", "created from nothing"},
		{"to empty", "soon gone", ""},
	}

	for _, tt := range tests {
		for _, alg := range []diff.Algorithm{diff.Character, diff.Line, diff.Word} {
			t.Run(tt.name+"/"+string(alg), func(t *testing.T) {
				changes := changesFor(t, tt.original, tt.modified, alg)

				got, err := Selected(tt.original, changes, allIDs(changes))
				if err != nil {
					t.Fatalf("Selected() error = %v", err)
				}
				if got != tt.modified {
					t.Errorf("Selected() = %q, want %q", got, tt.modified)
				}
			})
		}
	}
}

// Line diffs emit one addition per inserted line, all anchored at the same
// original-text offset. Their relative order must survive application.
func TestSelected_SamePositionAdditions(t *testing.T) {
	original := "a\nb\n"
	modified := "a\nx\ny\nb\n"
	changes := changesFor(t, original, modified, diff.Line)

	got, err := Selected(original, changes, allIDs(changes))
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if got != modified {
		t.Errorf("Selected() = %q, want %q", got, modified)
	}

	// The same holds for a hand-built pair regardless of listing position.
	pair := []render.Change{
		{ID: "c1", Type: render.Addition, Position: 2, NewText: "x\n"},
		{ID: "c2", Type: render.Addition, Position: 2, NewText: "y\n"},
	}
	got, err = Selected(original, pair, []string{"c2", "c1"})
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if got != modified {
		t.Errorf("Selected(pair) = %q, want %q", got, modified)
	}
}

func TestSelected_Subset(t *testing.T) {
	original := "The quick brown fox jumps over the lazy dog"
	modified := "The fast brown fox leaps over the lazy dog"
	changes := changesFor(t, original, modified, diff.Word)
	if len(changes) != 2 {
		t.Fatalf("changes = %+v, want 2 replacements", changes)
	}

	// First change only: quick -> fast.
	got, err := Selected(original, changes, []string{changes[0].ID})
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	want := "The fast brown fox jumps over the lazy dog"
	if got != want {
		t.Errorf("Selected(first) = %q, want %q", got, want)
	}

	// Second change only: jumps -> leaps.
	got, err = Selected(original, changes, []string{changes[1].ID})
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	want = "The quick brown fox leaps over the lazy dog"
	if got != want {
		t.Errorf("Selected(second) = %q, want %q", got, want)
	}
}

func TestSelected_NoSelection(t *testing.T) {
	original := "unchanged text"
	changes := changesFor(t, original, "changed text", diff.Word)

	got, err := Selected(original, changes, nil)
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if got != original {
		t.Errorf("Selected() = %q, want original unchanged", got)
	}
}

func TestSelected_UnknownIDsIgnored(t *testing.T) {
	original := "some text"
	changes := changesFor(t, original, "some other text", diff.Word)

	ids := append(allIDs(changes), "change-99", "bogus")
	got, err := Selected(original, changes, ids)
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if got != "some other text" {
		t.Errorf("Selected() = %q, want %q", got, "some other text")
	}
}

func TestSelected_OutOfBounds(t *testing.T) {
	changes := []render.Change{
		{ID: "c1", Type: render.Deletion, Position: 5, Length: 10},
	}
	_, err := Selected("tiny", changes, []string{"c1"})
	if err == nil {
		t.Fatal("Selected() = nil error, want out-of-bounds failure")
	}
	if !strings.Contains(err.Error(), "c1") {
		t.Errorf("error %q does not name the offending change", err)
	}
}

func TestGroupSuggestions(t *testing.T) {
	d, err := diff.Compare(
		"The quick brown fox jumps over the lazy dog",
		"The fast brown fox leaps over the lazy dog",
		diff.Word, diff.Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	groups := GroupSuggestions(d.Operations, nil)
	if len(groups) != 2 {
		t.Fatalf("GroupSuggestions() = %+v, want 2 groups", groups)
	}

	if groups[0].OriginalText != "quick" || groups[0].SuggestedText != "fast" {
		t.Errorf("group 0 = %q -> %q, want quick -> fast", groups[0].OriginalText, groups[0].SuggestedText)
	}
	if groups[1].OriginalText != "jumps" || groups[1].SuggestedText != "leaps" {
		t.Errorf("group 1 = %q -> %q, want jumps -> leaps", groups[1].OriginalText, groups[1].SuggestedText)
	}
	if groups[0].ID != "suggestion-1" || groups[1].ID != "suggestion-2" {
		t.Errorf("ids = %q, %q, want sequential", groups[0].ID, groups[1].ID)
	}
	if groups[0].Position != 4 {
		t.Errorf("group 0 position = %d, want 4", groups[0].Position)
	}
}

func TestGroupSuggestions_NoChanges(t *testing.T) {
	d, err := diff.Compare("same", "same", diff.Word, diff.Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if groups := GroupSuggestions(d.Operations, nil); len(groups) != 0 {
		t.Errorf("GroupSuggestions() = %+v, want none", groups)
	}
}
