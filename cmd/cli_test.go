package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testOldText = "The quick brown fox jumps over the lazy dog\n"
	testNewText = "The fast brown fox leaps over the lazy dog\n"
)

func TestCompare(t *testing.T) {
	t.Run("inline", func(t *testing.T) {
		env := newTestEnv(t)
		old := env.write("old.txt", testOldText)
		updated := env.write("new.txt", testNewText)

		out := env.run("compare", old, updated)
		env.contains(out, "[-quick-]{+fast+}")
		env.contains(out, "[-jumps-]{+leaps+}")
	})

	t.Run("unified", func(t *testing.T) {
		env := newTestEnv(t)
		old := env.write("old.txt", testOldText)
		updated := env.write("new.txt", testNewText)

		out := env.run("compare", "-a", "line", "-F", "unified", old, updated)
		env.contains(out, "--- original")
		env.contains(out, "+++ modified")
		env.contains(out, "-The quick brown fox jumps over the lazy dog")
		env.contains(out, "+The fast brown fox leaps over the lazy dog")
	})

	t.Run("track changes", func(t *testing.T) {
		env := newTestEnv(t)
		old := env.write("old.txt", testOldText)
		updated := env.write("new.txt", testNewText)

		out := env.run("compare", "-a", "word", "-F", "track_changes", old, updated)
		env.contains(out, "change-1")
		env.contains(out, "change-2")
		env.contains(out, "replacement")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)
		old := env.write("old.txt", testOldText)
		updated := env.write("new.txt", testNewText)

		out := env.run("compare", "-o", "json", old, updated)
		env.contains(out, `"algorithm"`)
		env.contains(out, `"statistics"`)
		env.contains(out, `"chars_deleted"`)
	})

	t.Run("bad algorithm", func(t *testing.T) {
		env := newTestEnv(t)
		old := env.write("old.txt", testOldText)
		updated := env.write("new.txt", testNewText)

		out, err := env.runErr("compare", "-a", "semantic", old, updated)
		assert.Error(t, err, "output: %s", out)
	})
}

func TestSaveAndHistory(t *testing.T) {
	env := newTestEnv(t)
	draft := env.write("draft.txt", testOldText)
	revised := env.write("revised.txt", testNewText)

	out := env.run("save", "doc-1", draft, "-m", "first draft")
	env.contains(out, "major version 1 of doc-1")

	out = env.run("autosave", "doc-1", revised)
	env.contains(out, "minor version 2 of doc-1")

	out = env.run("history", "doc-1")
	env.contains(out, "first draft")
	env.contains(out, "2 of 2 versions")

	// Type filter.
	out = env.run("history", "doc-1", "-t", "major")
	env.contains(out, "1 of 1 versions")
}

func TestSuggestionLifecycle(t *testing.T) {
	t.Run("accept", func(t *testing.T) {
		env := newTestEnv(t)
		draft := env.write("draft.txt", testOldText)
		suggested := env.write("suggested.txt", testNewText)

		env.run("save", "doc-1", draft, "-m", "base")
		out := env.run("suggest", "doc-1", suggested, "--model", "test-model")
		env.contains(out, "pending suggestion")
		sugID := env.suggestionID("doc-1")

		out = env.run("accept", "doc-1", sugID)
		env.contains(out, "accepted "+sugID)
		env.contains(out, "major version")

		// Accepting again loses to the already-resolved suggestion.
		out, err := env.runErr("accept", "doc-1", sugID)
		assert.Error(t, err, "output: %s", out)
	})

	t.Run("reject", func(t *testing.T) {
		env := newTestEnv(t)
		draft := env.write("draft.txt", testOldText)
		suggested := env.write("suggested.txt", testNewText)

		env.run("save", "doc-1", draft, "-m", "base")
		env.run("suggest", "doc-1", suggested)
		sugID := env.suggestionID("doc-1")

		out := env.run("reject", "doc-1", sugID)
		env.contains(out, "rejected "+sugID)

		// No new major version appears.
		out = env.run("history", "doc-1", "-t", "major")
		env.contains(out, "1 of 1 versions")
	})

	t.Run("partial accept", func(t *testing.T) {
		env := newTestEnv(t)
		draft := env.write("draft.txt", testOldText)
		suggested := env.write("suggested.txt", testNewText)

		env.run("save", "doc-1", draft, "-m", "base")
		env.run("suggest", "doc-1", suggested)
		sugID := env.suggestionID("doc-1")

		out := env.run("changes", "doc-1", sugID)
		env.contains(out, "change-1")
		first := firstField(out)

		out = env.run("accept", "doc-1", sugID, "--changes", first)
		env.contains(out, "accepted "+sugID)

		out = env.run("history", "doc-1", "-t", "major")
		env.contains(out, "1 of 2 changes")
	})
}

func TestOwnership(t *testing.T) {
	env := newTestEnv(t)
	draft := env.write("draft.txt", testOldText)

	env.run("save", "doc-1", draft, "--session", "sess-1")

	// Another caller sees nothing.
	out := env.run("history", "doc-1", "--user", "bob")
	env.contains(out, "0 of 1 versions")

	out = env.run("transfer", "doc-1", "sess-1", "alice")
	env.contains(out, "transferred 1 versions to alice")

	out = env.run("history", "doc-1", "--user", "alice")
	env.contains(out, "1 of 1 versions")
}

func TestCleanupCommand(t *testing.T) {
	env := newTestEnv(t)
	draft := env.write("draft.txt", testOldText)

	env.run("save", "doc-1", draft)
	env.run("autosave", "doc-1", draft)

	// Nothing is old enough to prune.
	out := env.run("cleanup", "doc-1")
	env.contains(out, "deleted 0 auto-saves, 0 rejected suggestions")
}

// suggestionID returns the id of the document's latest AI-suggestion version
// via the JSON history output.
func (e *testEnv) suggestionID(docID string) string {
	e.t.Helper()
	out := e.run("history", docID, "-t", "ai_suggestion", "-o", "json")

	var listing struct {
		Versions []struct {
			ID string `json:"id"`
		} `json:"versions"`
	}
	if err := json.Unmarshal([]byte(out), &listing); err != nil {
		e.t.Fatalf("decoding history JSON: %v\noutput: %s", err, out)
	}
	if len(listing.Versions) == 0 {
		e.t.Fatalf("no suggestion versions for %s:\n%s", docID, out)
	}
	return listing.Versions[0].ID
}
