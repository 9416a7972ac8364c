// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Commands read flag values through accessor functions rather than touching
// the variables directly, and tests can swap the output writer.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/redlinehq/redline/internal/store"
)

var validOutputFormats = []string{"json"}

var (
	output  string
	db      string
	userID  string
	session string
	verbose bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// DB returns the resolved database path.
// Priority: --db flag > REDLINE_DB env var > ./redline.db.
func DB() string {
	if db != "" {
		return db
	}
	if env := os.Getenv("REDLINE_DB"); env != "" {
		return env
	}
	return "redline.db"
}

// Caller returns the owner identity from the --user/--session flags.
func Caller() store.Owner {
	return store.Owner{UserID: userID, SessionID: session}
}

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to indented JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if !JSON() {
		return nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error as JSON if JSON output is requested,
// otherwise returns it for cobra's normal handling.
func PrintJSONError(err error) error {
	if !JSON() || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return err
}
