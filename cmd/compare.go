// compare.go implements the "redline compare" command for diffing two files.
//
// Compare is pure: it never opens the version database. Output defaults to
// the inline format with ANSI colour when stdout is a terminal; --raw or a
// pipe disables colour.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/render"
)

var (
	compareAlgorithm string
	compareFormat    string
	compareContext   int
	compareRaw       bool
)

func newCompareCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "compare <old-file> <new-file>",
		Short: "Show differences between two files",
		Long: `Compare two files and render the differences.

Examples:
  redline compare old.txt new.txt                  # inline markers
  redline compare -a line -F unified old.txt new.txt
  redline compare -a word old.txt new.txt`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}
	c.Flags().StringVarP(&compareAlgorithm, "algorithm", "a", "character", "Diff algorithm (character, line, word)")
	c.Flags().StringVarP(&compareFormat, "format", "F", "inline", "Output format (track_changes, inline, unified)")
	c.Flags().IntVar(&compareContext, "context", 3, "Context lines for unified output")
	c.Flags().BoolVar(&compareRaw, "raw", false, "Output without colour")
	return c
}

func runCompare(_ *cobra.Command, args []string) error {
	oldBytes, err := os.ReadFile(args[0])
	if err != nil {
		return PrintJSONError(fmt.Errorf("reading %s: %w", args[0], err))
	}
	newBytes, err := os.ReadFile(args[1])
	if err != nil {
		return PrintJSONError(fmt.Errorf("reading %s: %w", args[1], err))
	}

	d, err := diff.Compare(string(oldBytes), string(newBytes),
		diff.Algorithm(compareAlgorithm), diff.Options{ContextLines: &compareContext})
	if err != nil {
		return PrintJSONError(err)
	}
	formatted, err := render.Render(d, render.Format(compareFormat), render.Options{ContextLines: &compareContext})
	if err != nil {
		return PrintJSONError(err)
	}

	if JSON() {
		return PrintJSON(map[string]any{
			"algorithm":  d.Algorithm,
			"statistics": d.Stats,
			"rendered":   formatted,
		})
	}

	switch formatted.Format {
	case render.TrackChanges:
		for _, c := range formatted.Changes {
			fmt.Fprintf(Out(), "%s  %-11s  @%d  %s\n", c.ID, c.Type, c.Position, c.FormattedText)
		}
	default:
		text := formatted.Text
		if !compareRaw && term.IsTerminal(int(os.Stdout.Fd())) {
			text = colourise(formatted.Format, text)
		}
		fmt.Fprintln(Out(), text)
	}
	return nil
}

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiReset = "\033[0m"
)

// colourise adds ANSI colours: marker spans for inline output, line
// prefixes for unified output.
func colourise(format render.Format, s string) string {
	if format == render.Inline {
		m := render.DefaultMarkers()
		s = strings.ReplaceAll(s, m.DeleteOpen, ansiRed+m.DeleteOpen)
		s = strings.ReplaceAll(s, m.DeleteClose, m.DeleteClose+ansiReset)
		s = strings.ReplaceAll(s, m.InsertOpen, ansiGreen+m.InsertOpen)
		s = strings.ReplaceAll(s, m.InsertClose, m.InsertClose+ansiReset)
		return s
	}

	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		switch {
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			b.WriteString(ansiRed + line + ansiReset)
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			b.WriteString(ansiGreen + line + ansiReset)
		default:
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func init() {
	rootCmd.AddCommand(newCompareCmd())
}
