package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/store"
)

var (
	historyLimit int
	historySkip  int
	historyType  string
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history <document-id>",
		Short: "List a document's versions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}
	c.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of versions to show (0 for all)")
	c.Flags().IntVar(&historySkip, "skip", 0, "Number of versions to skip")
	c.Flags().StringVarP(&historyType, "type", "t", "", "Filter by version type (major, minor, ai_suggestion)")
	return c
}

func runHistory(cmd *cobra.Command, args []string) error {
	mgr, closer, err := openManager()
	if err != nil {
		return PrintJSONError(err)
	}
	defer closer()

	versions, total, err := mgr.ListVersions(cmd.Context(), args[0], store.Type(historyType), historyLimit, historySkip, Caller())
	if err != nil {
		return PrintJSONError(err)
	}

	if JSON() {
		out := make([]store.VersionJSON, 0, len(versions))
		for i := range versions {
			out = append(out, versions[i].ToJSON(false))
		}
		return PrintJSON(map[string]any{"versions": out, "total": total})
	}

	for i := range versions {
		v := &versions[i]
		when := time.Unix(v.CreatedAt, 0).UTC().Format(time.RFC3339)
		desc := v.ChangeDescription
		if v.Type == store.TypeAISuggestion && v.Suggestion != nil {
			desc = fmt.Sprintf("[%s]", v.Suggestion.Status)
		}
		fmt.Fprintf(Out(), "v%-4d %-13s %s  %s  %s\n", v.Number, v.Type, when, v.ID, desc)
	}
	fmt.Fprintf(Out(), "%d of %d versions\n", len(versions), total)
	return nil
}

func init() {
	rootCmd.AddCommand(newHistoryCmd())
}
