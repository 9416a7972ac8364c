// suggest.go implements the AI-suggestion commands: creating a pending
// suggestion from file content, and browsing its changes for partial accept.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/store"
	"github.com/redlinehq/redline/internal/version"
)

var (
	suggestType   string
	suggestModel  string
	suggestPrompt string
)

func newSuggestCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "suggest <document-id> <file>",
		Short: "Record an AI-suggested edit as a pending version",
		Long: `Diff the suggested content against the document's latest major version
and store it as a pending AI-suggestion version carrying the diff.`,
		Args: cobra.ExactArgs(2),
		RunE: runSuggest,
	}
	c.Flags().StringVar(&suggestType, "type", "", "Suggestion type (e.g. rewrite, proofread)")
	c.Flags().StringVar(&suggestModel, "model", "", "Model that produced the suggestion")
	c.Flags().StringVar(&suggestPrompt, "prompt", "", "Prompt the suggestion was generated from")
	return c
}

func runSuggest(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[1])
	if err != nil {
		return PrintJSONError(fmt.Errorf("reading %s: %w", args[1], err))
	}

	mgr, closer, err := openManager()
	if err != nil {
		return PrintJSONError(err)
	}
	defer closer()
	ctx := cmd.Context()

	base, err := mgr.GetLatestVersion(ctx, args[0], store.TypeMajor, Caller())
	if err != nil {
		return PrintJSONError(fmt.Errorf("loading document %s: %w", args[0], err))
	}

	v, err := mgr.CreateAISuggestion(ctx, args[0], base.Content, string(content), version.SuggestionInfo{
		SuggestionType: suggestType,
		Model:          suggestModel,
		Prompt:         suggestPrompt,
	}, Caller())
	if err != nil {
		return PrintJSONError(err)
	}

	if JSON() {
		return PrintJSON(v.ToJSON(false))
	}
	fmt.Fprintf(Out(), "pending suggestion %s for %s (%d change blocks)\n",
		v.ID, v.DocumentID, v.Suggestion.Diff.Stats.ChangeBlocks)
	return nil
}

func newChangesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "changes <document-id> <suggestion-id>",
		Short: "List a suggestion's changes with their ids",
		Long:  `Show the track-changes entries of a pending suggestion. Pass the ids to "accept --changes" for partial acceptance.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closer, err := openManager()
			if err != nil {
				return PrintJSONError(err)
			}
			defer closer()

			changes, err := mgr.SuggestionChanges(cmd.Context(), args[0], args[1], Caller())
			if err != nil {
				return PrintJSONError(err)
			}

			if JSON() {
				return PrintJSON(changes)
			}
			for _, c := range changes {
				fmt.Fprintf(Out(), "%s  %-11s  @%d  %s\n", c.ID, c.Type, c.Position, c.FormattedText)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newChangesCmd())
}
