// resolve.go implements accept and reject for pending AI suggestions.
// Accept with --changes applies only the named change ids.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/store"
)

var acceptChanges []string

func newAcceptCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "accept <document-id> <suggestion-id>",
		Short: "Accept a pending suggestion as a new major version",
		Long: `Accept a pending AI suggestion, creating a new major version from its
content and marking the suggestion accepted. With --changes only the listed
change ids are applied to the latest major version and the suggestion is
marked partially accepted.`,
		Args: cobra.ExactArgs(2),
		RunE: runAccept,
	}
	c.Flags().StringSliceVar(&acceptChanges, "changes", nil, "Change ids to apply (comma-separated); omit to accept everything")
	return c
}

func runAccept(cmd *cobra.Command, args []string) error {
	mgr, closer, err := openManager()
	if err != nil {
		return PrintJSONError(err)
	}
	defer closer()
	ctx := cmd.Context()

	var v *store.Version
	if len(acceptChanges) > 0 {
		v, err = mgr.PartiallyAcceptSuggestion(ctx, args[0], args[1], acceptChanges, Caller())
	} else {
		v, err = mgr.AcceptSuggestion(ctx, args[0], args[1], Caller())
	}
	if err != nil {
		return PrintJSONError(err)
	}

	if JSON() {
		return PrintJSON(v.ToJSON(false))
	}
	fmt.Fprintf(Out(), "accepted %s: %s version %d (%s)\n", args[1], v.Type, v.Number, v.ID)
	return nil
}

func newRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <document-id> <suggestion-id>",
		Short: "Reject a pending suggestion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closer, err := openManager()
			if err != nil {
				return PrintJSONError(err)
			}
			defer closer()

			if err := mgr.RejectSuggestion(cmd.Context(), args[0], args[1], Caller()); err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]string{"suggestion_id": args[1], "status": string(store.StatusRejected)})
			}
			fmt.Fprintf(Out(), "rejected %s\n", args[1])
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newAcceptCmd())
	rootCmd.AddCommand(newRejectCmd())
}
