package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup <document-id>",
		Short: "Delete expired auto-saves and rejected suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closer, err := openManager()
			if err != nil {
				return PrintJSONError(err)
			}
			defer closer()

			minor, rejected, err := mgr.Cleanup(cmd.Context(), args[0])
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]int64{"minor_deleted": minor, "rejected_deleted": rejected})
			}
			fmt.Fprintf(Out(), "deleted %d auto-saves, %d rejected suggestions\n", minor, rejected)
			return nil
		},
	}
}

func newTransferCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "transfer <document-id> <session-id> <user-id>",
		Short: "Move a session's versions to a user account",
		Long: `Reassign every version of a document that is owned by the given
anonymous session to the given user. Used when a visitor signs in.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closer, err := openManager()
			if err != nil {
				return PrintJSONError(err)
			}
			defer closer()

			n, err := mgr.TransferOwnership(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]int64{"transferred": n})
			}
			fmt.Fprintf(Out(), "transferred %d versions to %s\n", n, args[2])
			return nil
		},
	}
	return c
}

func init() {
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newTransferCmd())
}
