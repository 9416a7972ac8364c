// save.go implements the "redline save" and "redline autosave" commands for
// creating Major and Minor versions from file content.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/store"
)

var saveMessage string

func newSaveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "save <document-id> <file>",
		Short: "Save a new major version of a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, args, store.TypeMajor)
		},
	}
	c.Flags().StringVarP(&saveMessage, "message", "m", "", "Change description")
	return c
}

func newAutosaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "autosave <document-id> <file>",
		Short: "Save a new auto-save version of a document",
		Long:  `Create a Minor version. Auto-saves are pruned once older than the configured retention window.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, args, store.TypeMinor)
		},
	}
}

func runSave(cmd *cobra.Command, args []string, t store.Type) error {
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
	var v *store.Version
	if t == store.TypeMajor {
		v, err = mgr.CreateVersion(ctx, args[0], string(content), Caller(), saveMessage)
	} else {
		v, err = mgr.CreateAutoSave(ctx, args[0], string(content), Caller())
	}
	if err != nil {
		return PrintJSONError(err)
	}

	if JSON() {
		return PrintJSON(v.ToJSON(false))
	}
	fmt.Fprintf(Out(), "%s version %d of %s (%s)\n", v.Type, v.Number, v.DocumentID, v.ID)
	return nil
}

func init() {
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newAutosaveCmd())
}
