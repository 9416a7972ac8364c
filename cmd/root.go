// root.go defines the root command and CLI execution entry point.
//
// Design: commands that touch the version store open it lazily through
// openManager, so pure commands (compare) work without a database existing.
// Configuration is read once per invocation; flags win over config values.
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/config"
	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/store"
	"github.com/redlinehq/redline/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "Text diffing and document version lifecycle",
	Long: `Compare texts with character, line, or word level diffs, and manage
document versions: explicit saves, auto-saves with retention, and
AI-suggestion review with accept/reject/partial-accept.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&output, "output", "o", "", "Output format (json)")
	pf.StringVar(&db, "db", "", "Version database path (default ./redline.db, or REDLINE_DB)")
	pf.StringVar(&userID, "user", "", "Caller user id")
	pf.StringVar(&session, "session", "", "Caller session id")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// logger builds the CLI logger: human console output on stderr, debug level
// only with --verbose.
func logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// openManager opens the store and builds a manager from configuration.
// The returned close function must be deferred.
func openManager() (*version.Manager, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger()

	s, err := store.Open(DB(), log)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, nil, err
	}
	s.WithMaxContent(cfg.MaxContent())

	contextLines := cfg.ContextLines()
	mgr := version.New(s, version.Config{
		MinorRetention:    cfg.AutosaveRetention(),
		RejectedRetention: cfg.RejectedRetention(),
		DiffAlgorithm:     diff.Algorithm(cfg.Algorithm()),
		DiffOptions:       diff.Options{ContextLines: &contextLines},
	}).WithLogger(log)

	closer := func() {
		if err := s.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing store: %v\n", err)
		}
	}
	return mgr, closer, nil
}

// Execute runs the root command. Exit code 1 indicates error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
