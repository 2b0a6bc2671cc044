// Package cli provides the command-line interface for findsqlite.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/findsqlite/internal/cli/commands"
	"github.com/leapstack-labs/findsqlite/internal/cli/config"
	"github.com/leapstack-labs/findsqlite/internal/finder"
	"github.com/leapstack-labs/findsqlite/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "findsqlite [flags] <path>",
		Short: "Find SQLite databases under a path",
		Long: `findsqlite walks a directory tree and reports every file that is a
SQLite 3 database, judged by its header rather than its name.

For each database it can print file metadata (--meta) and the table, view
and index definitions from its catalog (--schema). Schema SQL is compacted
to one line by default, pretty-printed with --pretty, or left untouched with
--no-fmt.`,
		Example: `  findsqlite ~/Library
  findsqlite -s -p /var/lib
  findsqlite -m --sep '---' .`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return scan(cmd, cfg, args[0])
		},
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./findsqlite.yaml)")
	config.RegisterFlags(rootCmd.PersistentFlags())
	config.RegisterLogFlags(rootCmd.PersistentFlags())

	_ = rootCmd.RegisterFlagCompletionFunc("log", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error", "off"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{logging.FormatAuto, logging.FormatText, logging.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewConfigCommand(func(cmd *cobra.Command) (*config.Config, error) {
		return config.Load(cfgFile, cmd.Flags())
	}))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// scan runs one discovery over root with the loaded configuration.
func scan(cmd *cobra.Command, cfg *config.Config, root string) error {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log, cfg.LogFormat)
	if err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Debug("using config file", "path", cfg.File)
	}

	opts := cfg.FinderOptions()
	opts.Logger = logger

	stats, err := finder.New(opts).Run(cmd.Context(), root, cmd.OutOrStdout())
	if cfg.Stats {
		stats.Render(cmd.ErrOrStderr())
	}
	return err
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
