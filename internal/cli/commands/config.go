package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/findsqlite/internal/cli/config"
)

// ConfigLoader loads the effective configuration for cmd.
type ConfigLoader func(cmd *cobra.Command) (*config.Config, error)

// NewConfigCommand creates the config command, which prints the merged
// configuration as YAML.
func NewConfigCommand(load ConfigLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration that a scan would use, after merging built-in
defaults, findsqlite.yaml, FINDSQLITE_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				cmd.PrintErrf("# from %s\n", cfg.File)
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}
