package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(env *Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cargo-ws",
		Short: "Inspect Cargo workspaces and synthesize cargo invocations",
		Long: `A CLI tool for working with Cargo workspaces from editors and scripts.

cargo-ws discovers packages, targets and profiles, remembers a selection per
workspace and turns that selection into ready-to-run cargo arguments.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `cargo-ws status` when no subcommand is provided.
			return (&StatusCommand{env: env}).Run(cmd, args)
		},
	}

	rootCmd.PersistentFlags().String(rootFlag, "", "Directory to locate the Cargo project from (default: working directory)")
	rootCmd.PersistentFlags().String(logLevelFlag, "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(NewStatusCommand(env))
	rootCmd.AddCommand(NewPackagesCommand(env))
	rootCmd.AddCommand(NewTargetsCommand(env))
	rootCmd.AddCommand(NewProfilesCommand(env))
	rootCmd.AddCommand(NewArgsCommand(env))
	rootCmd.AddCommand(NewExecCommand(env))
	rootCmd.AddCommand(NewSelectCommand(env))
	rootCmd.AddCommand(NewPickCommand(env))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand(NewOSEnv())

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
