package commands

import (
	"github.com/spf13/cobra"

	"github.com/tally-home/tally/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Household budget statement importer",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(),
		newRulesCommand(),
		newServeCommand(),
		newHistoryCommand(),
	)

	return rootCmd
}
