package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect category rules",
	}
	rulesCmd.AddCommand(newRulesListCommand(), newRulesTestCommand())
	return rulesCmd
}

func newRulesListCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the category rules in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir, io.Discard)
			if err != nil {
				return err
			}
			renderRules(cmd.OutOrStdout(), ws.rules)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "data directory")
	return cmd
}

func newRulesTestCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "test <description>",
		Short: "Show how a description would be classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir, io.Discard)
			if err != nil {
				return err
			}
			desc := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "expense: %s\n", ws.rules.Expense(desc))
			fmt.Fprintf(out, "income:  %s\n", ws.rules.Income(desc))
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "data directory")
	return cmd
}
