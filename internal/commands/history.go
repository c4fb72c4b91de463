package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-home/tally/internal/importlog"
)

func newHistoryCommand() *cobra.Command {
	var repoDir string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past import runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			entries, err := importlog.Read(dir)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			renderHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "data directory")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent N runs")
	return cmd
}
