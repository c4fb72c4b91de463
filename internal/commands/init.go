package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-home/tally/internal/config"
	"github.com/tally-home/tally/internal/gitops"
	"github.com/tally-home/tally/internal/id"
	"github.com/tally-home/tally/internal/rules"
)

const rulesFile = "rules/categories.yaml"

func newInitCommand() *cobra.Command {
	var name string
	var householdID string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Tally data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if householdID == "" {
				householdID = id.New()
			}

			return runInit(cmd, absDir, name, householdID, !noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "household name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&householdID, "household-id", "", "household id (default: generated)")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, householdID string, useGit bool) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	dirs := []string{
		"rules",
		"logs",
		"ledger",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(householdID, name)
	cfg.Import.RulesFile = rulesFile
	if !useGit {
		cfg.Git.AutoCommit = false
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := rules.Default().Save(filepath.Join(dir, rulesFile)); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	// Secrets such as DATABASE_URL live in .env and stay out of history.
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	out := cmd.OutOrStdout()
	if !useGit {
		fmt.Fprintf(out, "Initialized Tally data directory at %s\n", dir)
		return nil
	}
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git not found (use --no-git to skip): %w", err)
	}

	repo := gitops.Repo{Dir: dir, AuthorName: cfg.Git.AuthorName, AuthorEmail: cfg.Git.AuthorEmail}
	if err := repo.Init(); err != nil {
		return err
	}
	hash, err := repo.CommitAll("init: " + name)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized Tally data directory at %s (%s)\n", dir, hash)
	return nil
}
