package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-home/tally/internal/dedup"
	"github.com/tally-home/tally/internal/importer"
	"github.com/tally-home/tally/internal/importlog"
	"github.com/tally-home/tally/internal/review"
	"github.com/tally-home/tally/internal/store"
)

type importOptions struct {
	repoDir           string
	format            string
	commit            bool
	includeDuplicates bool
	categories        []string
	skips             []string
}

// statementFile is one input. Files from import/ are moved to
// import/processed/ once committed.
type statementFile struct {
	name  string
	path  string
	inbox bool
}

func newImportCommand() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Preview or commit bank statement files",
		Long: `Parse bank statement exports, classify each row, and flag rows already in the ledger.

Without file arguments every *.csv in import/ is processed. Nothing is saved
unless --commit is given. Rows are referenced as e1, e2, ... (expenses) and
i1, i2, ... (income) in the preview.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.repoDir, "repo", ".", "data directory")
	cmd.Flags().StringVar(&opts.format, "format", "", "statement format (default from tally.yaml)")
	cmd.Flags().BoolVar(&opts.commit, "commit", false, "save selected rows to the ledger")
	cmd.Flags().BoolVar(&opts.includeDuplicates, "include-duplicates", false, "select rows flagged as duplicates")
	cmd.Flags().StringArrayVar(&opts.categories, "category", nil, "override a category, e.g. e3=groceries (repeatable)")
	cmd.Flags().StringArrayVar(&opts.skips, "skip", nil, "deselect a row, e.g. i2 (repeatable)")

	return cmd
}

func runImport(cmd *cobra.Command, opts importOptions, args []string) error {
	ctx := cmd.Context()
	ws, err := openWorkspace(opts.repoDir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	parser, err := ws.parser(opts.format)
	if err != nil {
		return err
	}

	files, err := collectFiles(ws.dir, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "No statement files in import/.")
		return nil
	}
	if len(files) > 1 && (len(opts.categories) > 0 || len(opts.skips) > 0) {
		return fmt.Errorf("--category and --skip need exactly one file, got %d", len(files))
	}

	st, err := store.Open(ctx, ws.cfg, ws.dir)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, f := range files {
		if err := importFile(cmd, ws, st, parser, f, opts); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

func collectFiles(root string, args []string) ([]statementFile, error) {
	if len(args) == 0 {
		infos, err := importer.Scan(root)
		if err != nil {
			return nil, err
		}
		files := make([]statementFile, len(infos))
		for i, info := range infos {
			files[i] = statementFile{name: info.Name, path: info.Path, inbox: true}
		}
		return files, nil
	}

	inbox, err := filepath.Abs(filepath.Join(root, "import"))
	if err != nil {
		return nil, err
	}
	files := make([]statementFile, len(args))
	for i, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		files[i] = statementFile{name: filepath.Base(path), path: path, inbox: filepath.Dir(path) == inbox}
	}
	return files, nil
}

func importFile(cmd *cobra.Command, ws *workspace, st store.Store, parser importer.Parser, f statementFile, opts importOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fh, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	parsed, err := parser.Parse(fh)
	fh.Close()
	if err != nil {
		return err
	}

	headerColor.Fprintf(out, "%s\n", f.name)
	if parsed.Empty() {
		ws.log.Warn("no valid records found", "file", f.name)
		fmt.Fprintln(out, "  no valid records found")
		return nil
	}

	existingTx, existingInc, err := store.Existing(ctx, st)
	if err != nil {
		return err
	}
	batch := dedup.Detect(parsed, existingTx, existingInc)

	session := review.New(batch)
	if err := applyEdits(session, opts); err != nil {
		return err
	}

	renderBatch(out, session.Batch())
	counts := session.Counts()
	renderCounts(out, counts)

	entry := importlog.Entry{
		Timestamp:  time.Now(),
		File:       f.name,
		Action:     importlog.ActionPreview,
		Expenses:   counts.Expenses.Total,
		Income:     counts.Income.Total,
		Duplicates: counts.Expenses.Duplicates + counts.Income.Duplicates,
	}

	if !opts.commit {
		fmt.Fprintln(out, "Preview only; rerun with --commit to save.")
		return importlog.Append(ws.dir, []importlog.Entry{entry})
	}

	txns, inc := session.Accept(time.Now().UTC())
	if err := store.Insert(ctx, st, txns, inc); err != nil {
		return err
	}
	ws.log.Info("imported statement", "file", f.name, "expenses", len(txns), "income", len(inc))

	if f.inbox {
		if _, err := importer.MarkProcessed(ws.dir, f.name, time.Now()); err != nil {
			return err
		}
	}

	entry.Action = importlog.ActionCommit
	entry.Expenses, entry.Income = len(txns), len(inc)
	hash, err := ws.commit(fmt.Sprintf("import: %s (%d expenses, %d income)", f.name, len(txns), len(inc)))
	if err != nil {
		return err
	}
	entry.CommitHash = hash
	if err := importlog.Append(ws.dir, []importlog.Entry{entry}); err != nil {
		return err
	}

	okColor.Fprintf(out, "Saved %d expenses and %d income records.\n", len(txns), len(inc))
	return nil
}

// applyEdits applies the command-line review flags in order: duplicate
// selection first, then category overrides, then skips.
func applyEdits(s *review.Session, opts importOptions) error {
	if opts.includeDuplicates {
		for _, c := range s.Batch().Expenses {
			if c.IsDuplicate {
				if err := s.SetSelected(c.ID, true); err != nil {
					return err
				}
			}
		}
		for _, c := range s.Batch().Income {
			if c.IsDuplicate {
				if err := s.SetSelected(c.ID, true); err != nil {
					return err
				}
			}
		}
	}

	for _, spec := range opts.categories {
		ref, category, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("--category %q: want REF=CATEGORY", spec)
		}
		kind, id, err := s.Resolve(ref)
		if err != nil {
			return err
		}
		if err := s.SetCategory(kind, id, strings.TrimSpace(category)); err != nil {
			return fmt.Errorf("--category %q: %w", spec, err)
		}
	}

	for _, ref := range opts.skips {
		_, id, err := s.Resolve(ref)
		if err != nil {
			return err
		}
		if err := s.SetSelected(id, false); err != nil {
			return err
		}
	}
	return nil
}
