package commands

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/tally-home/tally/internal/config"
	"github.com/tally-home/tally/internal/gitops"
	"github.com/tally-home/tally/internal/importer"
	"github.com/tally-home/tally/internal/logging"
	"github.com/tally-home/tally/internal/rules"
)

// workspace is an initialized data directory with its config loaded.
type workspace struct {
	dir   string
	cfg   *config.Config
	log   *slog.Logger
	rules *rules.Table
}

func openWorkspace(repoDir string, logOut io.Writer) (*workspace, error) {
	dir, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loading %s (run `tally init` first?): %w", config.FileName, err)
	}
	log, err := logging.New(logOut, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	table := rules.Default()
	if path := cfg.RulesPath(dir); path != "" {
		if table, err = rules.Load(path); err != nil {
			return nil, err
		}
	}
	return &workspace{dir: dir, cfg: cfg, log: log, rules: table}, nil
}

// parser returns the configured statement parser, or the one named by
// format when it is non-empty.
func (ws *workspace) parser(format string) (importer.Parser, error) {
	if format == "" {
		format = ws.cfg.Import.Format
	}
	reg := importer.DefaultRegistry(ws.rules)
	p := reg.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown format %q (available: %v)", format, reg.Formats())
	}
	if rbc, ok := p.(*importer.RBCParser); ok {
		rbc.Logger = ws.log
	}
	return p, nil
}

func (ws *workspace) repo() gitops.Repo {
	return gitops.Repo{
		Dir:         ws.dir,
		AuthorName:  ws.cfg.Git.AuthorName,
		AuthorEmail: ws.cfg.Git.AuthorEmail,
	}
}

// commit records the data directory in git when auto_commit is on and the
// directory is a repository. Returns the short hash or "".
func (ws *workspace) commit(message string) (string, error) {
	if !ws.cfg.Git.AutoCommit {
		return "", nil
	}
	repo := ws.repo()
	if !repo.IsRepo() {
		ws.log.Debug("not a git repository, skipping commit", "dir", ws.dir)
		return "", nil
	}
	return repo.CommitAll(message)
}
