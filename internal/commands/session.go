package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/config"
	"github.com/tellerkit/teller/internal/gitops"
	"github.com/tellerkit/teller/internal/logger"
	"github.com/tellerkit/teller/internal/model"
	"github.com/tellerkit/teller/internal/store"
)

// session is the state shared by every command that touches the ledger.
type session struct {
	dir   string
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Store
}

// openSession loads teller.yaml from dir (defaults if absent), applies
// environment overrides and opens the ledger.
func openSession(cmd *cobra.Command, dir string) (*session, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default("")
	} else if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	log := logger.New(cmd.ErrOrStderr(), logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	return &session{
		dir:   absDir,
		cfg:   cfg,
		log:   log,
		store: store.Open(ledgerPath(absDir, cfg), log),
	}, nil
}

func ledgerPath(dir string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.Ledger.Path) {
		return cfg.Ledger.Path
	}
	return filepath.Join(dir, cfg.Ledger.Path)
}

// account looks up an account by holder name.
func (s *session) account(holder string) (*model.Account, error) {
	acct, ok := s.store.GetByName(holder)
	if !ok {
		return nil, fmt.Errorf("no account for holder %q", holder)
	}
	return acct, nil
}

// save persists acct and, when git.auto_commit is on, commits the ledger.
// A failed commit is logged; the ledger itself is already written.
func (s *session) save(acct *model.Account, message string) error {
	if err := s.store.SaveAccount(acct); err != nil {
		return err
	}
	if !s.cfg.Git.AutoCommit || !gitops.IsRepo(s.dir) {
		return nil
	}
	if !gitops.Available() {
		s.log.Warn().Msg("git not found on PATH, skipping commit")
		return nil
	}

	rel, err := filepath.Rel(s.dir, s.store.Path())
	if err != nil {
		s.log.Warn().Err(err).Msg("ledger is outside the data directory, skipping commit")
		return nil
	}
	author := gitops.Author{Name: s.cfg.Git.AuthorName, Email: s.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(s.dir, message, author, rel)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
	case err != nil:
		s.log.Warn().Err(err).Msg("committing ledger")
	default:
		s.log.Debug().Str("commit", hash).Msg("ledger committed")
	}
	return nil
}
