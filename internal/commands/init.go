package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/config"
	"github.com/tellerkit/teller/internal/gitops"
	"github.com/tellerkit/teller/internal/model"
	"github.com/tellerkit/teller/internal/store"
)

func newInitCommand(dataDir *string) *cobra.Command {
	var name string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := *dataDir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, useGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "Teller", "bank name")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit every ledger change")

	return cmd
}

func runInit(out io.Writer, dir, name string, useGit bool) error {
	if useGit && !gitops.Available() {
		return fmt.Errorf("--git needs a git binary on PATH")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	// Write teller.yaml.
	cfg := config.Default(name)
	cfg.Git.AutoCommit = useGit
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	// Write an empty ledger.
	path := ledgerPath(dir, cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	if err := store.WriteLedger(f, map[string]*model.Account{}); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}

	if !useGit {
		fmt.Fprintf(out, "Initialized %s ledger at %s\n", name, dir)
		return nil
	}

	// Initialize git and create the initial commit.
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir, io.Discard); err != nil {
			return err
		}
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return fmt.Errorf("resolving ledger path: %w", err)
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(dir, "init: initialize "+name, author, config.FileName, rel)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized %s ledger at %s (%s)\n", name, dir, hash)
	return nil
}
