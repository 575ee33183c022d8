package gitops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned when the requested paths have no changes.
var ErrNothingToCommit = errors.New("nothing to commit")

// Author identifies who ledger snapshot commits are made by. It is used
// for both the author and committer so commits work without a global git
// identity.
type Author struct {
	Name  string
	Email string
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init initializes a new git repository at dir. Git's output goes to out.
func Init(dir string, out io.Writer) error {
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Commit stages paths (relative to dir) and commits them. Returns the
// short commit hash, or ErrNothingToCommit if none of the paths changed.
func Commit(dir, message string, author Author, paths ...string) (string, error) {
	addArgs := append([]string{"add", "--"}, paths...)
	if out, err := git(dir, author, addArgs...); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	diffArgs := append([]string{"diff", "--cached", "--quiet", "--"}, paths...)
	if _, err := git(dir, author, diffArgs...); err == nil {
		return "", ErrNothingToCommit
	}

	commitArgs := append([]string{"commit", "-m", message, "--"}, paths...)
	if out, err := git(dir, author, commitArgs...); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	out, err := git(dir, author, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func git(dir string, author Author, args ...string) ([]byte, error) {
	full := append([]string{
		"-c", "user.name=" + author.Name,
		"-c", "user.email=" + author.Email,
	}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
