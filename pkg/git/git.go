// Package git exposes the version-control operations the action needs:
// resolving a remote's default branch, diffing two revisions and querying
// working-tree status.
package git

import (
	"context"
	"strings"

	"github.com/cicd-ai-toolkit/changed-files/pkg/errors"
)

// Runner abstracts executing git. Implementations may call the git binary
// or simulate output in tests.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Adapter wraps a Runner with parsed, typed operations.
type Adapter struct {
	runner Runner
}

// NewAdapter creates an adapter on top of the given runner.
func NewAdapter(r Runner) *Adapter {
	return &Adapter{runner: r}
}

// DefaultBranch resolves the default branch name of a remote repository by
// asking the remote for its symbolic HEAD.
func (a *Adapter) DefaultBranch(ctx context.Context, remoteURL string) (string, error) {
	out, err := a.runner.Run(ctx, "ls-remote", "--quiet", "--exit-code", "--symref", remoteURL, "HEAD")
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "ref:") && !strings.HasSuffix(line, "HEAD") {
			continue
		}
		if name := branchName(line); name != "" {
			return name, nil
		}
	}

	return "", errors.ParseError("unexpected output when retrieving default branch", nil)
}

// branchName extracts the branch following refs/heads/ from an ls-remote line.
func branchName(line string) string {
	const prefix = "refs/heads/"

	i := strings.Index(line, prefix)
	if i < 0 {
		return ""
	}

	rest := line[i+len(prefix):]
	if j := strings.IndexAny(rest, " \t"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

// Diff returns the raw name-status diff between two revisions. Each line has
// the form <code>\t<path>, or <code>\t<old>\t<new> for renames.
func (a *Adapter) Diff(ctx context.Context, base, head string, extra ...string) (string, error) {
	args := append([]string{"diff", "--name-status"}, extra...)
	args = append(args, base, head)
	return a.runner.Run(ctx, args...)
}

// Status returns the raw working-tree status in short format. Each line has
// the form <code> <path>.
func (a *Adapter) Status(ctx context.Context, extra ...string) (string, error) {
	args := append([]string{"status", "--short"}, extra...)
	return a.runner.Run(ctx, args...)
}
