package event

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cicd-ai-toolkit/changed-files/pkg/change"
	"github.com/cicd-ai-toolkit/changed-files/pkg/errors"
	"github.com/cicd-ai-toolkit/changed-files/pkg/output"
)

// Differ is the version-control adapter used on the local diff path.
type Differ interface {
	DefaultBranch(ctx context.Context, remoteURL string) (string, error)
	Diff(ctx context.Context, base, head string, extra ...string) (string, error)
	Status(ctx context.Context, extra ...string) (string, error)
}

// Comparer is the hosted-API client used on the remote comparison path.
type Comparer interface {
	Compare(ctx context.Context, owner, repo, base, head string) ([]change.Record, error)
}

type handlerFunc func(ctx context.Context, ec *Context) ([]change.Record, error)

// Resolver selects base and head revisions per event kind and delegates to
// the local diff path or the remote comparison path. It holds no state
// between invocations.
type Resolver struct {
	git      Differ
	api      Comparer
	reporter output.Reporter
	handlers map[string]handlerFunc
}

// NewResolver creates a resolver over the given collaborators.
func NewResolver(git Differ, api Comparer, reporter output.Reporter) *Resolver {
	r := &Resolver{
		git:      git,
		api:      api,
		reporter: reporter,
	}
	r.handlers = map[string]handlerFunc{
		"workflow_dispatch": r.resolveDispatch,
		"push":              r.resolvePush,
		"pull_request":      r.resolvePull,
	}
	return r
}

// Resolve dispatches on the event kind. Event kinds without a handler fail
// with a configuration error; no outputs are produced for them.
func (r *Resolver) Resolve(ctx context.Context, ec *Context) ([]change.Record, error) {
	handler, ok := r.handlers[ec.EventName]
	if !ok {
		return nil, errors.ConfigurationError(fmt.Sprintf("no handler for event kind %q", ec.EventName), nil)
	}

	return handler(ctx, ec)
}

// resolveDispatch handles workflow_dispatch: base is the remote's default
// branch, head is the commit the workflow runs on, and changes come from the
// local repository rather than the API.
func (r *Resolver) resolveDispatch(ctx context.Context, ec *Context) ([]change.Record, error) {
	remote, err := remoteURL(ec)
	if err != nil {
		return nil, err
	}

	base, err := r.git.DefaultBranch(ctx, remote)
	if err != nil {
		return nil, err
	}
	head := ec.SHA
	r.reporter.Debug(fmt.Sprintf("resolving %s...%s via local diff", base, head))

	diffOut, err := r.git.Diff(ctx, base, head)
	if err != nil {
		return nil, err
	}
	statusOut, err := r.git.Status(ctx)
	if err != nil {
		return nil, err
	}

	return parseLocalChanges(diffOut, statusOut), nil
}

// resolvePush handles push events via the remote comparison API.
func (r *Resolver) resolvePush(ctx context.Context, ec *Context) ([]change.Record, error) {
	var payload pushPayload
	if err := json.Unmarshal(ec.Payload, &payload); err != nil {
		return nil, errors.ConfigurationError("cannot parse push event payload", err)
	}

	// TODO: base and head both use payload.before, so push comparisons
	// never span before...after. Kept to match the published output of the
	// action; flagged for product review before changing.
	base := payload.Before
	head := payload.Before
	r.reporter.Debug(fmt.Sprintf("resolving %s...%s via comparison API", base, head))

	return r.api.Compare(ctx, ec.Owner, ec.Repo, base, head)
}

// resolvePull handles pull_request events via the remote comparison API.
func (r *Resolver) resolvePull(ctx context.Context, ec *Context) ([]change.Record, error) {
	var payload pullRequestPayload
	if err := json.Unmarshal(ec.Payload, &payload); err != nil {
		return nil, errors.ConfigurationError("cannot parse pull_request event payload", err)
	}

	base := payload.PullRequest.Base.SHA
	head := payload.PullRequest.Head.SHA
	r.reporter.Debug(fmt.Sprintf("resolving %s...%s via comparison API", base, head))

	return r.api.Compare(ctx, ec.Owner, ec.Repo, base, head)
}

// remoteURL builds a credential-embedded remote URL from the server URL,
// token and repository so ls-remote can authenticate.
func remoteURL(ec *Context) (string, error) {
	u, err := url.Parse(ec.ServerURL)
	if err != nil {
		return "", errors.ConfigurationError(fmt.Sprintf("invalid server URL %q", ec.ServerURL), err)
	}

	u.User = url.UserPassword("x-access-token", ec.Token)
	u.Path = "/" + ec.Owner + "/" + ec.Repo
	return u.String(), nil
}

// parseLocalChanges turns concatenated diff and status output into change
// records. Every non-empty line yields exactly one record; rename lines
// resolve to the post-rename filename.
func parseLocalChanges(diffOut, statusOut string) []change.Record {
	lines := append(strings.Split(diffOut, "\n"), strings.Split(statusOut, "\n")...)

	records := make([]change.Record, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		name := fields[1]
		if len(fields) > 2 {
			name = fields[2]
		}

		records = append(records, change.Record{
			Name:   name,
			Status: change.StatusFromCode(fields[0]),
		})
	}
	return records
}
