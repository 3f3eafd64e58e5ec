// Package event resolves a triggering CI event into the list of changed
// files between the appropriate base and head revisions.
package event

import (
	"fmt"
	"os"
	"strings"

	"github.com/cicd-ai-toolkit/changed-files/pkg/errors"
)

const defaultServerURL = "https://github.com"

// Context is the immutable input bundle for one run. It is constructed once
// from the runner environment and read-only thereafter.
type Context struct {
	EventName string
	SHA       string
	Payload   []byte
	Owner     string
	Repo      string
	ServerURL string
	Token     string
}

// FromEnvironment builds a Context from the GitHub Actions runner
// environment. The webhook payload is read from GITHUB_EVENT_PATH when the
// runner provides one.
func FromEnvironment(token string) (*Context, error) {
	eventName := os.Getenv("GITHUB_EVENT_NAME")
	if eventName == "" {
		return nil, errors.ConfigurationError("GITHUB_EVENT_NAME is not set", nil)
	}

	repository := os.Getenv("GITHUB_REPOSITORY")
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, errors.ConfigurationError(fmt.Sprintf("GITHUB_REPOSITORY %q is not in owner/name form", repository), nil)
	}

	serverURL := os.Getenv("GITHUB_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	var payload []byte
	if path := os.Getenv("GITHUB_EVENT_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.ConfigurationError(fmt.Sprintf("cannot read event payload at %s", path), err)
		}
		payload = data
	}

	return &Context{
		EventName: eventName,
		SHA:       os.Getenv("GITHUB_SHA"),
		Payload:   payload,
		Owner:     owner,
		Repo:      repo,
		ServerURL: serverURL,
		Token:     token,
	}, nil
}
