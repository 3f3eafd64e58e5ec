// Package change defines the file-change data model shared by the local
// diff path and the commit-comparison API path.
package change

import (
	"fmt"

	"github.com/cicd-ai-toolkit/changed-files/pkg/errors"
)

// Status classifies how a file changed between two revisions
type Status string

const (
	StatusAdded     Status = "added"
	StatusModified  Status = "modified"
	StatusRemoved   Status = "removed"
	StatusRenamed   Status = "renamed"
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
	StatusCopied    Status = "copied"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Record is a single changed file with its classification.
// Records are produced fresh per invocation and never persisted.
type Record struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// ParseStatus validates a status string as reported by the comparison API.
// The API already uses this enumeration, so anything else is an error.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAdded, StatusModified, StatusRemoved, StatusRenamed,
		StatusChanged, StatusUnchanged, StatusCopied:
		return Status(s), nil
	default:
		return "", errors.UnsupportedStatusError(fmt.Sprintf("unsupported change status %q", s), nil)
	}
}

// StatusFromCode maps a git status code to a Status. Only the leading
// character is significant, so rename scores like R100 resolve to renamed.
// Untracked entries (?) count as added; unknown codes fall back to changed.
func StatusFromCode(code string) Status {
	if code == "" {
		return StatusChanged
	}

	switch code[0] {
	case 'A':
		return StatusAdded
	case 'M':
		return StatusModified
	case 'D':
		return StatusRemoved
	case 'R':
		return StatusRenamed
	case '?':
		return StatusAdded
	default:
		return StatusChanged
	}
}
