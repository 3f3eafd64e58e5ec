package event

import (
	"context"
	"strings"
	"testing"

	"github.com/cicd-ai-toolkit/changed-files/pkg/change"
	actionerrors "github.com/cicd-ai-toolkit/changed-files/pkg/errors"
)

type fakeDiffer struct {
	branch    string
	branchErr error
	diffOut   string
	statusOut string

	gotRemote string
	gotBase   string
	gotHead   string
}

func (f *fakeDiffer) DefaultBranch(ctx context.Context, remoteURL string) (string, error) {
	f.gotRemote = remoteURL
	return f.branch, f.branchErr
}

func (f *fakeDiffer) Diff(ctx context.Context, base, head string, extra ...string) (string, error) {
	f.gotBase, f.gotHead = base, head
	return f.diffOut, nil
}

func (f *fakeDiffer) Status(ctx context.Context, extra ...string) (string, error) {
	return f.statusOut, nil
}

type fakeComparer struct {
	records []change.Record
	err     error

	gotOwner string
	gotRepo  string
	gotBase  string
	gotHead  string
}

func (f *fakeComparer) Compare(ctx context.Context, owner, repo, base, head string) ([]change.Record, error) {
	f.gotOwner, f.gotRepo, f.gotBase, f.gotHead = owner, repo, base, head
	return f.records, f.err
}

type fakeReporter struct {
	debugs   []string
	notices  []string
	warnings []string
	failures []string
	outputs  map[string]string
}

func newFakeReporter() *fakeReporter {
	return &fakeReporter{outputs: map[string]string{}}
}

func (f *fakeReporter) Debug(msg string)   { f.debugs = append(f.debugs, msg) }
func (f *fakeReporter) Notice(msg string)  { f.notices = append(f.notices, msg) }
func (f *fakeReporter) Warning(msg string) { f.warnings = append(f.warnings, msg) }
func (f *fakeReporter) SetOutput(name, value string) {
	f.outputs[name] = value
}
func (f *fakeReporter) SetFailed(msg string) { f.failures = append(f.failures, msg) }

func testContext(eventName, payload string) *Context {
	return &Context{
		EventName: eventName,
		SHA:       "f00dfeed",
		Payload:   []byte(payload),
		Owner:     "acme",
		Repo:      "widgets",
		ServerURL: "https://github.com",
		Token:     "s3cr3t",
	}
}

// TestResolveDispatch verifies the local diff path end to end: default
// branch resolution against a credential-embedded remote, line parsing and
// status-code mapping.
func TestResolveDispatch(t *testing.T) {
	differ := &fakeDiffer{
		branch:    "main",
		diffOut:   "A\tfoo.txt\nM\tbar.rs\nR100\told.txt\tnew.txt\n",
		statusOut: "?? notes.md\nX junk.bin\n",
	}
	resolver := NewResolver(differ, &fakeComparer{}, newFakeReporter())

	records, err := resolver.Resolve(context.Background(), testContext("workflow_dispatch", ""))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := []change.Record{
		{Name: "foo.txt", Status: change.StatusAdded},
		{Name: "bar.rs", Status: change.StatusModified},
		{Name: "new.txt", Status: change.StatusRenamed},
		{Name: "notes.md", Status: change.StatusAdded},
		{Name: "junk.bin", Status: change.StatusChanged},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(records), len(want), records)
	}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("record[%d] = %+v, want %+v", i, rec, want[i])
		}
	}

	if differ.gotBase != "main" || differ.gotHead != "f00dfeed" {
		t.Errorf("diff revisions = %s...%s, want main...f00dfeed", differ.gotBase, differ.gotHead)
	}
	if !strings.Contains(differ.gotRemote, "x-access-token:s3cr3t@github.com/acme/widgets") {
		t.Errorf("remote URL %q lacks embedded credentials", differ.gotRemote)
	}
}

// TestResolveDispatchBranchFailure verifies a default-branch parse failure
// aborts the dispatch path.
func TestResolveDispatchBranchFailure(t *testing.T) {
	differ := &fakeDiffer{branchErr: actionerrors.ParseError("unexpected output when retrieving default branch", nil)}
	resolver := NewResolver(differ, &fakeComparer{}, newFakeReporter())

	_, err := resolver.Resolve(context.Background(), testContext("workflow_dispatch", ""))
	if !actionerrors.IsType(err, actionerrors.ErrParse) {
		t.Errorf("error type = %v, want parse", err)
	}
}

// TestResolvePush verifies base and head both come from payload.before.
func TestResolvePush(t *testing.T) {
	comparer := &fakeComparer{records: []change.Record{{Name: "a.go", Status: change.StatusModified}}}
	resolver := NewResolver(&fakeDiffer{}, comparer, newFakeReporter())

	payload := `{"before":"1111111","after":"2222222"}`
	records, err := resolver.Resolve(context.Background(), testContext("push", payload))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	if comparer.gotBase != "1111111" || comparer.gotHead != "1111111" {
		t.Errorf("compare revisions = %s...%s, want 1111111...1111111", comparer.gotBase, comparer.gotHead)
	}
	if comparer.gotOwner != "acme" || comparer.gotRepo != "widgets" {
		t.Errorf("compare repo = %s/%s, want acme/widgets", comparer.gotOwner, comparer.gotRepo)
	}
}

// TestResolvePullRequest verifies revisions come from the PR payload.
func TestResolvePullRequest(t *testing.T) {
	comparer := &fakeComparer{}
	resolver := NewResolver(&fakeDiffer{}, comparer, newFakeReporter())

	payload := `{"pull_request":{"base":{"sha":"aaaa"},"head":{"sha":"bbbb"}}}`
	if _, err := resolver.Resolve(context.Background(), testContext("pull_request", payload)); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if comparer.gotBase != "aaaa" || comparer.gotHead != "bbbb" {
		t.Errorf("compare revisions = %s...%s, want aaaa...bbbb", comparer.gotBase, comparer.gotHead)
	}
}

// TestResolveUnknownEvent verifies unrecognized kinds fail with a
// configuration error.
func TestResolveUnknownEvent(t *testing.T) {
	resolver := NewResolver(&fakeDiffer{}, &fakeComparer{}, newFakeReporter())

	_, err := resolver.Resolve(context.Background(), testContext("issue_comment", "{}"))
	if err == nil {
		t.Fatal("Resolve succeeded for an unsupported event kind")
	}
	if !actionerrors.IsType(err, actionerrors.ErrConfiguration) {
		t.Errorf("error type = %v, want configuration", err)
	}
}

// TestResolveBadPayload verifies malformed payloads fail with a
// configuration error.
func TestResolveBadPayload(t *testing.T) {
	resolver := NewResolver(&fakeDiffer{}, &fakeComparer{}, newFakeReporter())

	for _, kind := range []string{"push", "pull_request"} {
		_, err := resolver.Resolve(context.Background(), testContext(kind, "not json"))
		if !actionerrors.IsType(err, actionerrors.ErrConfiguration) {
			t.Errorf("%s: error type = %v, want configuration", kind, err)
		}
	}
}

// TestParseLocalChangesEmpty verifies empty lines never produce records.
func TestParseLocalChanges(t *testing.T) {
	records := parseLocalChanges("A\tfoo.txt\n\n", "\n")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "foo.txt" || records[0].Status != change.StatusAdded {
		t.Errorf("record = %+v", records[0])
	}
}
