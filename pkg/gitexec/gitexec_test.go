package gitexec

import (
	"context"
	"testing"

	actionerrors "github.com/cicd-ai-toolkit/changed-files/pkg/errors"
)

// TestRunCapturesStdout verifies stdout is returned untrimmed.
func TestRunCapturesStdout(t *testing.T) {
	r := New().WithBinary("echo")

	out, err := r.Run(context.Background(), "hello", "world")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "hello world\n" {
		t.Errorf("Run output = %q, want %q", out, "hello world\n")
	}
}

// TestRunMissingBinary verifies a missing executable is an execution error.
func TestRunMissingBinary(t *testing.T) {
	r := New().WithBinary("definitely-not-a-real-binary-1f2e3d")

	_, err := r.Run(context.Background(), "status")
	if err == nil {
		t.Fatal("Run succeeded with a missing binary")
	}
	if !actionerrors.IsType(err, actionerrors.ErrExecution) {
		t.Errorf("error type = %v, want execution", err)
	}
}

// TestRunNonZeroExit verifies an abnormal exit is an execution error.
func TestRunNonZeroExit(t *testing.T) {
	r := New().WithBinary("false")

	_, err := r.Run(context.Background())
	if err == nil {
		t.Fatal("Run succeeded despite non-zero exit")
	}
	if !actionerrors.IsType(err, actionerrors.ErrExecution) {
		t.Errorf("error type = %v, want execution", err)
	}
}
