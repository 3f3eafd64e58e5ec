// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package gitexec runs the git executable and captures its output.
package gitexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cicd-ai-toolkit/changed-files/pkg/errors"
)

// Runner executes git with a given argument vector. There is no retry: a
// single failed invocation aborts the operation that requested it.
type Runner struct {
	binary string
	dir    string
}

// New creates a runner for the git binary found on PATH.
func New() *Runner {
	return &Runner{binary: "git"}
}

// WithBinary sets a custom binary path.
func (r *Runner) WithBinary(binary string) *Runner {
	r.binary = binary
	return r
}

// WithDir sets the working directory for subsequent invocations.
func (r *Runner) WithDir(dir string) *Runner {
	r.dir = dir
	return r
}

// Run executes the binary with the given arguments and returns accumulated
// stdout as a string. Output is returned untrimmed; trimming is the caller's
// responsibility.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	if _, err := exec.LookPath(r.binary); err != nil {
		return "", errors.ExecutionError(fmt.Sprintf("%s executable not found on PATH", r.binary), err)
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.dir != "" {
		cmd.Dir = r.dir
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := fmt.Sprintf("%s %s failed", r.binary, strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg = fmt.Sprintf("%s: %s", msg, s)
		}
		return "", errors.ExecutionError(msg, err)
	}

	return stdout.String(), nil
}
