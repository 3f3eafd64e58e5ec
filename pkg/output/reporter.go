// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Reporter is the run-status collaborator injected into the components that
// need to log or publish results. Keeping it an interface keeps those
// components testable without ambient globals.
type Reporter interface {
	Debug(msg string)
	Notice(msg string)
	Warning(msg string)
	SetOutput(name, value string)
	SetFailed(msg string)
}

// WorkflowReporter reports through GitHub Actions workflow commands and
// writes outputs to the GITHUB_OUTPUT file. Debug and warning messages are
// mirrored to a structured logger on stderr.
type WorkflowReporter struct {
	out        io.Writer
	outputPath string
	log        zerolog.Logger
	failed     bool
}

// NewWorkflowReporter creates a reporter wired to the current runner
// environment. RUNNER_DEBUG=1 enables the debug level, matching the
// behaviour of the hosted runners.
func NewWorkflowReporter() *WorkflowReporter {
	level := zerolog.InfoLevel
	if os.Getenv("RUNNER_DEBUG") == "1" {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return &WorkflowReporter{
		out:        os.Stdout,
		outputPath: os.Getenv("GITHUB_OUTPUT"),
		log:        log,
	}
}

// WithWriter redirects the workflow command stream, used in tests.
func (r *WorkflowReporter) WithWriter(w io.Writer) *WorkflowReporter {
	r.out = w
	return r
}

// WithOutputPath overrides the GITHUB_OUTPUT file path, used in tests.
func (r *WorkflowReporter) WithOutputPath(path string) *WorkflowReporter {
	r.outputPath = path
	return r
}

// Debug emits a ::debug:: command and a structured debug record.
func (r *WorkflowReporter) Debug(msg string) {
	fmt.Fprintf(r.out, "::debug::%s\n", msg)
	r.log.Debug().Msg(msg)
}

// Notice emits a ::notice:: command.
func (r *WorkflowReporter) Notice(msg string) {
	fmt.Fprintf(r.out, "::notice::%s\n", msg)
}

// Warning emits a ::warning:: command and a structured warn record.
func (r *WorkflowReporter) Warning(msg string) {
	fmt.Fprintf(r.out, "::warning::%s\n", msg)
	r.log.Warn().Msg(msg)
}

// SetFailed emits a ::error:: command and marks the run failed.
func (r *WorkflowReporter) SetFailed(msg string) {
	fmt.Fprintf(r.out, "::error::%s\n", msg)
	r.log.Error().Msg(msg)
	r.failed = true
}

// Failed reports whether SetFailed was called during this run.
func (r *WorkflowReporter) Failed() bool {
	return r.failed
}

// SetOutput writes a value to GITHUB_OUTPUT. Multiline values use the
// heredoc delimiter form. Without GITHUB_OUTPUT it falls back to the
// deprecated set-output command so local runs still show the values.
func (r *WorkflowReporter) SetOutput(name, value string) {
	if r.outputPath == "" {
		fmt.Fprintf(r.out, "::set-output name=%s::%s\n", name, value)
		return
	}

	f, err := os.OpenFile(r.outputPath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		fmt.Fprintf(r.out, "::set-output name=%s::%s\n", name, value)
		return
	}
	defer func() { _ = f.Close() }()

	if strings.Contains(value, "\n") {
		delimiter := fmt.Sprintf("ghadelimiter_%d", time.Now().UnixNano())
		_, _ = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		_, _ = fmt.Fprintf(f, "%s=%s\n", name, value)
	}
}
