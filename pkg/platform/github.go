// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package platform provides the hosted-repository API client used for
// push and pull_request events.
package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v72/github"

	"github.com/cicd-ai-toolkit/changed-files/pkg/change"
	"github.com/cicd-ai-toolkit/changed-files/pkg/errors"
	"github.com/cicd-ai-toolkit/changed-files/pkg/output"
)

const defaultAPIURL = "https://api.github.com"

// GitHub wraps the commit-comparison endpoint of the GitHub API.
type GitHub struct {
	client   *github.Client
	reporter output.Reporter
}

// NewGitHub creates a client authenticated with the given token. A non-empty
// apiURL other than the public endpoint configures enterprise base URLs.
func NewGitHub(token, apiURL string, reporter output.Reporter) (*GitHub, error) {
	client := github.NewClient(nil).WithAuthToken(token)

	if apiURL != "" && apiURL != defaultAPIURL {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, errors.ConfigurationError(fmt.Sprintf("invalid API base URL %q", apiURL), err)
		}
	}

	return &GitHub{client: client, reporter: reporter}, nil
}

// NewGitHubWithClient creates an adapter around an existing API client.
func NewGitHubWithClient(client *github.Client, reporter output.Reporter) *GitHub {
	return &GitHub{client: client, reporter: reporter}
}

// Compare retrieves the file-level changes between two commits.
//
// A non-200 response is reported as a RemoteStatusError together with an
// empty list so the caller can continue in degraded mode. A comparison whose
// head is not strictly ahead of base only produces a warning; its files are
// still returned. File entries with a status outside the known enumeration
// produce an UnsupportedStatusError while the remaining entries are kept.
func (g *GitHub) Compare(ctx context.Context, owner, repo, base, head string) ([]change.Record, error) {
	cmp, resp, err := g.client.Repositories.CompareCommits(ctx, owner, repo, base, head, nil)
	if err != nil {
		code := 0
		if resp != nil {
			code = resp.StatusCode
		}
		return nil, errors.RemoteStatusError(fmt.Sprintf("comparing %s...%s returned %d, expected 200", base, head, code), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.RemoteStatusError(fmt.Sprintf("comparing %s...%s returned %d, expected 200", base, head, resp.StatusCode), nil)
	}

	if cmp.GetStatus() != "ahead" {
		g.reporter.Warning(fmt.Sprintf("head commit %s is not ahead of base commit %s (status %q)", head, base, cmp.GetStatus()))
	}

	records := make([]change.Record, 0, len(cmp.Files))
	var firstErr error
	for _, file := range cmp.Files {
		status, err := change.ParseStatus(file.GetStatus())
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		records = append(records, change.Record{Name: file.GetFilename(), Status: status})
	}

	return records, firstErr
}
