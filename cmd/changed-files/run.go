// Package main provides the changed-files CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/changed-files/pkg/config"
	actionerrors "github.com/cicd-ai-toolkit/changed-files/pkg/errors"
	"github.com/cicd-ai-toolkit/changed-files/pkg/event"
	"github.com/cicd-ai-toolkit/changed-files/pkg/git"
	"github.com/cicd-ai-toolkit/changed-files/pkg/gitexec"
	"github.com/cicd-ai-toolkit/changed-files/pkg/output"
	"github.com/cicd-ai-toolkit/changed-files/pkg/platform"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve the triggering event and emit changed-file outputs",
	RunE:  runChangedFiles,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runChangedFiles is the top-level entry for a run. Every fatal condition is
// converted into a single run-failure signal here; nothing escapes main.
func runChangedFiles(cmd *cobra.Command, args []string) error {
	reporter := output.NewWorkflowReporter()

	if err := run(cmd.Context(), reporter); err != nil {
		reporter.SetFailed(err.Error())
		return err
	}

	if reporter.Failed() {
		return fmt.Errorf("run completed with failures")
	}
	return nil
}

func run(ctx context.Context, reporter *output.WorkflowReporter) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	ec, err := event.FromEnvironment(cfg.Token)
	if err != nil {
		return err
	}
	reporter.Debug(fmt.Sprintf("handling %s event for %s/%s", ec.EventName, ec.Owner, ec.Repo))

	api, err := platform.NewGitHub(cfg.Token, os.Getenv("GITHUB_API_URL"), reporter)
	if err != nil {
		return err
	}
	adapter := git.NewAdapter(gitexec.New().WithDir(workspaceDir()))

	resolver := event.NewResolver(adapter, api, reporter)
	records, err := resolver.Resolve(ctx, ec)
	if err != nil {
		if actionerrors.IsFatal(err) {
			return err
		}
		// Degraded mode: mark the run failed but keep whatever records
		// the resolution produced.
		reporter.SetFailed(err.Error())
	}

	set := output.Collect(records, cfg.Extensions)
	values, err := set.Values(format)
	if err != nil {
		reporter.SetFailed(err.Error())
		return nil
	}

	for _, v := range values {
		reporter.SetOutput(v.Name, v.Value)
	}
	reporter.Notice(fmt.Sprintf("%d changed files detected", len(set.All)))

	return nil
}

func workspaceDir() string {
	if ws := os.Getenv("GITHUB_WORKSPACE"); ws != "" {
		return ws
	}
	return "."
}
