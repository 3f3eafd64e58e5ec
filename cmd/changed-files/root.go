// Package main provides the changed-files CLI application.
package main

import (
	"github.com/cicd-ai-toolkit/changed-files/pkg/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// The bare binary does the same work as the run subcommand so the action
// manifest can invoke it directly.
var rootCmd = &cobra.Command{
	Use:   "changed-files",
	Short: "Report files changed between base and head commits",
	Long: `changed-files resolves the triggering workflow event into a base and
head commit pair, retrieves the files changed between them, classifies each
by change type and emits the results as workflow outputs.`,
	Version:       version.FullString(),
	RunE:          runChangedFiles,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
