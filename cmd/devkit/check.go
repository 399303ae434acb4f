package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/systemstart/devkit/pkg/pipeline"
	"github.com/systemstart/devkit/pkg/quality"
	"github.com/systemstart/devkit/pkg/ui"
)

func newCheckCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the code quality checks",
		Long: `Check syncs dependencies, then runs lint, formatting, import
sorting and the test suite. Failures are collected so one run reports
everything that needs fixing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := loadManifest(*dir)
			includeEnv(m)

			checks := quality.New(m)
			report := checks.Run(cmd.Context(), printResult)

			fmt.Fprint(os.Stderr, ui.KeyValues("  ",
				ui.KV("passed", strconv.Itoa(report.Count(pipeline.StatusSuccess))),
				ui.KV("skipped", strconv.Itoa(report.Count(pipeline.StatusSkipped))),
				ui.KV("failed", strconv.Itoa(report.Count(pipeline.StatusFailed))),
			))
			if report.Failed() {
				fmt.Fprintln(os.Stderr, ui.FailureBanner("some checks failed"))
				os.Exit(exitFailure)
			}
			fmt.Fprintln(os.Stderr, ui.SuccessBanner("all checks passed"))
			return nil
		},
	}
}
