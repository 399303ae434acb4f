package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systemstart/devkit/pkg/provision"
	"github.com/systemstart/devkit/pkg/ui"
)

func newSetupCmd(dir *string) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Prepare the development environment",
		Long: `Setup installs the package manager when missing, syncs project
dependencies, creates the environment file from its template, and
prepares the log directory. Any step failing stops the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := loadManifest(*dir)
			includeEnv(m)

			boot := provision.New(m)
			report := boot.Run(cmd.Context(), provision.Config{FollowLogs: follow}, printResult)
			if report.Failed() {
				fmt.Fprintln(os.Stderr, ui.FailureBanner("setup failed"))
				os.Exit(exitCodeFor(report))
			}
			fmt.Fprintln(os.Stderr, ui.SuccessBanner(m.Name()+" is ready"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stay attached to the server log after setup")
	return cmd
}
