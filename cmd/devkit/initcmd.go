package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/systemstart/devkit/pkg/scaffold"
)

func newInitCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write starter configuration files",
		Long: `Init scaffolds an environment template and a devkit manifest in
the project directory. Files that already exist are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := *dir
			if target == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				target = wd
			}

			s := scaffold.New(target)
			report := s.Run(cmd.Context(), printResult)
			if report.Failed() {
				os.Exit(exitFailure)
			}
			return nil
		},
	}
}
