package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/systemstart/devkit/pkg/logging"
	"github.com/systemstart/devkit/pkg/ui"
)

var version = "dev"

const (
	_ = iota
	exitFailure
	exitManifestError
	exitDotenvError
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorMsg("%v", err))
		os.Exit(exitFailure)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dir       string
		logLevel  string
		logFormat string
		noColor   bool
	)

	root := &cobra.Command{
		Use:           "devkit",
		Short:         "Provision and check a project's development environment",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.Configure(noColor)
			return logging.Initialize(logFormat, logLevel)
		},
	}

	root.PersistentFlags().StringVarP(&dir, "dir", "C", "", "Project directory (default: walk up from the working directory)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Logging level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", logging.Tint, "Logging format: json, text or tint")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newSetupCmd(&dir))
	root.AddCommand(newCheckCmd(&dir))
	root.AddCommand(newLogsCmd(&dir))
	root.AddCommand(newInitCmd(&dir))
	return root
}
