package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/systemstart/devkit/pkg/api"
	"github.com/systemstart/devkit/pkg/pipeline"
	"github.com/systemstart/devkit/pkg/toolchain"
	"github.com/systemstart/devkit/pkg/ui"
)

// loadManifest resolves the project directory and loads its manifest.
// Errors are fatal: no command can run without a valid configuration.
func loadManifest(dirFlag string) *api.Manifest {
	dir := dirFlag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			slog.Error("failed to resolve working directory", "error", err)
			os.Exit(exitManifestError)
		}
		dir, err = api.FindRoot(wd)
		if err != nil {
			slog.Error("failed to locate project root", "error", err)
			os.Exit(exitManifestError)
		}
	}

	m, err := api.Load(dir)
	if err != nil {
		slog.Error("failed to load manifest", "error", err)
		os.Exit(exitManifestError)
	}
	return m
}

// includeEnv loads the project's environment file so tool invocations
// inherit it.
func includeEnv(m *api.Manifest) {
	err := godotenv.Load(m.EnvPath())
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load env file", "file", m.EnvPath(), "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Info("no env file found")
	} else {
		slog.Info("using env file", "file", m.EnvPath())
	}
}

// printResult renders one status line per finished step on stderr, so
// stdout stays clean for piped data.
func printResult(res pipeline.Result) {
	var line string
	switch {
	case res.Outcome.Failed():
		line = ui.ErrorMsg("%s: %s", res.Step, res.Outcome.Message())
	case res.Outcome.Message() != "":
		line = ui.SuccessMsg("%s %s", res.Step, ui.Muted("("+res.Outcome.Message()+")"))
	default:
		line = ui.SuccessMsg("%s", res.Step)
	}
	fmt.Fprintln(os.Stderr, line)
}

// exitCodeFor picks the exit code of a failed provisioning run: the
// failing tool's own exit status when it carries one.
func exitCodeFor(report pipeline.Report) int {
	if failure := report.FirstFailure(); failure != nil {
		if code, ok := toolchain.ExitCode(failure.Outcome.Err); ok && code > 0 {
			return code
		}
	}
	return exitFailure
}
