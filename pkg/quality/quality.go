// Package quality runs the code quality pipeline: dependency sync,
// lint, formatting, import sorting and tests. Failures are collected
// rather than aborting, so one run reports everything that is wrong.
package quality

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/systemstart/devkit/pkg/api"
	"github.com/systemstart/devkit/pkg/pipeline"
	"github.com/systemstart/devkit/pkg/toolchain"
	"github.com/systemstart/devkit/pkg/ui"
)

// Checks wires the quality steps for one project.
type Checks struct {
	Manifest *api.Manifest
	Probe    toolchain.Probe
	Runner   *toolchain.Runner

	// Status receives retry notices and warnings.
	Status io.Writer
}

// New returns Checks bound to the host environment.
func New(m *api.Manifest) *Checks {
	return &Checks{
		Manifest: m,
		Probe:    toolchain.PathProbe{},
		Runner:   &toolchain.Runner{Dir: m.Dir},
		Status:   os.Stderr,
	}
}

// Steps returns the quality pipeline. Only the package manager check
// is fatal: without it no other tool can run. Every later failure is
// recorded and the remaining checks still execute.
func (c *Checks) Steps() []pipeline.Step {
	return []pipeline.Step{
		{Name: "package manager", Fatal: true, Run: c.requireInstaller},
		{Name: "dependency sync", Run: c.syncDependencies},
		{Name: "lint", Run: c.runTool(c.Manifest.Tools.Lint)},
		{Name: "format", Run: c.runTool(c.Manifest.Tools.Format)},
		{Name: "imports", Run: c.runTool(c.Manifest.Tools.Imports)},
		{Name: "tests", Run: c.runTool(c.Manifest.Tools.Test)},
	}
}

// Run executes the quality pipeline.
func (c *Checks) Run(ctx context.Context, notify func(pipeline.Result)) pipeline.Report {
	return pipeline.Run(ctx, c.Steps(), notify)
}

func (c *Checks) requireInstaller(ctx context.Context) pipeline.Outcome {
	cmd := c.Manifest.Tools.Installer.Command
	if _, ok := c.Probe.Look(cmd); !ok {
		return pipeline.Failf("%s not found in PATH, run %q first", cmd, "devkit setup")
	}
	return pipeline.Success()
}

// syncDependencies runs quietly first: when dependencies are already
// in sync the tool's output is pure noise. A quiet failure triggers
// exactly one verbose re-run, so the user sees what the tool said.
func (c *Checks) syncDependencies(ctx context.Context) pipeline.Outcome {
	argv := c.Manifest.Tools.Sync
	if _, err := c.Runner.RunQuiet(ctx, argv); err == nil {
		return pipeline.Success()
	}

	fmt.Fprintln(c.Status, ui.WarnMsg("dependency sync failed, retrying verbosely"))
	if err := c.Runner.Run(ctx, argv); err != nil {
		return pipeline.Fail(err)
	}
	return pipeline.Success()
}

func (c *Checks) runTool(argv []string) func(context.Context) pipeline.Outcome {
	return func(ctx context.Context) pipeline.Outcome {
		if err := c.Runner.Run(ctx, argv); err != nil {
			return pipeline.Fail(err)
		}
		return pipeline.Success()
	}
}
