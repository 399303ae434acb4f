// Package provision prepares a project's development environment: the
// package manager, its dependencies, the environment file, and the
// log layout.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/systemstart/devkit/pkg/api"
	"github.com/systemstart/devkit/pkg/logs"
	"github.com/systemstart/devkit/pkg/pipeline"
	"github.com/systemstart/devkit/pkg/toolchain"
	"github.com/systemstart/devkit/pkg/ui"
)

// Config carries the options of one bootstrap run.
type Config struct {
	// FollowLogs keeps the process attached to the server log after
	// setup, like tail -f.
	FollowLogs bool
}

// Bootstrap wires the provisioning steps for one project.
type Bootstrap struct {
	Manifest *api.Manifest
	Probe    toolchain.Probe
	Runner   *toolchain.Runner

	// Status receives step guidance and warnings; Out receives
	// followed log data.
	Status io.Writer
	Out    io.Writer
}

// New returns a Bootstrap bound to the host environment.
func New(m *api.Manifest) *Bootstrap {
	return &Bootstrap{
		Manifest: m,
		Probe:    toolchain.PathProbe{},
		Runner:   &toolchain.Runner{Dir: m.Dir},
		Status:   os.Stderr,
		Out:      os.Stdout,
	}
}

// Steps returns the provisioning pipeline. Every step is fatal: a
// broken environment must not end up half prepared.
func (b *Bootstrap) Steps(cfg Config) []pipeline.Step {
	return []pipeline.Step{
		{Name: "package manager", Fatal: true, Run: b.ensureInstaller},
		{Name: "dependency sync", Fatal: true, Run: b.syncDependencies},
		{Name: "env file", Fatal: true, Run: b.materializeEnv},
		{Name: "log layout", Fatal: true, Run: b.prepareLogs},
		{Name: "server logs", Fatal: true, Run: b.watchLogs(cfg)},
	}
}

// Run executes the provisioning pipeline.
func (b *Bootstrap) Run(ctx context.Context, cfg Config, notify func(pipeline.Result)) pipeline.Report {
	return pipeline.Run(ctx, b.Steps(cfg), notify)
}

// ensureInstaller makes sure the package manager is on PATH,
// installing it when necessary, and reports its version.
func (b *Bootstrap) ensureInstaller(ctx context.Context) pipeline.Outcome {
	installer := b.Manifest.Tools.Installer
	if _, ok := b.Probe.Look(installer.Command); !ok {
		if installer.ScriptURL == "" {
			return pipeline.Failf("%s not found in PATH and no install script is configured", installer.Command)
		}
		fmt.Fprintln(b.Status, ui.InfoMsg("%s not found, installing from %s", installer.Command, installer.ScriptURL))
		if err := b.runInstallScript(ctx); err != nil {
			return pipeline.Fail(err)
		}
		if _, ok := b.Probe.Look(installer.Command); !ok {
			return pipeline.Failf("%s still not in PATH after install; open a new shell and rerun setup", installer.Command)
		}
	}

	version, err := b.Probe.Version(ctx, installer.Version)
	if err != nil {
		return pipeline.Fail(err)
	}
	return pipeline.Successf("%s", version)
}

func (b *Bootstrap) syncDependencies(ctx context.Context) pipeline.Outcome {
	if err := b.Runner.Run(ctx, b.Manifest.Tools.Sync); err != nil {
		return pipeline.Fail(err)
	}
	return pipeline.Success()
}

// materializeEnv copies the environment template to the environment
// file. An existing file is never overwritten.
func (b *Bootstrap) materializeEnv(ctx context.Context) pipeline.Outcome {
	m := b.Manifest
	if _, err := os.Stat(m.EnvPath()); err == nil {
		return pipeline.Skip(m.Env.File + " already exists")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return pipeline.Fail(fmt.Errorf("checking %s: %w", m.Env.File, err))
	}

	content, err := os.ReadFile(m.EnvTemplatePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pipeline.Failf("%s not found: cannot create %s", m.Env.Template, m.Env.File)
		}
		return pipeline.Fail(fmt.Errorf("reading %s: %w", m.Env.Template, err))
	}

	if err := os.WriteFile(m.EnvPath(), content, 0o600); err != nil {
		return pipeline.Fail(fmt.Errorf("writing %s: %w", m.Env.File, err))
	}
	fmt.Fprintln(b.Status, ui.WarnMsg("created %s from %s, edit it before starting the server", m.Env.File, m.Env.Template))
	return pipeline.Successf("created from %s", m.Env.Template)
}

func (b *Bootstrap) prepareLogs(ctx context.Context) pipeline.Outcome {
	created, err := logs.Ensure(b.layout())
	if err != nil {
		return pipeline.Fail(err)
	}
	if len(created) == 0 {
		return pipeline.Skip("log files already prepared")
	}
	return pipeline.Successf("created %s", strings.Join(created, ", "))
}

func (b *Bootstrap) layout() logs.Layout {
	return logs.Layout{
		Dir:      b.Manifest.LogDir(),
		Server:   b.Manifest.Logs.Server,
		Activity: b.Manifest.Logs.Activity,
	}
}

// watchLogs either attaches to the server log or tells the user how
// to, depending on the run configuration.
func (b *Bootstrap) watchLogs(cfg Config) func(context.Context) pipeline.Outcome {
	return func(ctx context.Context) pipeline.Outcome {
		if !cfg.FollowLogs {
			fmt.Fprintln(b.Status, ui.InfoMsg("follow the server log any time with %s", ui.Accent("devkit logs -f")))
			return pipeline.Success()
		}
		fmt.Fprintln(b.Status, ui.InfoMsg("following %s, interrupt to stop", b.Manifest.ServerLogPath()))
		if err := logs.Follow(ctx, b.Out, b.Manifest.ServerLogPath()); err != nil {
			return pipeline.Fail(err)
		}
		return pipeline.Success()
	}
}
