// Package scaffold writes starter configuration files for a project:
// the environment template and the devkit manifest. Existing files
// are never overwritten.
package scaffold

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/devkit/pkg/api"
	"github.com/systemstart/devkit/pkg/pipeline"
)

//go:embed templates
var templatesFS embed.FS

// Scaffold writes starter files into a project directory.
type Scaffold struct {
	Dir     string
	Project string
}

// New returns a Scaffold for dir, deriving the project name from the
// directory name.
func New(dir string) *Scaffold {
	return &Scaffold{Dir: dir, Project: filepath.Base(dir)}
}

// templateData is what the scaffold templates render with.
type templateData struct {
	Project string
	Date    time.Time
}

// Steps returns one pipeline step per starter file. The steps are not
// fatal: a project that already has one file still gets the others.
func (s *Scaffold) Steps() []pipeline.Step {
	return []pipeline.Step{
		{Name: api.DefaultEnvTemplate, Run: s.render(api.DefaultEnvTemplate, "templates/env.example.tmpl")},
		{Name: api.DefaultManifest, Run: s.render(api.DefaultManifest, "templates/devkit.yaml.tmpl")},
	}
}

// Run executes the scaffold pipeline.
func (s *Scaffold) Run(ctx context.Context, notify func(pipeline.Result)) pipeline.Report {
	return pipeline.Run(ctx, s.Steps(), notify)
}

func (s *Scaffold) render(target, templateName string) func(context.Context) pipeline.Outcome {
	return func(ctx context.Context) pipeline.Outcome {
		outPath := filepath.Join(s.Dir, target)
		if _, err := os.Stat(outPath); err == nil {
			return pipeline.Skip(target + " already exists")
		} else if !errors.Is(err, fs.ErrNotExist) {
			return pipeline.Fail(fmt.Errorf("checking %s: %w", target, err))
		}

		content, err := templatesFS.ReadFile(templateName)
		if err != nil {
			return pipeline.Fail(fmt.Errorf("reading template: %w", err))
		}

		tmpl, err := template.New(target).Funcs(sprig.FuncMap()).Parse(string(content))
		if err != nil {
			return pipeline.Fail(fmt.Errorf("parsing template: %w", err))
		}

		var buf bytes.Buffer
		data := templateData{Project: s.Project, Date: time.Now()}
		if err := tmpl.Execute(&buf, data); err != nil {
			return pipeline.Fail(fmt.Errorf("executing template: %w", err))
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
			return pipeline.Fail(fmt.Errorf("creating parent directories: %w", err))
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0o600); err != nil {
			return pipeline.Fail(fmt.Errorf("writing output file: %w", err))
		}
		return pipeline.Successf("wrote %s", target)
	}
}
