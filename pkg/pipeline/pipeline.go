// Package pipeline executes an ordered list of named steps and records
// a per-step outcome for each one.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

// Status classifies the outcome of a single step.
type Status string

const (
	// StatusSuccess means the step did its work.
	StatusSuccess Status = "success"
	// StatusSkipped means the step found nothing to do. Skips are not
	// errors and never affect the pipeline verdict.
	StatusSkipped Status = "skipped"
	// StatusFailed means the step's action failed.
	StatusFailed Status = "failed"
)

// Outcome is the result of running one step's action.
type Outcome struct {
	Status Status
	Detail string // skip reason or success annotation
	Err    error  // cause, set when Status is StatusFailed
}

// Success returns a successful outcome.
func Success() Outcome {
	return Outcome{Status: StatusSuccess}
}

// Successf returns a successful outcome with an annotation, e.g. a
// detected tool version.
func Successf(format string, args ...any) Outcome {
	return Outcome{Status: StatusSuccess, Detail: fmt.Sprintf(format, args...)}
}

// Skip returns a skipped outcome with the reason nothing needed doing.
func Skip(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Detail: reason}
}

// Fail returns a failed outcome wrapping err.
func Fail(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// Failf returns a failed outcome with a formatted message.
func Failf(format string, args ...any) Outcome {
	return Outcome{Status: StatusFailed, Err: fmt.Errorf(format, args...)}
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// Message returns the human-readable text of the outcome: the error
// text for failures, the detail otherwise.
func (o Outcome) Message() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return o.Detail
}

// Step is one named unit of pipeline work. Actions re-check their own
// preconditions on every invocation, so running a pipeline twice is
// safe. A step marked Fatal stops the pipeline when it fails; failures
// of other steps are recorded and execution continues.
type Step struct {
	Name  string
	Fatal bool
	Run   func(ctx context.Context) Outcome
}

// Result pairs a step name with its outcome.
type Result struct {
	Step    string
	Outcome Outcome
}

// Report is the ordered record of one pipeline run. It contains one
// result per executed step; steps after a fatal failure are absent.
type Report struct {
	Results []Result
}

// Failed reports whether any executed step failed.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Outcome.Failed() {
			return true
		}
	}
	return false
}

// FirstFailure returns the first failed result, or nil when every step
// succeeded or was skipped.
func (r Report) FirstFailure() *Result {
	for i := range r.Results {
		if r.Results[i].Outcome.Failed() {
			return &r.Results[i]
		}
	}
	return nil
}

// Count returns the number of results with the given status.
func (r Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome.Status == status {
			n++
		}
	}
	return n
}

// Run executes steps in declaration order. After each step, notify (if
// non-nil) receives the result. A failed step marked Fatal ends the
// run immediately; otherwise the failure is recorded and the remaining
// steps still execute. Cancellation of ctx between steps records a
// failed result for the pending step and ends the run.
func Run(ctx context.Context, steps []Step, notify func(Result)) Report {
	var report Report
	for _, step := range steps {
		var res Result
		if err := ctx.Err(); err != nil {
			res = Result{Step: step.Name, Outcome: Fail(err)}
		} else {
			slog.Debug("running step", "step", step.Name)
			res = Result{Step: step.Name, Outcome: step.Run(ctx)}
		}
		report.Results = append(report.Results, res)
		if notify != nil {
			notify(res)
		}
		if res.Outcome.Failed() {
			slog.Debug("step failed", "step", step.Name, "error", res.Outcome.Err)
			if step.Fatal || ctx.Err() != nil {
				break
			}
			continue
		}
		slog.Debug("step finished", "step", step.Name, "status", res.Outcome.Status)
	}
	return report
}
