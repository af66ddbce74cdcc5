package simulate

import (
	"context"

	"github.com/noxsec/attacksim/internal/catalog"
	"github.com/noxsec/attacksim/internal/report"
	"github.com/noxsec/attacksim/internal/runner"
)

// Executor runs one command string and captures its outcome.
// Implemented by runner.Runner.
type Executor interface {
	Exec(ctx context.Context, command string) (*runner.ExecResult, error)
}

// Runner executes one catalog entry and classifies its outcome.
type Runner struct {
	Executor   Executor
	Classifier *Classifier
}

// Run executes spec and returns its result record. Every failure mode,
// including an execution-layer fault, ends up as data in the record;
// Run never returns an error and never panics the batch.
func (r *Runner) Run(ctx context.Context, spec catalog.CommandSpec) report.Record {
	res, err := r.Executor.Exec(ctx, spec.Command)
	succeeded, errMsg := r.Classifier.Classify(res, err)

	return report.Record{
		Command:        spec.Command,
		Description:    spec.Description,
		Severity:       spec.Severity,
		MitreAttackTag: spec.MitreAttackTag,
		Succeeded:      succeeded,
		ErrorMessage:   errMsg,
	}
}
