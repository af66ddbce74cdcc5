package simulate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/noxsec/attacksim/internal/catalog"
	"github.com/noxsec/attacksim/internal/report"
)

// Orchestrator runs a whole catalog and collects the results.
type Orchestrator struct {
	Runner *Runner

	// Concurrency is the worker count. Values <= 1 run the catalog
	// strictly in order, one command to completion at a time, which is
	// the default: commands have host side effects and concurrent runs
	// make result attribution to security tooling ambiguous.
	Concurrency int

	// Progress, when set, is called just before each command starts so
	// an operator can tell a long-running command from a hang. With
	// Concurrency > 1 it is called from worker goroutines.
	Progress func(index, total int, spec catalog.CommandSpec)
}

// RunAll executes every spec and returns one record per spec, in input
// order regardless of completion order. A failing command never stops
// the remainder. An empty catalog yields an empty run.
func (o *Orchestrator) RunAll(ctx context.Context, specs []catalog.CommandSpec) *report.Run {
	run := &report.Run{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now(),
		Records:     make([]report.Record, len(specs)),
	}

	if o.Concurrency <= 1 {
		for i, spec := range specs {
			if ctx.Err() != nil {
				run.Records[i] = cancelledRecord(spec)
				continue
			}
			o.progress(i, len(specs), spec)
			run.Records[i] = o.Runner.Run(ctx, spec)
		}
		return run
	}

	workers := o.Concurrency
	if workers > len(specs) {
		workers = len(specs)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				if ctx.Err() != nil {
					run.Records[i] = cancelledRecord(specs[i])
					continue
				}
				o.progress(i, len(specs), specs[i])
				// Each record lands in its own slot, so report order
				// always matches catalog order.
				run.Records[i] = o.Runner.Run(ctx, specs[i])
			}
		}()
	}
	for i := range specs {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return run
}

// cancelledMessage marks catalog entries that were never executed
// because the batch was cancelled. A distinct label keeps an
// interrupted run's report from reading as host-blocked failures.
const cancelledMessage = "not executed: batch cancelled"

func cancelledRecord(spec catalog.CommandSpec) report.Record {
	return report.Record{
		Command:        spec.Command,
		Description:    spec.Description,
		Severity:       spec.Severity,
		MitreAttackTag: spec.MitreAttackTag,
		Succeeded:      false,
		ErrorMessage:   cancelledMessage,
	}
}

func (o *Orchestrator) progress(i, n int, spec catalog.CommandSpec) {
	if o.Progress != nil {
		o.Progress(i, n, spec)
	}
}
