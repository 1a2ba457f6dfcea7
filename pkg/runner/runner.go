// Package runner provides multi-bundle build orchestration: it fans a
// configuration's bundles out over a worker pool and aggregates the
// per-bundle outcomes deterministically.
package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/danspam/bundlemap/pkg/bundle"
)

// Runner builds many bundles through one orchestrator.
type Runner struct {
	// Orchestrator handles per-bundle building with its own locking.
	Orchestrator *bundle.Orchestrator
}

// New creates a Runner using the given orchestrator.
func New(o *bundle.Orchestrator) *Runner {
	return &Runner{Orchestrator: o}
}

// Run builds every request concurrently and returns outcomes in request
// order. Distinct bundles proceed in parallel; same-output requests
// serialize inside the orchestrator. Respects context cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	requests := opts.Requests

	result := &Result{
		Bundles: make([]Outcome, 0, len(requests)),
	}
	result.Stats.BundlesRequested = len(requests)

	if len(requests) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(requests) {
		jobs = len(requests)
	}

	workCh := make(chan bundle.Request)
	outCh := make(chan Outcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, req := range requests {
			select {
			case <-ctx.Done():
				return
			case workCh <- req:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; re-sort into request order.
	outcomes := make(map[string]Outcome, len(requests))
	for outcome := range outCh {
		outcomes[outcome.Name] = outcome
	}
	for _, req := range requests {
		if outcome, ok := outcomes[req.Name]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan bundle.Request, outCh chan<- Outcome) {
	for req := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := Outcome{Name: req.Name}
		art, err := r.Orchestrator.Build(ctx, req)
		outcome.Artifact = art
		outcome.Error = err

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
