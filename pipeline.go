package binstall

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// Pipeline is a support structure that runs the provisioning stages in order.
// The pipeline can be customized with pre- and post- execution hook functions,
// where setup common to all stages can be defined.
type Pipeline struct {
	PreExecHook  Stage
	PostExecHook Stage
}

// New constructs a pipeline.
func New(opts ...Option) *Pipeline {
	p := Pipeline{
		PreExecHook:  func(_ context.Context) error { return nil },
		PostExecHook: func(_ context.Context) error { return nil },
	}

	for _, opt := range opts {
		opt(&p)
	}

	return &p
}

// Execute a list of stages inside the pipeline.
// Stages run strictly sequentially; the first failure terminates the run and
// is reported as the outcome. No stage after a failed one is executed.
func (p *Pipeline) Execute(ctx context.Context, stages ...Stage) error {
	start := time.Now()

	fmt.Printf("\n")

	if err := p.PreExecHook(ctx); err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	var failure error
	for i := range stages {
		if failure = runStage(ctx, stages[i]); failure != nil {
			break
		}
	}

	if err := p.PostExecHook(ctx); err != nil && failure == nil {
		failure = fmt.Errorf("failed to run post exec hook: %w", err)
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	color.New(color.FgHiBlack).Printf("------------------------\n\n")

	if failure != nil {
		color.Red(" ✘ failed after %s", elapsed)
		color.Red("   • %s", failure.Error())
		fmt.Printf("\n")
		return failure
	}

	color.Green(" ✔ all good after %s\n\n", elapsed)
	return nil
}

// runStage executes a single stage, converting panics into errors so that
// no failure mode can escape without producing a run outcome.
func runStage(ctx context.Context, stage Stage) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if recerr, ok := rec.(error); ok {
				err = recerr
				return
			}
			err = fmt.Errorf("%w: %v", ErrUnknown, rec)
		}
	}()

	return stage(ctx)
}

// Stage defines the basic function that the pipeline executes.
// Additional configuration and tweaks can be done by using closures which
// return Stages.
type Stage func(ctx context.Context) error

type Option func(p *Pipeline)

// WithPreExecFunc allows specifying a stage that will be run every execution,
// before the specific execution stages are run.
func WithPreExecFunc(hook Stage) Option {
	return func(p *Pipeline) {
		p.PreExecHook = hook
	}
}

// WithPostExecFunc allows specifying a stage that will be run every execution,
// after the specific execution stages are run.
func WithPostExecFunc(hook Stage) Option {
	return func(p *Pipeline) {
		p.PostExecHook = hook
	}
}
