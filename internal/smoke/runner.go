// Package smoke runs the fizzBuzz API smoke suite: each case gets a setUp,
// its body and an unconditional tearDown that releases registered resources.
package smoke

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/zeropsio/fizzcheck/internal/logger"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

// Outcomes of a case run.
const (
	OutcomePass  = "pass"
	OutcomeFail  = "fail"
	OutcomeError = "error"
	OutcomeSkip  = "skip"
)

// RunOptions selects which cases run.
type RunOptions struct {
	// Tags keeps cases carrying at least one of the tags; empty keeps all.
	Tags []string
	// Hardware enables cases that need real hardware.
	Hardware bool
}

// Runner executes cases sequentially against one API client.
type Runner struct {
	client  platform.Client
	counter platform.InstanceCounter
	log     *slog.Logger
	cases   []Case
}

// NewRunner creates a runner. counter supplies the guest instance count for
// non-numeric inputs.
func NewRunner(client platform.Client, counter platform.InstanceCounter, log *slog.Logger, cases ...Case) *Runner {
	if log == nil {
		log = logger.Discard()
	}
	return &Runner{client: client, counter: counter, log: log, cases: cases}
}

// Run executes the selected cases. A failing case does not stop the others.
func (r *Runner) Run(ctx context.Context, opts RunOptions) *Report {
	const op = "smoke.Run"

	report := &Report{
		ID:      ulid.MustNew(ulid.Now(), rand.Reader).String(),
		Started: time.Now(),
	}
	log := r.log.With(slog.String("op", op), slog.String("run", report.ID))
	log.Info("smoke run started", slog.Int("cases", len(r.cases)))

	for _, c := range r.cases {
		if reason := skipReason(c, opts); reason != "" {
			log.Info("case skipped", slog.String("case", c.Name), slog.String("reason", reason))
			report.Cases = append(report.Cases, CaseResult{Name: c.Name, Tags: c.Tags, Outcome: OutcomeSkip, Message: reason})
			continue
		}
		res := r.runCase(ctx, log, c)
		report.Cases = append(report.Cases, res)
	}

	report.Duration = time.Since(report.Started)
	log.Info("smoke run finished",
		slog.Bool("passed", report.Passed()),
		slog.Duration("duration", report.Duration))
	return report
}

func (r *Runner) runCase(ctx context.Context, log *slog.Logger, c Case) CaseResult {
	log = log.With(slog.String("case", c.Name))
	start := time.Now()

	// setUp
	t := &T{
		ctx:     ctx,
		client:  r.client,
		counter: r.counter,
		log:     log,
	}

	err := runBody(c, t)

	// tearDown: release errors are logged, never reported as the case result.
	if cerr := cleanupResources(context.WithoutCancel(ctx), r.client, t.cleanup); cerr != nil {
		log.Warn("Warning! Exception in tearDown", logger.Err(cerr))
	}

	res := CaseResult{
		Name:     c.Name,
		Tags:     c.Tags,
		Outcome:  OutcomePass,
		Checks:   t.checks,
		Duration: time.Since(start),
	}
	switch {
	case err == nil:
		log.Info("case passed", slog.Int("checks", len(t.checks)))
	case IsFailure(err):
		res.Outcome = OutcomeFail
		res.Message = err.Error()
		log.Error("case failed", slog.String("message", res.Message))
	default:
		res.Outcome = OutcomeError
		res.Message = err.Error()
		log.Error("case errored", logger.Err(err))
	}
	return res
}

// runBody runs the case body, turning a panic into an error.
func runBody(c Case, t *T) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic in %s: %v", c.Name, p)
		}
	}()
	return c.Body(t)
}

func skipReason(c Case, opts RunOptions) string {
	if c.RequiredHardware && !opts.Hardware {
		return "requires hardware"
	}
	if len(opts.Tags) == 0 {
		return ""
	}
	for _, tag := range c.Tags {
		if slices.Contains(opts.Tags, tag) {
			return ""
		}
	}
	return fmt.Sprintf("no tag matches %v", opts.Tags)
}
