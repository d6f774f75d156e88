package smoke

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zeropsio/fizzcheck/internal/ops"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

// Case is one smoke test case.
type Case struct {
	Name             string
	Description      string
	Tags             []string
	RequiredHardware bool
	Body             func(t *T) error
}

// Failure is returned by a case body when an assertion does not hold.
// Any other error ends the case as an error.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Failf builds a Failure.
func Failf(format string, args ...any) error {
	return &Failure{Message: fmt.Sprintf(format, args...)}
}

// IsFailure reports whether err is an assertion failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// T is the per-case state handed to a case body. A fresh T is created for
// every case run.
type T struct {
	ctx     context.Context
	client  platform.Client
	counter platform.InstanceCounter
	log     *slog.Logger
	cleanup []Resource
	checks  []ops.CheckResult
}

func (t *T) Context() context.Context          { return t.ctx }
func (t *T) Client() platform.Client           { return t.client }
func (t *T) Counter() platform.InstanceCounter { return t.counter }
func (t *T) Log() *slog.Logger                 { return t.log }

// AddCleanup registers a resource to release at tearDown.
func (t *T) AddCleanup(r Resource) {
	t.cleanup = append(t.cleanup, r)
}

// Record appends a check result to the case report.
func (t *T) Record(c ops.CheckResult) {
	t.checks = append(t.checks, c)
}
