package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeropsio/fizzcheck/internal/ops"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

func intPtr(n int) *int { return &n }

// correctMock answers every default input correctly, with two guest VMs.
func correctMock() *platform.Mock {
	return platform.NewMock().
		WithVirtualMachines([]platform.VirtualMachine{{ID: "vm-1"}, {ID: "vm-2"}}).
		WithAnswer(intPtr(3), "Fizz").
		WithAnswer(intPtr(5), "Buzz").
		WithAnswer(intPtr(15), "FizzBuzz").
		WithAnswer(intPtr(50), "Buzz").
		WithAnswer(nil, "2").
		WithAnswer(intPtr(4), "17")
}

func runFizzBuzz(t *testing.T, mock *platform.Mock, data TestData) *Report {
	t.Helper()
	r := NewRunner(mock, mock, nil, FizzBuzzCase(data))
	return r.Run(context.Background(), RunOptions{})
}

func TestRunner_FizzBuzzPasses(t *testing.T) {
	t.Parallel()
	report := runFizzBuzz(t, correctMock(), DefaultTestData())

	require.Len(t, report.Cases, 1)
	c := report.Cases[0]
	assert.Equal(t, OutcomePass, c.Outcome, c.Message)
	assert.True(t, report.Passed())
	assert.Len(t, report.ID, 26)
	require.Len(t, c.Checks, 6)
	assert.Equal(t, ops.SourceVMCount, c.Checks[4].NumberSource)
	assert.Equal(t, 2, c.Checks[4].Number)
}

func TestRunner_WrongAnswerFails(t *testing.T) {
	t.Parallel()
	mock := correctMock().WithAnswer(intPtr(5), "Fizz")
	report := runFizzBuzz(t, mock, DefaultTestData())

	c := report.Cases[0]
	assert.Equal(t, OutcomeFail, c.Outcome)
	assert.Equal(t, "Wrong FizzBuzz Response! Number: 5, Response: fizz", c.Message)
	assert.False(t, report.Passed())
	// The case stops at the first wrong answer.
	require.Len(t, c.Checks, 2)
	assert.Len(t, mock.FizzBuzzCalls(), 2)
}

func TestRunner_WrongFallbackAnswerFails(t *testing.T) {
	t.Parallel()
	mock := correctMock().WithAnswer(nil, "fizz")
	report := runFizzBuzz(t, mock, DefaultTestData())

	c := report.Cases[0]
	assert.Equal(t, OutcomeFail, c.Outcome)
	assert.Equal(t, "Wrong FizzBuzz Response! Number: 2 (input \"\"), Response: fizz", c.Message)
}

func TestRunner_InvalidResponseFails(t *testing.T) {
	t.Parallel()
	mock := correctMock().WithResponse(intPtr(15), &platform.FizzBuzzResponse{Answer: json.RawMessage(`[1]`)})
	report := runFizzBuzz(t, mock, DefaultTestData())

	c := report.Cases[0]
	assert.Equal(t, OutcomeFail, c.Outcome)
	assert.Equal(t, "Invalid API response", c.Message)
}

func TestRunner_CountErrorIsError(t *testing.T) {
	t.Parallel()
	mock := correctMock().WithError("ListVirtualMachines", errors.New("list vms: boom"))
	report := runFizzBuzz(t, mock, DefaultTestData())

	c := report.Cases[0]
	assert.Equal(t, OutcomeError, c.Outcome)
	assert.Equal(t, "list vms: boom", c.Message)
	assert.Len(t, c.Checks, 4)
}

func TestRunner_APIErrorIsError(t *testing.T) {
	t.Parallel()
	mock := correctMock().WithError("FizzBuzz", platform.NewPlatformError(platform.ErrAPIError, "down", ""))
	report := runFizzBuzz(t, mock, DefaultTestData())
	assert.Equal(t, OutcomeError, report.Cases[0].Outcome)
}

func TestRunner_CleanupAlwaysRuns(t *testing.T) {
	t.Parallel()
	mock := platform.NewMock().WithError("DestroyVirtualMachine", errors.New("already gone"))

	failing := Case{
		Name: "creates_and_fails",
		Body: func(t *T) error {
			t.AddCleanup(VirtualMachine{ID: "vm-a"})
			t.AddCleanup(VirtualMachine{ID: "vm-b"})
			return Failf("nope")
		},
	}
	passing := Case{
		Name: "creates_and_passes",
		Body: func(t *T) error {
			t.AddCleanup(VirtualMachine{ID: "vm-c"})
			return nil
		},
	}

	report := NewRunner(mock, mock, nil, failing, passing).Run(context.Background(), RunOptions{})

	require.Len(t, report.Cases, 2)
	// Release errors are logged, not reported.
	assert.Equal(t, OutcomeFail, report.Cases[0].Outcome)
	assert.Equal(t, "nope", report.Cases[0].Message)
	assert.Equal(t, OutcomePass, report.Cases[1].Outcome)
}

func TestRunner_CleanupReverseOrder(t *testing.T) {
	t.Parallel()
	mock := platform.NewMock()
	c := Case{
		Name: "creates",
		Body: func(t *T) error {
			t.AddCleanup(VirtualMachine{ID: "first"})
			t.AddCleanup(VirtualMachine{ID: "second"})
			return nil
		},
	}
	NewRunner(mock, mock, nil, c).Run(context.Background(), RunOptions{})
	assert.Equal(t, []string{"second", "first"}, mock.Destroyed())
}

func TestRunner_PanicIsError(t *testing.T) {
	t.Parallel()
	mock := platform.NewMock()
	c := Case{Name: "panics", Body: func(*T) error { panic("kaboom") }}

	report := NewRunner(mock, mock, nil, c).Run(context.Background(), RunOptions{})
	assert.Equal(t, OutcomeError, report.Cases[0].Outcome)
	assert.Contains(t, report.Cases[0].Message, "kaboom")
}

func TestRunner_Selection(t *testing.T) {
	t.Parallel()
	ran := map[string]bool{}
	mk := func(name string, tags []string, hw bool) Case {
		return Case{Name: name, Tags: tags, RequiredHardware: hw, Body: func(*T) error {
			ran[name] = true
			return nil
		}}
	}
	cases := []Case{
		mk("advanced", []string{"advanced"}, false),
		mk("basic", []string{"basic"}, false),
		mk("hardware", []string{"advanced"}, true),
	}
	mock := platform.NewMock()

	report := NewRunner(mock, mock, nil, cases...).Run(context.Background(), RunOptions{Tags: []string{"advanced"}})

	assert.True(t, ran["advanced"])
	assert.False(t, ran["basic"])
	assert.False(t, ran["hardware"])
	assert.Equal(t, 1, report.Count(OutcomePass))
	assert.Equal(t, 2, report.Count(OutcomeSkip))
	assert.True(t, report.Passed())
}

func TestFizzBuzzCase_Metadata(t *testing.T) {
	t.Parallel()
	c := FizzBuzzCase(DefaultTestData())
	assert.Equal(t, FizzBuzzCaseName, c.Name)
	assert.Equal(t, []string{"advanced"}, c.Tags)
	assert.False(t, c.RequiredHardware)
}
