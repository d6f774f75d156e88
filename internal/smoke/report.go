package smoke

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/zeropsio/fizzcheck/internal/ops"
)

// Report is the result of one smoke run.
type Report struct {
	ID       string        `json:"id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Cases    []CaseResult  `json:"cases"`
}

// CaseResult is the result of one case.
type CaseResult struct {
	Name     string            `json:"name"`
	Tags     []string          `json:"tags,omitempty"`
	Outcome  string            `json:"outcome"`
	Message  string            `json:"message,omitempty"`
	Checks   []ops.CheckResult `json:"checks,omitempty"`
	Duration time.Duration     `json:"duration"`
}

// Passed reports whether no case failed or errored. Skipped cases do not count.
func (r *Report) Passed() bool {
	for _, c := range r.Cases {
		if c.Outcome == OutcomeFail || c.Outcome == OutcomeError {
			return false
		}
	}
	return true
}

// Count returns the number of cases with the given outcome.
func (r *Report) Count(outcome string) int {
	n := 0
	for _, c := range r.Cases {
		if c.Outcome == outcome {
			n++
		}
	}
	return n
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Print writes a human-readable summary.
func (r *Report) Print(w io.Writer) {
	for _, c := range r.Cases {
		fmt.Fprintf(w, "%s %s (%s)\n", outcomeLabel(c.Outcome), c.Name, c.Duration.Round(time.Millisecond))
		for _, chk := range c.Checks {
			mark := color.GreenString("ok")
			if !chk.Valid {
				mark = color.RedString("wrong")
			}
			fmt.Fprintf(w, "    %-5s input=%q number=%d (%s) answer=%q\n", mark, chk.Input, chk.Number, chk.NumberSource, chk.Answer)
		}
		if c.Message != "" {
			fmt.Fprintf(w, "    %s\n", c.Message)
		}
	}
	fmt.Fprintf(w, "\nrun %s: %d passed, %d failed, %d errors, %d skipped in %s\n",
		r.ID, r.Count(OutcomePass), r.Count(OutcomeFail), r.Count(OutcomeError), r.Count(OutcomeSkip),
		r.Duration.Round(time.Millisecond))
}

func outcomeLabel(outcome string) string {
	switch outcome {
	case OutcomePass:
		return color.GreenString("PASS ")
	case OutcomeFail:
		return color.RedString("FAIL ")
	case OutcomeError:
		return color.RedString("ERROR")
	default:
		return color.YellowString("SKIP ")
	}
}
