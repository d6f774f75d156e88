package smoke

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zeropsio/fizzcheck/internal/fizzbuzz"
	"github.com/zeropsio/fizzcheck/internal/ops"
)

// FizzBuzzCaseName is the name of the fizzBuzz API case.
const FizzBuzzCaseName = "test_fizzbuzz"

// FizzBuzzCase checks the fizzBuzz API answer for every input of data.
// The first invalid or wrong answer fails the case.
func FizzBuzzCase(data TestData) Case {
	return Case{
		Name:             FizzBuzzCaseName,
		Description:      "Test to check fizzBuzz API and validate response",
		Tags:             []string{"advanced"},
		RequiredHardware: false,
		Body: func(t *T) error {
			for _, in := range data.Inputs {
				input := string(in)
				if _, ok := fizzbuzz.TryParseInt(input); !ok {
					t.Log().Debug("check for no FizzBuzz input", slog.String("input", input))
				}

				res, err := ops.Check(t.Context(), t.Client(), t.Counter(), input)
				if errors.Is(err, ops.ErrInvalidResponse) {
					t.Log().Debug("invalid answer", slog.String("input", input), slog.String("error", err.Error()))
					return Failf("Invalid API response")
				}
				if err != nil {
					return err
				}

				t.Record(*res)
				if !res.Valid {
					return Failf("Wrong FizzBuzz Response! Number: %s, Response: %s", reportedNumber(res), res.Answer)
				}
			}
			return nil
		},
	}
}

// reportedNumber is the verified number; on the VM-count path the raw input
// is shown next to it.
func reportedNumber(res *ops.CheckResult) string {
	if res.NumberSource == ops.SourceVMCount {
		return fmt.Sprintf("%d (input %q)", res.Number, res.Input)
	}
	return fmt.Sprintf("%d", res.Number)
}
