package ops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zeropsio/fizzcheck/internal/fizzbuzz"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

// Number sources reported in CheckResult.
const (
	SourceInput   = "input"
	SourceVMCount = "vm_count"
)

// ErrInvalidResponse is returned when the fizzBuzz answer cannot be read as text.
var ErrInvalidResponse = errors.New("invalid API response")

// CheckResult is the outcome of checking one fizzBuzz input.
type CheckResult struct {
	Input        string `json:"input"`
	Number       int    `json:"number"`
	NumberSource string `json:"numberSource"` // "input" or "vm_count"
	Answer       string `json:"answer"`       // lowercased
	Expected     string `json:"expected"`     // canonical answer; any digits pass for plain numbers
	Valid        bool   `json:"valid"`
}

// Check sends input to the fizzBuzz command and verifies the answer.
//
// An input that is not an integer is sent without a number; the answer is
// then verified against the guest instance count from counter. Errors from
// the count lookup are returned as they are, not turned into a verdict.
func Check(ctx context.Context, client platform.Client, counter platform.InstanceCounter, input string) (*CheckResult, error) {
	req := platform.FizzBuzzRequest{}
	number, parsed := fizzbuzz.TryParseInt(input)
	if parsed {
		req.Number = &number
	}

	resp, err := client.FizzBuzz(ctx, req)
	if err != nil {
		return nil, err
	}
	text, err := resp.AnswerText()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	answer := strings.ToLower(text)

	result := &CheckResult{
		Input:        input,
		Number:       number,
		NumberSource: SourceInput,
		Answer:       answer,
	}
	if !parsed {
		count, err := counter.CountInstances(ctx)
		if err != nil {
			return nil, err
		}
		result.Number = count
		result.NumberSource = SourceVMCount
	}

	result.Expected = fizzbuzz.Answer(result.Number)
	result.Valid = fizzbuzz.Verify(result.Number, answer)
	return result, nil
}

// VerifyResult is the outcome of judging a single number/response pair.
type VerifyResult struct {
	Number   int    `json:"number"`
	Response string `json:"response"` // lowercased
	Expected string `json:"expected"`
	Valid    bool   `json:"valid"`
}

// VerifyAnswer lowercases response and judges it against number.
func VerifyAnswer(number int, response string) VerifyResult {
	r := strings.ToLower(response)
	return VerifyResult{
		Number:   number,
		Response: r,
		Expected: fizzbuzz.Answer(number),
		Valid:    fizzbuzz.Verify(number, r),
	}
}
