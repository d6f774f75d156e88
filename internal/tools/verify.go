package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeropsio/fizzcheck/internal/ops"
)

// VerifyInput is the input type for fizzbuzz_verify.
type VerifyInput struct {
	Number   int    `json:"number"   jsonschema:"The number the answer was given for. Any integer, including zero and negatives."`
	Response string `json:"response" jsonschema:"The answer to judge. Compared case-insensitively."`
}

// RegisterVerify registers the fizzbuzz_verify tool.
func RegisterVerify(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name: "fizzbuzz_verify",
		Description: "Judge whether a response is a correct FizzBuzz answer for a number. " +
			"Multiples of 15 need fizzbuzz, of 3 fizz, of 5 buzz; any other number accepts any run of decimal digits.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Verify a FizzBuzz answer",
			ReadOnlyHint:   true,
			IdempotentHint: true,
			OpenWorldHint:  boolPtr(false),
		},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input VerifyInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(ops.VerifyAnswer(input.Number, input.Response)), nil, nil
	})
}
