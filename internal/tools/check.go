package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeropsio/fizzcheck/internal/ops"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

// CheckInput is the input type for fizzbuzz_check.
type CheckInput struct {
	Input string `json:"input" jsonschema:"Value sent as the fizzBuzz number. A non-integer (e.g. empty) omits the number and verifies the answer against the guest VM count."`
}

// RegisterCheck registers the fizzbuzz_check tool.
func RegisterCheck(srv *mcp.Server, client platform.Client, counter platform.InstanceCounter) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "fizzbuzz_check",
		Description: "Call the fizzBuzz API command with one input and verify its answer.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Check the fizzBuzz API",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.Check(ctx, client, counter, input.Input)
		if err != nil {
			return convertError(err), nil, nil
		}
		return jsonResult(result), nil, nil
	})
}
