package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeropsio/fizzcheck/internal/platform"
	"github.com/zeropsio/fizzcheck/internal/smoke"
)

// SmokeInput is the input type for fizzbuzz_smoke.
type SmokeInput struct {
	Tags []string `json:"tags,omitempty" jsonschema:"Run only cases carrying one of these tags. Omit to run every case."`
}

// RegisterSmoke registers the fizzbuzz_smoke tool. Every call runs the suite
// once over data.
func RegisterSmoke(srv *mcp.Server, client platform.Client, counter platform.InstanceCounter, data smoke.TestData, log *slog.Logger) {
	mcp.AddTool(srv, &mcp.Tool{
		Name: "fizzbuzz_smoke",
		Description: "Run the fizzBuzz smoke suite against the API and return the report. " +
			"A failed case is reported in the result, not as a tool error.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Run the fizzBuzz smoke suite",
			DestructiveHint: boolPtr(false),
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SmokeInput) (*mcp.CallToolResult, any, error) {
		runner := smoke.NewRunner(client, counter, log, smoke.FizzBuzzCase(data))
		report := runner.Run(ctx, smoke.RunOptions{Tags: input.Tags})
		return jsonResult(report), nil, nil
	})
}
