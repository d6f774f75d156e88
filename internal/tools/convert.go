package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeropsio/fizzcheck/internal/ops"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

// convertError converts an error to a CallToolResult with IsError=true.
// PlatformErrors and invalid answers are serialized as structured JSON with
// code/error/suggestion. Generic errors are returned as plain text.
func convertError(err error) *mcp.CallToolResult {
	result := map[string]string{"error": err.Error()}

	var pe *platform.PlatformError
	switch {
	case errors.Is(err, ops.ErrInvalidResponse):
		// The wrapped PlatformError details why the answer was unreadable.
		result["code"] = platform.ErrInvalidResponse
	case errors.As(err, &pe):
		result["code"] = pe.Code
		result["error"] = pe.Message
		if pe.Suggestion != "" {
			result["suggestion"] = pe.Suggestion
		}
	default:
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			IsError: true,
		}
	}

	b, err := json.Marshal(result)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("marshal error: %v", err)}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
		IsError: true,
	}
}

// jsonResult marshals v to JSON and returns it as a CallToolResult.
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("marshal error: %v", err)}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(b)}}}
}

// boolPtr returns a pointer to b. Used for optional bool fields in ToolAnnotations.
func boolPtr(b bool) *bool { return &b }
