// Tests for: check.go - fizzbuzz_check MCP tool handler.

package tools

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeropsio/fizzcheck/internal/ops"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

func intPtr(n int) *int { return &n }

func TestCheckTool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		mock       *platform.Mock
		input      string
		wantValid  bool
		wantNumber int
		wantSource string
	}{
		{
			name:       "numeric input",
			mock:       platform.NewMock().WithAnswer(intPtr(9), "Fizz"),
			input:      "9",
			wantValid:  true,
			wantNumber: 9,
			wantSource: ops.SourceInput,
		},
		{
			name:       "wrong answer is a result, not an error",
			mock:       platform.NewMock().WithAnswer(intPtr(10), "fizz"),
			input:      "10",
			wantValid:  false,
			wantNumber: 10,
			wantSource: ops.SourceInput,
		},
		{
			name: "empty input uses vm count",
			mock: platform.NewMock().
				WithAnswer(nil, "Buzz").
				WithVirtualMachines(make([]platform.VirtualMachine, 5)),
			input:      "",
			wantValid:  true,
			wantNumber: 5,
			wantSource: ops.SourceVMCount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer()
			RegisterCheck(srv, tt.mock, tt.mock)

			result, err := callTool(t, srv, "fizzbuzz_check", map[string]any{"input": tt.input})
			var cr ops.CheckResult
			decodeResult(t, result, err, &cr)
			assert.Equal(t, tt.wantValid, cr.Valid)
			assert.Equal(t, tt.wantNumber, cr.Number)
			assert.Equal(t, tt.wantSource, cr.NumberSource)
		})
	}
}

func TestCheckTool_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		mock     *platform.Mock
		wantCode string
	}{
		{
			name:     "malformed answer",
			mock:     platform.NewMock().WithResponse(intPtr(3), &platform.FizzBuzzResponse{Answer: json.RawMessage(`{"a":1}`)}),
			wantCode: platform.ErrInvalidResponse,
		},
		{
			name:     "api error",
			mock:     platform.NewMock().WithError("FizzBuzz", platform.NewPlatformError(platform.ErrPermissionDenied, "not allowed", "")),
			wantCode: platform.ErrPermissionDenied,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer()
			RegisterCheck(srv, tt.mock, tt.mock)

			result, err := callTool(t, srv, "fizzbuzz_check", map[string]any{"input": "3"})
			require.NoError(t, err)
			assert.True(t, result.IsError)

			var body map[string]string
			require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &body))
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestCheckTool_CountErrorIsPlainText(t *testing.T) {
	t.Parallel()
	mock := platform.NewMock().
		WithAnswer(nil, "1").
		WithError("ListVirtualMachines", errors.New("list failed"))
	srv := newTestServer()
	RegisterCheck(srv, mock, mock)

	result, err := callTool(t, srv, "fizzbuzz_check", map[string]any{"input": "abc"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "list failed", resultText(t, result))
}
