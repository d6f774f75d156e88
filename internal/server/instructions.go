package server

import (
	"fmt"

	"github.com/zeropsio/fizzcheck/internal/auth"
)

// Instructions is the MCP instructions message injected into the system prompt.
const Instructions = `fizzcheck verifies the fizzBuzz command of a CloudStack API. Use fizzbuzz_verify to judge a single answer without calling the API, fizzbuzz_check to query the API for one input, and fizzbuzz_smoke to run the whole suite. The suite inputs are readable at fizzcheck://suite/testdata.`

// BuildInstructions appends the connected API to Instructions when known.
func BuildInstructions(info *auth.Info) string {
	if info == nil || info.APIHost == "" {
		return Instructions
	}
	version := info.CloudStackVersion
	if version == "" {
		version = "unknown version"
	}
	return Instructions + fmt.Sprintf("\n\nConnected API: %s (CloudStack %s).", info.APIHost, version)
}
