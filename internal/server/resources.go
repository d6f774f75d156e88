package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"
)

const testDataURI = "fizzcheck://suite/testdata"

func (s *Server) registerResources() {
	s.server.AddResource(
		&mcp.Resource{
			URI:         testDataURI,
			Name:        "suite-testdata",
			Description: "Inputs sent to the fizzBuzz command by fizzbuzz_smoke. Non-integer inputs are verified against the guest VM count.",
			MIMEType:    "application/yaml",
		},
		func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			b, err := yaml.Marshal(s.data)
			if err != nil {
				return nil, fmt.Errorf("encode test data: %w", err)
			}
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "application/yaml",
					Text:     string(b),
				}},
			}, nil
		},
	)
}
