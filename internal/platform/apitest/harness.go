//go:build api

// Package apitest provides a real CloudStack API client for contract tests.
package apitest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

// APIHarness provides a real CloudStack API client for contract tests.
type APIHarness struct {
	t        *testing.T
	client   *platform.CloudStackClient
	version  string
	ctx      context.Context
	cancel   context.CancelFunc
	cleanups []func()
}

// New creates an APIHarness. It skips the test unless FIZZCHECK_API_URL,
// FIZZCHECK_API_KEY and FIZZCHECK_SECRET_KEY are set.
func New(t *testing.T) *APIHarness {
	t.Helper()

	apiURL := os.Getenv("FIZZCHECK_API_URL")
	apiKey := os.Getenv("FIZZCHECK_API_KEY")
	secretKey := os.Getenv("FIZZCHECK_SECRET_KEY")
	if apiURL == "" || apiKey == "" || secretKey == "" {
		t.Skip("FIZZCHECK_API_URL, FIZZCHECK_API_KEY or FIZZCHECK_SECRET_KEY not set")
	}

	client, err := platform.NewCloudStackClient(apiURL, apiKey, secretKey)
	require.NoError(t, err, "create client")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	caps, err := client.ListCapabilities(ctx)
	require.NoError(t, err, "ListCapabilities")

	h := &APIHarness{
		t:       t,
		client:  client,
		version: caps.CloudStackVersion,
		ctx:     ctx,
		cancel:  cancel,
	}

	t.Cleanup(func() {
		for i := len(h.cleanups) - 1; i >= 0; i-- {
			h.cleanups[i]()
		}
	})

	return h
}

// Client returns the real CloudStack API client.
func (h *APIHarness) Client() *platform.CloudStackClient {
	return h.client
}

// Ctx returns the timeout-bounded context.
func (h *APIHarness) Ctx() context.Context {
	return h.ctx
}

// Version returns the CloudStack version reported by the API.
func (h *APIHarness) Version() string {
	return h.version
}

// Cleanup registers a cleanup function to run after the test.
func (h *APIHarness) Cleanup(fn func()) {
	h.cleanups = append(h.cleanups, fn)
}
