// Package auth resolves CloudStack API credentials and validates them against the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zeropsio/fizzcheck/internal/config"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

// Credentials holds what is needed to create a platform client.
type Credentials struct {
	APIURL    string
	APIKey    string
	SecretKey string
}

// Info holds resolved authentication and API context.
type Info struct {
	APIURL            string
	APIHost           string
	CloudStackVersion string
	// APILimitMax requests are allowed per APILimitInterval seconds; zero when
	// the server does not enforce a limit.
	APILimitInterval int
	APILimitMax      int
}

// ResolveCredentials reads credentials from the loaded API config without
// contacting the API. Use this to bootstrap a platform.Client before calling
// Resolve for validation.
func ResolveCredentials(cfg config.APIConfig) (*Credentials, error) {
	creds := &Credentials{
		APIURL:    strings.TrimSpace(cfg.URL),
		APIKey:    strings.TrimSpace(cfg.Key),
		SecretKey: strings.TrimSpace(cfg.SecretKey),
	}

	var missing []string
	if creds.APIURL == "" {
		missing = append(missing, "FIZZCHECK_API_URL")
	}
	if creds.APIKey == "" {
		missing = append(missing, "FIZZCHECK_API_KEY")
	}
	if creds.SecretKey == "" {
		missing = append(missing, "FIZZCHECK_SECRET_KEY")
	}
	if len(missing) > 0 {
		return nil, platform.NewPlatformError(
			platform.ErrAuthRequired,
			"No API credentials found: missing "+strings.Join(missing, ", "),
			"Set them in fizzcheck.yaml (api.url, api.apiKey, api.secretKey) or export "+strings.Join(missing, ", "),
		)
	}
	return creds, nil
}

// Resolve validates the client's credentials with listCapabilities, the
// cheapest authenticated command, and returns the API context.
func Resolve(ctx context.Context, client platform.Client, apiURL string) (*Info, error) {
	caps, err := client.ListCapabilities(ctx)
	if err != nil {
		var pe *platform.PlatformError
		if errors.As(err, &pe) && pe.Code == platform.ErrAuthInvalidCredentials {
			return nil, platform.NewPlatformError(
				pe.Code,
				"API rejected the credentials: "+pe.Message,
				"Check api.apiKey and api.secretKey; keys are per user and regenerated keys invalidate old ones",
			)
		}
		return nil, fmt.Errorf("validate credentials: %w", err)
	}

	return &Info{
		APIURL:            apiURL,
		APIHost:           hostOf(apiURL),
		CloudStackVersion: caps.CloudStackVersion,
		APILimitInterval:  caps.APILimitInterval,
		APILimitMax:       caps.APILimitMax,
	}, nil
}

// hostOf returns the host of a URL, tolerating bare hosts.
func hostOf(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
