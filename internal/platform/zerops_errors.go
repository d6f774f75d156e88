package platform

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/zeropsio/zerops-go/apiError"
)

// mapSDKError converts zerops-go SDK/API errors to platform errors.
func mapSDKError(err error, entityType string) error {
	if err == nil {
		return nil
	}

	var apiErr apiError.Error
	if errors.As(err, &apiErr) {
		return mapZeropsAPIError(apiErr, entityType)
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return NewPlatformError(ErrNetworkError, err.Error(), "Check network connectivity")
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NewPlatformError(ErrNetworkError, err.Error(), "Check Zerops API host DNS")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewPlatformError(ErrAPITimeout, "Zerops API request timed out", "Retry the operation")
	}
	if errors.Is(err, context.Canceled) {
		return NewPlatformError(ErrAPIError, "request canceled", "")
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") {
		return NewPlatformError(ErrNetworkError, errStr, "Check Zerops API host and network")
	}

	return NewPlatformError(ErrAPIError, errStr, "")
}

func mapZeropsAPIError(apiErr apiError.Error, entityType string) error {
	code := apiErr.GetHttpStatusCode()
	msg := apiErr.GetMessage()

	switch code {
	case http.StatusUnauthorized:
		return NewPlatformError(ErrAuthInvalidCredentials, msg, "Check Zerops token validity")
	case http.StatusForbidden:
		return NewPlatformError(ErrPermissionDenied, msg, "Check Zerops token permissions")
	case http.StatusNotFound:
		if entityType == "project" {
			return NewPlatformError(ErrProjectNotFound, msg, "Check counter.zerops.projectId")
		}
		return NewPlatformError(ErrAPIError, msg, "")
	case http.StatusTooManyRequests:
		return NewPlatformError(ErrAPIRateLimited, msg, "Wait and retry")
	}

	if code >= 500 {
		return NewPlatformError(ErrAPIError, msg, "Zerops API error -- retry later")
	}
	return NewPlatformError(ErrAPIError, msg, "")
}
