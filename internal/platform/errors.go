package platform

import (
	"errors"
	"net"
	"strings"
)

// Error codes for fizzcheck.
const (
	ErrAuthRequired           = "AUTH_REQUIRED"
	ErrAuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrPermissionDenied       = "PERMISSION_DENIED"
	ErrInvalidParameter       = "INVALID_PARAMETER"
	ErrInvalidResponse        = "INVALID_RESPONSE"
	ErrProjectNotFound        = "PROJECT_NOT_FOUND"
	ErrTokenNoProject         = "TOKEN_NO_PROJECT"
	ErrTokenMultiProject      = "TOKEN_MULTI_PROJECT"
	ErrAPIError               = "API_ERROR"
	ErrAPITimeout             = "API_TIMEOUT"
	ErrAPIRateLimited         = "API_RATE_LIMITED"
	ErrNetworkError           = "NETWORK_ERROR"
)

// PlatformError carries an error code, message, and suggestion.
type PlatformError struct {
	Code       string
	Message    string
	Suggestion string
}

func (e *PlatformError) Error() string {
	return e.Message
}

// NewPlatformError creates a PlatformError with the given code, message, and suggestion.
func NewPlatformError(code, message, suggestion string) *PlatformError {
	return &PlatformError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// ErrorCode returns the PlatformError code of err, or "" when err is not one.
func ErrorCode(err error) string {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// MapNetworkError determines if an error is a network error and returns the appropriate code.
func MapNetworkError(err error) (code string, isNetwork bool) {
	if err == nil {
		return "", false
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return ErrNetworkError, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrNetworkError, true
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") ||
		strings.Contains(msg, "i/o timeout") {
		return ErrNetworkError, true
	}

	if strings.Contains(msg, "context deadline exceeded") {
		return ErrAPITimeout, true
	}

	return "", false
}
