package platform

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// CloudStack error codes carried in the errorcode field.
const (
	csUnauthorized      = 401
	csParamError        = 431
	csAPILimitExceeded  = 429
	csMalformedParam    = 430
	csUnsupportedAction = 432
)

// apiErrorBody is the body of a failed CloudStack call, nested under
// "<command>response" or "errorresponse".
type apiErrorBody struct {
	ErrorCode   int    `json:"errorcode"`
	CSErrorCode int    `json:"cserrorcode"`
	ErrorText   string `json:"errortext"`
}

// mapAPIError converts a non-200 CloudStack response to a PlatformError.
func mapAPIError(status int, command string, body []byte) error {
	apiErr := parseAPIErrorBody(command, body)
	code := apiErr.ErrorCode
	if code == 0 {
		code = status
	}
	msg := apiErr.ErrorText
	if msg == "" {
		msg = fmt.Sprintf("%s failed with HTTP %d", command, status)
	}

	switch code {
	case csUnauthorized:
		return NewPlatformError(ErrAuthInvalidCredentials, msg, "Check API key and secret key")
	case http.StatusForbidden:
		return NewPlatformError(ErrPermissionDenied, msg, "Check the account role allows "+command)
	case csAPILimitExceeded:
		return NewPlatformError(ErrAPIRateLimited, msg, "Wait and retry, or lower api.rateLimit")
	case csParamError, csMalformedParam:
		return NewPlatformError(ErrInvalidParameter, msg, "")
	case csUnsupportedAction:
		return NewPlatformError(ErrAPIError, msg, "Check that "+command+" is available on this API")
	}

	if code >= 500 {
		return NewPlatformError(ErrAPIError, msg, "API error -- retry later")
	}
	return NewPlatformError(ErrAPIError, msg, "")
}

func parseAPIErrorBody(command string, body []byte) apiErrorBody {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErrorBody{}
	}
	for _, key := range []string{responseKey(command), "errorresponse"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var b apiErrorBody
		if err := json.Unmarshal(raw, &b); err == nil {
			return b
		}
	}
	return apiErrorBody{}
}
